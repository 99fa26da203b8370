package adminauth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

const totpIssuer = "svcmarket-admin"

func generateTOTPSecret(issuer, accountName string) (secret string, otpURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Algorithm:   otp.AlgorithmSHA1,
		Digits:      otp.DigitsSix,
		Period:      30,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func validateTOTP(secret, code string, now time.Time) bool {
	clean := strings.TrimSpace(code)
	if len(clean) != 6 {
		return false
	}
	valid, err := totp.ValidateCustom(clean, secret, now, totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}

func qrCodeDataURL(content string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}

// SetupTOTP generates a fresh authenticator secret for the admin. Nothing is
// persisted here: the secret only takes effect after ConfirmTOTP proves the
// admin scanned it.
func (s *Service) SetupTOTP(ctx context.Context, identity Identity) (TOTPSetup, error) {
	admin, err := s.admins.GetByID(ctx, identity.AdminID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return TOTPSetup{}, ErrUnauthorized
		}
		return TOTPSetup{}, fmt.Errorf("get admin user: %w", err)
	}

	secret, otpURL, err := generateTOTPSecret(totpIssuer, admin.Email)
	if err != nil {
		return TOTPSetup{}, fmt.Errorf("generate totp secret: %w", err)
	}

	qrDataURL, err := qrCodeDataURL(otpURL, 256)
	if err != nil {
		return TOTPSetup{}, fmt.Errorf("generate qr code: %w", err)
	}

	return TOTPSetup{
		Secret:        secret,
		OTPAuthURL:    otpURL,
		QRCodeDataURL: qrDataURL,
	}, nil
}

// ConfirmTOTP enables two-factor login for the admin once they echo back a
// valid code for the secret issued by SetupTOTP.
func (s *Service) ConfirmTOTP(ctx context.Context, identity Identity, secret, code string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" || strings.TrimSpace(code) == "" {
		return ErrInvalidInput
	}

	if !validateTOTP(secret, code, time.Now().UTC()) {
		return ErrUnauthorized
	}

	if err := s.admins.EnableTOTP(ctx, identity.AdminID, secret); err != nil {
		if errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}
