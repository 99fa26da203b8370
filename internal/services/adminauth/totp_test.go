package adminauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestSetupAndConfirmTOTP(t *testing.T) {
	svc, _ := newTestService(t)
	identity := Identity{AdminID: 7, Email: "owner@example.com"}

	setup, err := svc.SetupTOTP(context.Background(), identity)
	if err != nil {
		t.Fatalf("setup totp: %v", err)
	}
	if setup.Secret == "" {
		t.Fatalf("expected a secret")
	}
	if !strings.HasPrefix(setup.OTPAuthURL, "otpauth://totp/") {
		t.Fatalf("unexpected otpauth url: %s", setup.OTPAuthURL)
	}
	if !strings.HasPrefix(setup.QRCodeDataURL, "data:image/png;base64,") {
		t.Fatalf("unexpected qr data url prefix: %.40s", setup.QRCodeDataURL)
	}

	code, err := totp.GenerateCode(setup.Secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.ConfirmTOTP(context.Background(), identity, setup.Secret, code); err != nil {
		t.Fatalf("confirm totp: %v", err)
	}
}

func TestConfirmTOTPRejectsBadCode(t *testing.T) {
	svc, _ := newTestService(t)
	identity := Identity{AdminID: 7, Email: "owner@example.com"}

	setup, err := svc.SetupTOTP(context.Background(), identity)
	if err != nil {
		t.Fatalf("setup totp: %v", err)
	}

	if err := svc.ConfirmTOTP(context.Background(), identity, setup.Secret, "000000"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.ConfirmTOTP(context.Background(), identity, "", "123456"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginWithEnrolledAuthenticator(t *testing.T) {
	svc, _ := newTestService(t)
	identity := Identity{AdminID: 7, Email: "owner@example.com"}

	setup, err := svc.SetupTOTP(context.Background(), identity)
	if err != nil {
		t.Fatalf("setup totp: %v", err)
	}
	code, err := totp.GenerateCode(setup.Secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.ConfirmTOTP(context.Background(), identity, setup.Secret, code); err != nil {
		t.Fatalf("confirm totp: %v", err)
	}

	if _, err := svc.Login(context.Background(), "owner@example.com", "correct horse", ""); !errors.Is(err, ErrTOTPRequired) {
		t.Fatalf("expected ErrTOTPRequired without a code, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "owner@example.com", "correct horse", "000000"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a wrong code, got %v", err)
	}

	code, err = totp.GenerateCode(setup.Secret, time.Now().UTC())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	result, err := svc.Login(context.Background(), "owner@example.com", "correct horse", code)
	if err != nil {
		t.Fatalf("login with code: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}
