package adminauth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTOTPRequired    = errors.New("totp code required")
	ErrSessionNotFound = errors.New("session not found")
)

type SessionRecord struct {
	SID     string
	AdminID int64
	Email   string
	Name    string
	Role    string
}

type AccessClaims struct {
	AdminID   int64
	SID       string
	Role      string
	ExpiresAt time.Time
}

type LoginResult struct {
	AccessToken   string
	AccessExpires time.Time
	Admin         AdminInfo
}

type TOTPSetup struct {
	Secret        string
	OTPAuthURL    string
	QRCodeDataURL string
}

type AdminInfo struct {
	ID    int64
	Email string
	Name  string
	Role  string
}
