package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type TOTPSetupResponse struct {
	Secret        string `json:"secret"`
	OTPAuthURL    string `json:"otpauth_url"`
	QRCodeDataURL string `json:"qr_code_data_url"`
}

type TOTPConfirmRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

type AdminInfoResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	TokenType    string            `json:"token_type"`
	ExpiresInSec int64             `json:"expires_in_sec"`
	Admin        AdminInfoResponse `json:"admin"`
}

type SessionResponse struct {
	Admin AdminInfoResponse `json:"admin"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
