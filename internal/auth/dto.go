package auth

import "strings"

// LoginDTO carries the credentials posted to /auth/login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO carries the refresh token posted to /auth/refresh.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError reports a rejected request field before the service layer
// is involved.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	email := strings.TrimSpace(d.Email)
	if email == "" {
		return ValidationError{Msg: "email is required"}
	}
	// Real verification happens against the stored account; this only
	// rejects obvious garbage before a database round trip.
	if !strings.Contains(email, "@") {
		return ValidationError{Msg: "email is not a valid address"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if strings.TrimSpace(d.RefreshToken) == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}
