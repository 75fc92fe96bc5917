package services

import "errors"

// Flow-level failure kinds. Handlers map these to HTTP statuses; anything
// not listed here surfaces as a generic 500.
var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFederatedOnly      = errors.New("account uses google sign-in")
	ErrCodeInvalid        = errors.New("invalid or expired code")
	ErrSessionExpired     = errors.New("reset session expired")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrEmailSend          = errors.New("failed to send email")
	ErrUpstreamAuth       = errors.New("identity token rejected")
	ErrValidation         = errors.New("invalid input")
)
