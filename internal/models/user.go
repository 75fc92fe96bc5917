package models

import "time"

// Reset channels a pending OTP can be bound to.
const (
	ResetTypeEmail = "email"
	ResetTypePhone = "phone"
)

type User struct {
	ID               int        `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Gender           string     `json:"gender,omitempty"`
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	MedicalSpecialty string     `json:"medical_specialty,omitempty"`
	Picture          string     `json:"picture,omitempty"`
	Location         string     `json:"location,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	SecondPhone      string     `json:"second_phone_number,omitempty"`
	PasswordHash     string     `json:"-"`
	GoogleID         *string    `json:"-"`

	// Pending password-reset state. Either all three are set or all
	// three are empty; only a completed reset clears them.
	ResetOTP       *string    `json:"-"`
	ResetOTPExpiry *time.Time `json:"-"`
	ResetType      *string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// HasLocalPassword reports whether the account can authenticate with a
// password. Accounts created through Google sign-in have no hash.
func (u *User) HasLocalPassword() bool {
	return u.PasswordHash != ""
}

// HasPendingReset reports whether a reset OTP is outstanding.
func (u *User) HasPendingReset() bool {
	return u.ResetOTP != nil && u.ResetOTPExpiry != nil && u.ResetType != nil
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleSigninRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// SignupRequest arrives as multipart form data so the profile picture can
// ride along in the same request.
type SignupRequest struct {
	FirstName        string `form:"firstName" binding:"required,min=2"`
	LastName         string `form:"lastName" binding:"required,min=2"`
	Email            string `form:"email" binding:"required,email"`
	Gender           string `form:"gender" binding:"required,oneof=male female other"`
	DateOfBirth      string `form:"dateOfBirth" binding:"required"`
	MedicalSpecialty string `form:"medicalSpecialty" binding:"required"`
	Location         string `form:"location" binding:"required"`
	PhoneNumber      string `form:"phoneNumber" binding:"required"`
	SecondPhone      string `form:"secondPhoneNumber"`
	Password         string `form:"password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Contact string `json:"contact" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=email phone"`
}

type VerifyCodeRequest struct {
	Contact string `json:"contact" binding:"required"`
	Code    string `json:"code" binding:"required,len=6,numeric"`
	Type    string `json:"type" binding:"required,oneof=email phone"`
}

// ResetPasswordRequest is a tagged union over the reset channel: the email
// path supplies Contact, the phone path supplies the Firebase ID token.
type ResetPasswordRequest struct {
	Type        string `json:"type" binding:"required,oneof=email phone"`
	Contact     string `json:"contact"`
	IDToken     string `json:"idToken"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
