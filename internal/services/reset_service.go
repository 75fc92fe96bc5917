package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"vitadoc/internal/models"
	"vitadoc/internal/repositories"
	"vitadoc/internal/utils"
)

// ResetService drives the three-step password reset:
//
//	request -> verify -> reset
//
// The email channel is handled end to end here; the phone channel is
// performed by the Firebase widget on the client, and only the finalize
// step (with the resulting ID token) reaches the server. There is no
// session object: the pending state lives in the user's reset fields.
type ResetService interface {
	RequestReset(contact, resetType string) error
	VerifyCode(contact, code, resetType string) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
}

type resetService struct {
	userRepo repositories.UserRepository
	otp      OTPService
	emails   EmailService
	auth     AuthService
	identity IdentityVerifier
	now      func() time.Time
}

func NewResetService(
	userRepo repositories.UserRepository,
	otp OTPService,
	emails EmailService,
	auth AuthService,
	identity IdentityVerifier,
) ResetService {
	return &resetService{
		userRepo: userRepo,
		otp:      otp,
		emails:   emails,
		auth:     auth,
		identity: identity,
		now:      time.Now,
	}
}

// RequestReset issues and mails a code for the email channel. A repeated
// request replaces the previous code, which becomes permanently invalid.
// For phone the server keeps no state: the client widget runs the
// verification and the finalize step brings back a Firebase ID token.
func (s *resetService) RequestReset(contact, resetType string) error {
	if resetType == models.ResetTypePhone {
		log.Printf("[reset][request] phone flow delegated to client widget")
		return nil
	}

	email := utils.NormalizeEmail(contact)
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if !user.HasLocalPassword() {
		// google-only account, nothing to reset
		return ErrFederatedOnly
	}

	code, err := s.otp.Issue(user, models.ResetTypeEmail)
	if err != nil {
		return err
	}
	if err := s.emails.SendResetCode(user.Email, code); err != nil {
		log.Printf("[reset][request] send failed for user_id=%d: %v", user.ID, err)
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	log.Printf("[reset][request] code sent user_id=%d", user.ID)
	return nil
}

// VerifyCode checks the supplied code without consuming it; the same code
// stays valid until the reset completes or the code expires.
func (s *resetService) VerifyCode(contact, code, resetType string) error {
	if resetType == models.ResetTypePhone {
		// verified out of band by the widget
		return ErrValidation
	}

	user, err := s.userRepo.GetByEmail(utils.NormalizeEmail(contact))
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if !s.otp.Verify(user, code, models.ResetTypeEmail) {
		return ErrCodeInvalid
	}
	return nil
}

// ResetPassword is the single terminal step for both channels.
func (s *resetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	var user *models.User
	var err error

	switch req.Type {
	case models.ResetTypePhone:
		user, err = s.lookupByIDToken(ctx, req.IDToken)
	default:
		user, err = s.lookupByPendingEmail(req.Contact)
	}
	if err != nil {
		return err
	}

	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.otp.Consume(user); err != nil {
		return err
	}
	log.Printf("[reset][done] user_id=%d type=%s", user.ID, req.Type)
	return nil
}

func (s *resetService) lookupByPendingEmail(contact string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(utils.NormalizeEmail(contact))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	// the code may have lapsed between verify and reset
	if !user.HasPendingReset() ||
		*user.ResetType != models.ResetTypeEmail ||
		s.now().After(*user.ResetOTPExpiry) {
		return nil, ErrSessionExpired
	}
	return user, nil
}

func (s *resetService) lookupByIDToken(ctx context.Context, idToken string) (*models.User, error) {
	claims, err := s.identity.Verify(ctx, idToken)
	if err != nil {
		log.Printf("[reset][phone] id token rejected: %v", err)
		return nil, ErrUpstreamAuth
	}
	if claims.PhoneNumber == "" {
		return nil, ErrUpstreamAuth
	}
	user, err := s.userRepo.GetByPhone(utils.NormalizePhone(claims.PhoneNumber))
	if err != nil {
		return nil, fmt.Errorf("lookup user by phone: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
