package services

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vitadoc/internal/models"
	"vitadoc/internal/repositories"
)

const otpTTL = 10 * time.Minute

// OTPService owns the pending-reset triple on the user record: the hashed
// code, its expiry and the channel it was issued for.
type OTPService interface {
	GenerateCode() (string, error)
	Issue(user *models.User, resetType string) (string, error)
	Verify(user *models.User, code, resetType string) bool
	Consume(user *models.User) error
}

type otpService struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewOTPService(userRepo repositories.UserRepository) OTPService {
	return &otpService{userRepo: userRepo, now: time.Now}
}

// GenerateCode draws a uniform 6-digit code, 100000..999999.
func (s *otpService) GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue stores hash(code) with a fresh expiry, silently replacing any
// pending code for the user. Returns the plaintext code for dispatch.
func (s *otpService) Issue(user *models.User, resetType string) (string, error) {
	code, err := s.GenerateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	expiry := s.now().Add(otpTTL)
	if err := s.userRepo.UpdateResetState(user.ID, string(hash), expiry, resetType); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	h := string(hash)
	user.ResetOTP = &h
	user.ResetOTPExpiry = &expiry
	user.ResetType = &resetType

	log.Printf("[otp][issue] user_id=%d type=%s expires=%s", user.ID, resetType, expiry.Format(time.RFC3339))
	return code, nil
}

// Verify checks the supplied code against the pending state. It does NOT
// invalidate the code: re-verification is allowed until an actual reset
// consumes it or it expires.
func (s *otpService) Verify(user *models.User, code, resetType string) bool {
	if !user.HasPendingReset() {
		return false
	}
	if *user.ResetType != resetType {
		return false
	}
	if s.now().After(*user.ResetOTPExpiry) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*user.ResetOTP), []byte(code)) == nil
}

// Consume wipes all three reset fields in one update. Called only after the
// password has actually been changed.
func (s *otpService) Consume(user *models.User) error {
	if err := s.userRepo.ClearResetState(user.ID); err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	user.ResetOTP = nil
	user.ResetOTPExpiry = nil
	user.ResetType = nil
	return nil
}
