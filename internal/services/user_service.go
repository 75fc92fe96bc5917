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

type UserService interface {
	Signup(req models.SignupRequest, picture string) (*models.User, error)
	Signin(email, password string) (*models.User, error)
	GoogleSignin(ctx context.Context, idToken string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
}

type userService struct {
	repo     repositories.UserRepository
	auth     AuthService
	emails   EmailService
	identity IdentityVerifier
}

func NewUserService(repo repositories.UserRepository, auth AuthService, emails EmailService, identity IdentityVerifier) UserService {
	return &userService{
		repo:     repo,
		auth:     auth,
		emails:   emails,
		identity: identity,
	}
}

func (s *userService) Signup(req models.SignupRequest, picture string) (*models.User, error) {
	email := utils.NormalizeEmail(req.Email)

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if !models.IsValidSpecialty(req.MedicalSpecialty) {
		return nil, fmt.Errorf("%w: unknown medical specialty", ErrValidation)
	}
	if !utils.IsValidPhone(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: bad phone number", ErrValidation)
	}
	if req.SecondPhone != "" && !utils.IsValidPhone(req.SecondPhone) {
		return nil, fmt.Errorf("%w: bad second phone number", ErrValidation)
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date of birth", ErrValidation)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            email,
		Gender:           req.Gender,
		DateOfBirth:      &dob,
		MedicalSpecialty: req.MedicalSpecialty,
		Picture:          picture,
		Location:         req.Location,
		PhoneNumber:      utils.NormalizePhone(req.PhoneNumber),
		SecondPhone:      utils.NormalizePhone(req.SecondPhone),
		PasswordHash:     hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			// warn but do not fail registration
			log.Printf("[users][signup] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

// Signin merges "no such user" and "wrong password" into one failure so the
// response can't be used to probe which emails are registered.
func (s *userService) Signin(email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(utils.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.GoogleID != nil && !user.HasLocalPassword() {
		return nil, ErrFederatedOnly
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GoogleSignin verifies the ID token and creates the account on first use.
func (s *userService) GoogleSignin(ctx context.Context, idToken string) (*models.User, error) {
	claims, err := s.identity.Verify(ctx, idToken)
	if err != nil {
		log.Printf("[users][google] id token rejected: %v", err)
		return nil, ErrUpstreamAuth
	}

	user, err := s.repo.GetByGoogleID(claims.Sub)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	// a local account with the same email gets linked instead of duplicated
	email := utils.NormalizeEmail(claims.Email)
	if email != "" {
		if user, err = s.repo.GetByEmail(email); err != nil {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}

	sub := claims.Sub
	user = &models.User{
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     email,
		Picture:   claims.Picture,
		GoogleID:  &sub,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	log.Printf("[users][google] created user_id=%d", user.ID)
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
