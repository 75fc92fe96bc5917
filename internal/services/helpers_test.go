package services

import (
	"context"
	"errors"
	"time"

	"vitadoc/internal/models"
)

// in-memory UserRepository for service tests
type fakeUserRepo struct {
	users   map[int]*models.User
	nextID  int
	failAll bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

var errRepoDown = errors.New("repo down")

func (r *fakeUserRepo) Create(user *models.User) error {
	if r.failAll {
		return errRepoDown
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByPhone(phone string) (*models.User, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	for _, u := range r.users {
		if u.PhoneNumber == phone || u.SecondPhone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByGoogleID(googleID string) (*models.User, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	if r.failAll {
		return errRepoDown
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateResetState(userID int, otpHash string, expiry time.Time, resetType string) error {
	if r.failAll {
		return errRepoDown
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.ResetOTP = &otpHash
	u.ResetOTPExpiry = &expiry
	u.ResetType = &resetType
	return nil
}

func (r *fakeUserRepo) ClearResetState(userID int) error {
	if r.failAll {
		return errRepoDown
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.ResetOTP = nil
	u.ResetOTPExpiry = nil
	u.ResetType = nil
	return nil
}

// fakeEmail records sends and can be told to fail
type fakeEmail struct {
	resetCodes map[string]string // email -> last code
	welcomes   []string
	fail       bool
}

func newFakeEmail() *fakeEmail {
	return &fakeEmail{resetCodes: map[string]string{}}
}

func (f *fakeEmail) SendResetCode(email, code string) error {
	if f.fail {
		return errors.New("smtp refused")
	}
	f.resetCodes[email] = code
	return nil
}

func (f *fakeEmail) SendWelcomeEmail(email, firstName string) error {
	if f.fail {
		return errors.New("smtp refused")
	}
	f.welcomes = append(f.welcomes, email)
	return nil
}

// fakeIdentity returns canned claims keyed by token string
type fakeIdentity struct {
	claims map[string]*IdentityClaims
}

func (f *fakeIdentity) Verify(_ context.Context, token string) (*IdentityClaims, error) {
	c, ok := f.claims[token]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return c, nil
}
