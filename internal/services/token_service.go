package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vitadoc/internal/repositories"
)

type Claims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

// TokenService mints and checks stateless HS256 session tokens. There is no
// revocation list; the short expiry is the only mitigation.
type TokenService interface {
	Issue(userID int) (string, error)
	Verify(token string) (int, error)
	Refresh(token string) (string, error)
}

type tokenService struct {
	secret   []byte
	ttl      time.Duration
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, userRepo repositories.UserRepository) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *tokenService) Issue(userID int) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id embedded in a still-valid token.
func (s *tokenService) Verify(tokenStr string) (int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// HMAC only; reject alg-substitution tokens
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, ErrUnauthorized
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(s.now()) {
		return 0, ErrUnauthorized
	}
	return claims.UserID, nil
}

// Refresh trades a still-valid token for a fresh one. The referenced user
// must still exist.
func (s *tokenService) Refresh(tokenStr string) (string, error) {
	userID, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", fmt.Errorf("lookup user for refresh: %w", err)
	}
	if user == nil {
		return "", ErrUnauthorized
	}
	return s.Issue(userID)
}
