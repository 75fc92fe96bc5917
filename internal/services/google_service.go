package services

import (
	"context"

	"google.golang.org/api/idtoken"
)

// IdentityClaims is what the federated provider vouches for.
type IdentityClaims struct {
	Sub         string
	Email       string
	FirstName   string
	LastName    string
	Picture     string
	PhoneNumber string
}

// IdentityVerifier validates an ID token issued by the federated provider
// (Google sign-in, Firebase phone auth) and returns its claims.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) IdentityVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*IdentityClaims, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	phone, _ := payload.Claims["phone_number"].(string)
	sub, _ := payload.Claims["sub"].(string)

	return &IdentityClaims{
		Sub:         sub,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Picture:     picture,
		PhoneNumber: phone,
	}, nil
}
