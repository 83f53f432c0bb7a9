package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of ID-token claims the account layer needs.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// VerifyGoogleIDToken validates a Google-issued ID token against the
// configured OAuth client and extracts the identity claims.
func VerifyGoogleIDToken(ctx context.Context, clientID, rawToken string) (*GoogleIdentity, error) {
	if clientID == "" {
		return nil, errors.New("google login is not configured")
	}
	payload, err := idtoken.Validate(ctx, rawToken, clientID)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token carries no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	return &GoogleIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
