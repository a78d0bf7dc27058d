package service

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// IdentityClaims are the verified claims of a third-party ID token.
type IdentityClaims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// IdentityVerifier validates an ID token issued by an identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

// GoogleVerifier checks Google ID tokens against Google's signing keys and
// the configured OAuth client id.
type GoogleVerifier struct {
	audience string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		audience: clientID,
		validate: idtoken.Validate,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*IdentityClaims, error) {
	if v.audience == "" {
		return nil, ErrGoogleNotConfigured
	}

	payload, err := v.validate(ctx, idToken, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims := &IdentityClaims{
		Subject: payload.Subject,
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = verified
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrInvalidCredential)
	}

	return claims, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
