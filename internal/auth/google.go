package auth

import (
	"context"

	"google.golang.org/api/idtoken"

	"github.com/yafiirfan/backend.movie/internal/apperr"
)

// GoogleProfile is the verified identity extracted from a Google ID token.
type GoogleProfile struct {
	Email string
	Name  string
}

// GoogleVerifier validates a Google ID-token assertion against Google's
// published signing keys and the configured OAuth client id.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleProfile, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

// Verify checks the assertion's signature and audience and extracts the
// verified email and display name. Any validation failure maps to an
// invalid-token error; verification itself has no side effects.
func (v *googleVerifier) Verify(ctx context.Context, token string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, apperr.ErrInvalidToken
	}

	return &GoogleProfile{Email: email, Name: name}, nil
}
