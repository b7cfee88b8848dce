package auth

import (
	"context"

	"github.com/mmynk/biblioteca/internal/models"
)

// Authenticator verifies and provisions user accounts.
// The service layer depends on this interface so that other credential
// schemes can replace passwords without touching the handlers.
type Authenticator interface {
	// Register creates a new account. Staff accounts are privileged.
	Register(ctx context.Context, username, displayName, credential string, staff bool) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks that a credential is acceptable before it is stored.
	ValidateCredential(credential string) error

	// SetCredential replaces the user's stored credential.
	SetCredential(ctx context.Context, user *models.User, credential string) error
}
