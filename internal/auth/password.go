package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/storage"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUsernameExists     = errors.New("username already registered")
	ErrEmptyUsername      = errors.New("username is required")
)

// UserStorage is the subset of storage.Store the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

var _ Authenticator = (*PasswordAuthenticator)(nil)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy of the authenticator hashing with the given bcrypt
// cost. Tests use bcrypt.MinCost to stay fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, displayName, credential string, staff bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	if _, err := a.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := a.hash(credential)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = username
	}

	user := models.NewUser(username, displayName, hash, staff)
	if err := a.storage.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SetCredential hashes and stores a new password for user.
func (a *PasswordAuthenticator) SetCredential(ctx context.Context, user *models.User, credential string) error {
	if err := a.ValidateCredential(credential); err != nil {
		return err
	}
	hash, err := a.hash(credential)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().Unix()
	if err := a.storage.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}
	return nil
}

func (a *PasswordAuthenticator) hash(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
