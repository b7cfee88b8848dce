package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id"`

	// Username is the login name (unique).
	Username string `db:"username"`

	// DisplayName is the human-readable name of the user.
	DisplayName string `db:"display_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `db:"password_hash"`

	// Staff marks privileged accounts allowed to manage the catalog.
	Staff bool `db:"is_staff"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64 `db:"updated_at"`
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(username, displayName, passwordHash string, staff bool) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Staff:        staff,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Label renders the user the way book listings show their creator,
// e.g. "Ada Lovelace (ada)".
func (u *User) Label() string {
	return CreatorLabel(u.DisplayName, u.Username)
}

// CreatorLabel formats a display name and username as "<name> (<username>)".
func CreatorLabel(displayName, username string) string {
	return fmt.Sprintf("%s (%s)", displayName, username)
}

// Actor is the identity performing a request. The zero value is an
// anonymous actor.
type Actor struct {
	UserID        string
	Authenticated bool
	Privileged    bool
}

// Anonymous returns an unauthenticated actor.
func Anonymous() Actor { return Actor{} }

// ActorFor resolves the actor for an authenticated user.
func ActorFor(u *User) Actor {
	return Actor{UserID: u.ID, Authenticated: true, Privileged: u.Staff}
}
