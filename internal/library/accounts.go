package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/models"
)

// AccountInput describes a new staff account.
type AccountInput struct {
	Username    string
	DisplayName string
	Password    string
}

// AccountPatch carries the changes a staff user may make to their own
// account.
type AccountPatch struct {
	DisplayName *string
	Password    *string
}

// CreateSuperuser provisions a privileged account. Only privileged actors
// may do this; the first superuser comes from the command line.
func (l *Library) CreateSuperuser(ctx context.Context, actor models.Actor, in AccountInput) (*models.User, error) {
	if err := l.check(authz.Create, authz.Account, actor, ""); err != nil {
		return nil, err
	}
	user, err := l.authenticator.Register(ctx, in.Username, in.DisplayName, in.Password, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}
	l.committed(ctx, authz.Account, authz.Create, user.ID, actor)
	return user, nil
}

// GetAccount returns the actor's own staff account.
func (l *Library) GetAccount(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	if err := l.check(authz.Read, authz.Account, actor, id); err != nil {
		return nil, err
	}
	user, err := l.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Account, id)
	}
	return user, nil
}

// UpdateAccount changes the actor's own staff account. Targeting any other
// account is denied.
func (l *Library) UpdateAccount(ctx context.Context, actor models.Actor, id string, in AccountPatch) (*models.User, error) {
	if err := l.check(authz.Update, authz.Account, actor, id); err != nil {
		return nil, err
	}
	user, err := l.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Account, id)
	}

	// The changes land in a single write: SetCredential stores the whole
	// user, display name included.
	changed := *user
	if in.DisplayName != nil {
		if name := strings.TrimSpace(*in.DisplayName); name != "" {
			changed.DisplayName = name
		}
	}
	switch {
	case in.Password != nil:
		if err := l.authenticator.SetCredential(ctx, &changed, *in.Password); err != nil {
			return nil, fmt.Errorf("failed to update account: %w", err)
		}
	case in.DisplayName != nil:
		changed.UpdatedAt = time.Now().Unix()
		if err := l.store.UpdateUser(ctx, &changed); err != nil {
			return nil, missing(err, authz.Account, id)
		}
	}
	user = &changed

	l.committed(ctx, authz.Account, authz.Update, id, actor)
	return user, nil
}
