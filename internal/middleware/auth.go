package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/storage"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// actorKey is the context key for the resolved models.Actor.
	actorKey contextKey = "actor"
	// usernameKey is the context key for the authenticated username.
	usernameKey contextKey = "username"
)

// UserLookup loads the user named by a token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// WithActor returns ctx carrying actor.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom extracts the actor from the context.
// Returns the anonymous actor if none was resolved.
func ActorFrom(ctx context.Context) models.Actor {
	actor, _ := ctx.Value(actorKey).(models.Actor)
	return actor
}

// GetUserID extracts the user ID from the context.
// Returns empty string for anonymous requests.
func GetUserID(ctx context.Context) string {
	return ActorFrom(ctx).UserID
}

// GetUsername extracts the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// ResolveActor returns an interceptor that turns the bearer token, if any,
// into a models.Actor in the request context. Requests without an
// Authorization header proceed as anonymous; a header that does not hold a
// valid token is rejected. Privilege is read from the stored user on every
// call.
func ResolveActor(jwtManager *auth.JWTManager, users UserLookup) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return next(WithActor(ctx, models.Anonymous()), req)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			user, err := users.GetUserByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
				}
				return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to load user: %w", err))
			}

			ctx = WithActor(ctx, models.ActorFor(user))
			ctx = context.WithValue(ctx, usernameKey, user.Username)
			return next(ctx, req)
		}
	}
}

// RequireAuth returns an interceptor rejecting anonymous requests. It must
// run after ResolveActor.
func RequireAuth() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if !ActorFrom(ctx).Authenticated {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}
			return next(ctx, req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
