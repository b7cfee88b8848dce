package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/storage"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

// capture runs the interceptor chain and returns the actor seen by the handler.
func capture(t *testing.T, header string, interceptors ...connect.UnaryInterceptorFunc) (models.Actor, error) {
	t.Helper()
	var seen models.Actor
	var next connect.UnaryFunc = func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = ActorFrom(ctx)
		return nil, nil
	}
	for i := len(interceptors) - 1; i >= 0; i-- {
		next = interceptors[i](next)
	}

	req := connect.NewRequest(&struct{}{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := next(context.Background(), req)
	return seen, err
}

func TestResolveActor(t *testing.T) {
	staff := models.NewUser("admin", "Admin", "hash", true)
	reader := models.NewUser("reader", "Reader", "hash", false)
	users := fakeUsers{staff.ID: staff, reader.ID: reader}
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	resolve := ResolveActor(jwtManager, users)

	staffToken, err := jwtManager.Generate(staff)
	require.NoError(t, err)
	readerToken, err := jwtManager.Generate(reader)
	require.NoError(t, err)

	t.Run("no header is anonymous", func(t *testing.T) {
		actor, err := capture(t, "", resolve)
		require.NoError(t, err)
		assert.Equal(t, models.Anonymous(), actor)
	})

	t.Run("privilege comes from the user record", func(t *testing.T) {
		actor, err := capture(t, "Bearer "+staffToken, resolve)
		require.NoError(t, err)
		assert.Equal(t, models.Actor{UserID: staff.ID, Authenticated: true, Privileged: true}, actor)

		actor, err = capture(t, "Bearer "+readerToken, resolve)
		require.NoError(t, err)
		assert.False(t, actor.Privileged)
	})

	t.Run("bad tokens are rejected", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Basic abc", "Bearer garbage", "bearer " + staffToken} {
			_, err := capture(t, header, resolve)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err), header)
		}
	})

	t.Run("token of a deleted user is rejected", func(t *testing.T) {
		ghost := models.NewUser("ghost", "Ghost", "hash", true)
		token, err := jwtManager.Generate(ghost)
		require.NoError(t, err)
		_, err = capture(t, "Bearer "+token, resolve)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("RequireAuth blocks anonymous callers", func(t *testing.T) {
		_, err := capture(t, "", resolve, RequireAuth())
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

		actor, err := capture(t, "Bearer "+readerToken, resolve, RequireAuth())
		require.NoError(t, err)
		assert.Equal(t, reader.ID, actor.UserID)
	})
}
