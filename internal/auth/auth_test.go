package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/elpanzas912/gastitelegram/internal/errs"
)

type fakeRefresher struct {
	session  types.Session
	err      error
	received string
	calls    int
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (types.Session, error) {
	f.calls++
	f.received = refreshToken
	if f.err != nil {
		return types.Session{}, f.err
	}
	return f.session, nil
}

type fakeStore struct {
	token    string
	writeErr error
	writes   []string
}

func (f *fakeStore) Read() string { return f.token }

func (f *fakeStore) Write(token string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, token)
	f.token = token
	return nil
}

func session(access, refresh string) types.Session {
	s := types.Session{}
	s.AccessToken = access
	s.RefreshToken = refresh
	return s
}

func TestWithSessionPersistsRotatedToken(t *testing.T) {
	refresher := &fakeRefresher{session: session("acceso", "refresh-nuevo")}
	store := &fakeStore{token: "refresh-viejo"}
	authenticator := NewAuthenticator(refresher, store)

	ran := false
	err := authenticator.WithSession(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, "refresh-viejo", refresher.received)
	// escritura-luego-lectura: el slot ya tiene el token rotado
	assert.Equal(t, "refresh-nuevo", store.Read())
	assert.Equal(t, []string{"refresh-nuevo"}, store.writes)
}

func TestWithSessionSkipsWriteWhenTokenUnchanged(t *testing.T) {
	refresher := &fakeRefresher{session: session("acceso", "mismo-refresh")}
	store := &fakeStore{token: "mismo-refresh"}
	authenticator := NewAuthenticator(refresher, store)

	err := authenticator.WithSession(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Empty(t, store.writes)
}

func TestWithSessionFailsWithoutRetryOnAuthError(t *testing.T) {
	refresher := &fakeRefresher{err: &errs.AuthError{Err: errors.New("invalid_grant")}}
	store := &fakeStore{token: "refresh-viejo"}
	authenticator := NewAuthenticator(refresher, store)

	ran := false
	err := authenticator.WithSession(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	var authErr *errs.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, ran)
	assert.Equal(t, 1, refresher.calls)
	assert.Empty(t, store.writes)
}

func TestWithSessionContinuesWhenWriteFails(t *testing.T) {
	refresher := &fakeRefresher{session: session("acceso", "refresh-nuevo")}
	store := &fakeStore{token: "refresh-viejo", writeErr: errors.New("disco lleno")}
	authenticator := NewAuthenticator(refresher, store)

	ran := false
	err := authenticator.WithSession(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	// el access token recién emitido sigue siendo usable
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithSessionPropagatesActionError(t *testing.T) {
	refresher := &fakeRefresher{session: session("acceso", "refresh-nuevo")}
	store := &fakeStore{token: "refresh-viejo"}
	authenticator := NewAuthenticator(refresher, store)

	actionErr := errors.New("backend caído")
	err := authenticator.WithSession(context.Background(), func(ctx context.Context) error {
		return actionErr
	})

	assert.ErrorIs(t, err, actionErr)
}
