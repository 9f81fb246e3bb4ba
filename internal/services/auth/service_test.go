package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diary/internal/dependencies/mocks"
	"diary/internal/model"
	sessionmemory "diary/internal/sessions/memory"
	"diary/internal/storage/memory"
	"diary/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *mocks.MockClock) {
	t.Helper()
	clk := mocks.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := New(memory.New(), sessionmemory.New(), clk, DefaultConfig(), testutil.NopLogger())
	return svc, clk
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	// Password is stored hashed, never raw
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "different456")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret123")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, model.ErrValidation)

	long := make([]byte, model.MaxUsernameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Register(ctx, string(long), "secret123")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestLoginAndValidateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	user, err := svc.ValidateSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	// Same error as a wrong password, so callers cannot probe usernames
	_, err := svc.Login(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.ValidateSession(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpiresLazily(t *testing.T) {
	svc, clk := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	clk.Advance(8 * 24 * time.Hour)

	_, err = svc.ValidateSession(ctx, session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateSessionEmptyToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
