package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhaven/bookstore-backend/internal/domain/entity"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
)

func newSessionService() (*SessionService, *fakeAccountStore, *fakeAccountStore) {
	buyers := newFakeAccountStore(entity.KindBuyer)
	sellers := newFakeAccountStore(entity.KindSeller)
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", time.Hour, 24*time.Hour)
	return NewSessionService(buyers, sellers, jwt, nil, nil), buyers, sellers
}

func TestRegisterAndLogin(t *testing.T) {
	svc, buyers, _ := newSessionService()
	ctx := context.Background()

	a, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, entity.KindBuyer, a.Kind)
	assert.NotEqual(t, "password123", a.Password, "password must be stored hashed")

	got, pair, err := svc.Login(ctx, entity.KindBuyer, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := buyers.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken, stored.AccessToken)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newSessionService()
	ctx := context.Background()

	_, err := svc.Register(ctx, entity.KindSeller, "Charlie", "charlie@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, entity.KindSeller, "Imposter", "charlie@example.com", "hunter22222")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterSameEmailAcrossKinds(t *testing.T) {
	svc, _, _ := newSessionService()
	ctx := context.Background()

	_, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// Buyer and seller tables are independent; the email may exist in both.
	_, err = svc.Register(ctx, entity.KindSeller, "Alice's Shop", "alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newSessionService()
	ctx := context.Background()

	_, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, errUnknown := svc.Login(ctx, entity.KindBuyer, "nobody@example.com", "password123")
	_, _, errWrongPw := svc.Login(ctx, entity.KindBuyer, "alice@example.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestRefreshRotatesStoredToken(t *testing.T) {
	svc, buyers, _ := newSessionService()
	ctx := context.Background()

	a, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// Seed a known refresh token as the session of record.
	require.NoError(t, buyers.UpdateTokens(ctx, a.ID, "old-access", "old-refresh"))

	pair, err := svc.Refresh(ctx, entity.KindBuyer, "old-refresh", a.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)

	stored, err := buyers.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken, "rotation must persist the new pair")

	// The replaced token is single-use.
	_, err = svc.Refresh(ctx, entity.KindBuyer, "old-refresh", a.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsMissingOrForeignToken(t *testing.T) {
	svc, buyers, _ := newSessionService()
	ctx := context.Background()

	a, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, buyers.UpdateTokens(ctx, a.ID, "access", "refresh"))

	_, err = svc.Refresh(ctx, entity.KindBuyer, "", a.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Refresh(ctx, entity.KindBuyer, "someone-elses-token", a.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(ctx, entity.KindBuyer, "refresh", a.ID+99)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshRejectsLoggedOutAccount(t *testing.T) {
	svc, _, _ := newSessionService()
	ctx := context.Background()

	a, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, entity.KindBuyer, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, entity.KindBuyer, a.ID))

	_, err = svc.Refresh(ctx, entity.KindBuyer, pair.RefreshToken, a.ID)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutClearsTokens(t *testing.T) {
	svc, buyers, _ := newSessionService()
	ctx := context.Background()

	a, err := svc.Register(ctx, entity.KindBuyer, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, entity.KindBuyer, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, entity.KindBuyer, a.ID))

	stored, err := buyers.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.RefreshToken)

	// Logging out an unknown account is not an error.
	assert.NoError(t, svc.Logout(ctx, entity.KindBuyer, a.ID+99))
}

func TestUnknownKindIsRejected(t *testing.T) {
	svc, _, _ := newSessionService()
	ctx := context.Background()

	_, err := svc.Register(ctx, entity.AccountKind("admin"), "Eve", "eve@example.com", "password123")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.Login(ctx, entity.AccountKind("admin"), "eve@example.com", "password123")
	assert.ErrorIs(t, err, ErrNotFound)
}
