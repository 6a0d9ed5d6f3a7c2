package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

type stubVerifier struct {
	id  *entity.Identity
	err error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (*entity.Identity, error) {
	return s.id, s.err
}

func newAuth(verifier IdentityVerifier, dev bool) (*AuthService, *memory.Store) {
	store := memory.New()
	jwt := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	return NewAuthService(store, jwt, nil, verifier, dev, nil), store
}

func TestLogin_DevClaimsUpsertUser(t *testing.T) {
	svc, store := newAuth(nil, true)

	u, pair, err := svc.Login(context.Background(), LoginInput{Identity: &entity.Identity{
		Subject: "sub-1", Email: "ana@example.com", FirstName: "Ana",
	}})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", u.ID)
	assert.Equal(t, "1250.00", u.RBBalance.StringFixed(2))
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	stored, err := store.GetUser("sub-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
}

func TestLogin_KeepsProfileOnRelogin(t *testing.T) {
	svc, store := newAuth(nil, true)
	id := &entity.Identity{Subject: "sub-1", Email: "ana@example.com"}

	_, _, err := svc.Login(context.Background(), LoginInput{Identity: id})
	require.NoError(t, err)
	bio := "hello"
	_, err = store.UpsertUser(entity.UpsertUser{ID: "sub-1", Bio: &bio})
	require.NoError(t, err)

	u, _, err := svc.Login(context.Background(), LoginInput{Identity: id})
	require.NoError(t, err)
	assert.Equal(t, "hello", u.Bio)
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := newAuth(nil, false)
	_, _, err := svc.Login(context.Background(), LoginInput{Identity: &entity.Identity{Subject: "x"}})
	assert.ErrorIs(t, err, ErrLoginUnavailable)

	svc, _ = newAuth(nil, true)
	_, _, err = svc.Login(context.Background(), LoginInput{Identity: &entity.Identity{}})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	svc, _ = newAuth(stubVerifier{err: errors.New("bad sig")}, true)
	_, _, err = svc.Login(context.Background(), LoginInput{IDToken: "tok"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), LoginInput{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WithVerifier(t *testing.T) {
	svc, _ := newAuth(stubVerifier{id: &entity.Identity{Subject: "oidc-1", Email: "o@example.com"}}, false)
	u, _, err := svc.Login(context.Background(), LoginInput{IDToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "oidc-1", u.ID)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuth(nil, true)
	_, pair, err := svc.Login(context.Background(), LoginInput{Identity: &entity.Identity{Subject: "sub-1"}})
	require.NoError(t, err)

	next, uid, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", uid)
	assert.NotEmpty(t, next.AccessToken)

	_, _, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuth(nil, true)
	_, err := svc.CurrentUser("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, svc.Logout(context.Background(), "nobody"))
}
