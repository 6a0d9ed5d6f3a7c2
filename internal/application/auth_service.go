package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

const sessionTTL = 24 * time.Hour

// IdentityVerifier turns an identity provider token into an Identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*entity.Identity, error)
}

// AuthService exchanges identities for this service's JWT pair and keeps
// the live session in Redis when one is configured.
type AuthService struct {
	Users         repo.UserRepository
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Verifier      IdentityVerifier
	AllowDevLogin bool
	Logger        *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, verifier IdentityVerifier, allowDevLogin bool, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{
		Users:         users,
		JWT:           jwt,
		Redis:         rdb,
		Verifier:      verifier,
		AllowDevLogin: allowDevLogin,
		Logger:        logger,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// LoginInput carries either an ID token for the verifier or, in
// development, the identity claims themselves.
type LoginInput struct {
	IDToken  string
	Identity *entity.Identity
}

func (s *AuthService) resolveIdentity(ctx context.Context, in LoginInput) (*entity.Identity, error) {
	if s.Verifier != nil {
		if in.IDToken == "" {
			return nil, ErrInvalidCredentials
		}
		id, err := s.Verifier.Verify(ctx, in.IDToken)
		if err != nil {
			s.Logger.WithError(err).Debug("id token rejected")
			return nil, ErrInvalidCredentials
		}
		return id, nil
	}
	if !s.AllowDevLogin {
		return nil, ErrLoginUnavailable
	}
	if in.Identity == nil || strings.TrimSpace(in.Identity.Subject) == "" {
		return nil, ErrInvalidCredentials
	}
	return in.Identity, nil
}

// Login upserts the user behind the identity and issues a token pair.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.User, TokenPair, error) {
	id, err := s.resolveIdentity(ctx, in)
	if err != nil {
		return nil, TokenPair{}, err
	}
	up := entity.UpsertUser{ID: id.Subject}
	if id.Email != "" {
		up.Email = &id.Email
	}
	if id.FirstName != "" {
		up.FirstName = &id.FirstName
	}
	if id.LastName != "" {
		up.LastName = &id.LastName
	}
	if id.ProfileImageURL != "" {
		up.ProfileImageURL = &id.ProfileImageURL
	}
	u, err := s.Users.UpsertUser(up)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user logged in")
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.DisplayName(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

// Refresh validates the refresh token against the live session and rotates
// both the session id and the tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if _, err := s.Users.GetUser(claims.UserID); err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		key := helpers.SessionKey(claims.UserID)
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	pair, err := s.sign(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, "", err
	}
	if s.Redis != nil {
		key := helpers.SessionKey(claims.UserID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		_, _ = pipe.Exec(ctx)
	}
	return pair, claims.UserID, nil
}

// Logout drops the Redis session so outstanding tokens stop working.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil || userID == "" {
		return nil
	}
	return s.Redis.Del(ctx, helpers.SessionKey(userID)).Err()
}

func (s *AuthService) CurrentUser(userID string) (*entity.User, error) {
	u, err := s.Users.GetUser(userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *AuthService) sign(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
