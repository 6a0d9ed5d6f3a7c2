package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rb-marketplace/config"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

// Publisher puts a JSON message on a queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ArtworkIndex is an external full-text index over artworks.
type ArtworkIndex interface {
	IndexArtwork(ctx context.Context, a *entity.Artwork) error
	SearchArtworkIDs(ctx context.Context, q string, size int) ([]string, error)
}

// MarketplaceService implements the marketplace use cases on top of the
// entity store. Index and Mail are optional.
type MarketplaceService struct {
	Store  repo.MarketplaceStore
	Index  ArtworkIndex
	Mail   Publisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewMarketplaceService(store repo.MarketplaceStore, index ArtworkIndex, mail Publisher, cfg *config.Config, logger *logrus.Logger) *MarketplaceService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &MarketplaceService{Store: store, Index: index, Mail: mail, Cfg: cfg, Logger: logger}
}

func (s *MarketplaceService) GetUser(id string) (*entity.User, error) {
	u, err := s.Store.GetUser(id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	Bio             *string
	Specialization  *string
	IsArtist        *bool
}

// UpdateProfile edits an existing user. It never creates one.
func (s *MarketplaceService) UpdateProfile(userID string, in ProfileUpdate) (*entity.User, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.Store.UpsertUser(entity.UpsertUser{
		ID:              userID,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ProfileImageURL: in.ProfileImageURL,
		Bio:             in.Bio,
		Specialization:  in.Specialization,
		IsArtist:        in.IsArtist,
	})
}

func (s *MarketplaceService) ListArtists() ([]*entity.User, error) {
	return s.Store.ListUsersByRole(true)
}

func (s *MarketplaceService) GetArtistProfile(artistID, viewerID string) (*entity.ArtistProfile, error) {
	p, err := s.Store.GetArtistProfile(artistID, viewerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return p, err
}

type CreateArtworkInput struct {
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Category    string
}

// CreateArtwork lists a new artwork owned by artistID and indexes it.
func (s *MarketplaceService) CreateArtwork(ctx context.Context, artistID string, in CreateArtworkInput) (*entity.ArtworkWithArtist, error) {
	a, err := s.Store.CreateArtwork(entity.NewArtwork{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    in.ImageURL,
		Price:       in.Price.Round(2),
		Category:    in.Category,
		ArtistID:    artistID,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	s.index(ctx, a)
	return s.Store.GetArtworkWithArtist(a.ID, artistID)
}

// ListArtworks clamps the page size and defaults the sort order.
func (s *MarketplaceService) ListArtworks(q entity.ArtworkQuery) ([]*entity.ArtworkWithArtist, error) {
	q.Limit = entity.ClampArtworkLimit(q.Limit)
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Sort == "" {
		q.Sort = entity.SortNewest
	}
	return s.Store.ListArtworks(q)
}

// ViewArtwork bumps the view counter and returns the joined artwork.
func (s *MarketplaceService) ViewArtwork(artworkID, viewerID string) (*entity.ArtworkWithArtist, error) {
	if err := s.Store.IncrementArtworkViews(artworkID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	v, err := s.Store.GetArtworkWithArtist(artworkID, viewerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrArtworkNotFound
	}
	return v, err
}

func (s *MarketplaceService) ListArtworksByArtist(artistID string) ([]*entity.Artwork, error) {
	return s.Store.ListArtworksByArtist(artistID)
}

// SearchArtworks asks the external index first and falls back to the
// store's substring search when no index is configured or it fails.
func (s *MarketplaceService) SearchArtworks(ctx context.Context, q string, limit int, viewerID string) ([]*entity.ArtworkWithArtist, error) {
	limit = entity.ClampArtworkLimit(limit)
	if s.Index != nil && strings.TrimSpace(q) != "" {
		ids, err := s.Index.SearchArtworkIDs(ctx, q, limit)
		if err == nil {
			return s.Store.GetArtworksByIDs(ids, viewerID)
		}
		s.Logger.WithError(err).WithField("q", q).Warn("artwork search index failed, using store")
	}
	return s.Store.SearchArtworks(q, limit, viewerID)
}

// ToggleLike flips the caller's like and returns the new state.
func (s *MarketplaceService) ToggleLike(ctx context.Context, userID, artworkID string) (bool, error) {
	if _, err := s.Store.GetArtwork(artworkID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrArtworkNotFound
		}
		return false, err
	}
	liked, err := s.Store.ToggleLike(userID, artworkID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}
	if a, err := s.Store.GetArtwork(artworkID); err == nil {
		s.index(ctx, a)
	}
	return liked, nil
}

func (s *MarketplaceService) ListComments(artworkID string) ([]*entity.CommentWithUser, error) {
	return s.Store.ListCommentsByArtwork(artworkID)
}

func (s *MarketplaceService) AddComment(userID, artworkID, content string) (*entity.CommentWithUser, error) {
	if _, err := s.Store.GetArtwork(artworkID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	u, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	cm, err := s.Store.CreateComment(entity.NewComment{
		Content:   strings.TrimSpace(content),
		UserID:    userID,
		ArtworkID: artworkID,
	})
	if err != nil {
		return nil, err
	}
	return &entity.CommentWithUser{Comment: *cm, User: *u}, nil
}

// ToggleFollow flips the follow from followerID to followeeID and returns
// the new state.
func (s *MarketplaceService) ToggleFollow(followerID, followeeID string) (bool, error) {
	if followerID == followeeID {
		return false, ErrSelfFollow
	}
	following, err := s.Store.ToggleFollow(followerID, followeeID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, ErrUserNotFound
	}
	return following, err
}

func (s *MarketplaceService) ListPurchases(buyerID string) ([]*entity.Purchase, error) {
	return s.Store.ListPurchasesByUser(buyerID)
}

// index pushes the artwork to the search index. Failures are logged only.
func (s *MarketplaceService) index(ctx context.Context, a *entity.Artwork) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexArtwork(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("artwork_id", a.ID).Warn("index artwork failed")
	}
}
