package repository

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrNegativeBalance = errors.New("balance cannot be negative")
)

// UserRepository defines user reads and writes.
type UserRepository interface {
	GetUser(id string) (*entity.User, error)
	UpsertUser(in entity.UpsertUser) (*entity.User, error)
	UpdateUserBalance(id string, amount decimal.Decimal) error
	ListUsersByRole(isArtist bool) ([]*entity.User, error)
	GetArtistProfile(artistID, viewerID string) (*entity.ArtistProfile, error)
}

type ArtworkRepository interface {
	CreateArtwork(in entity.NewArtwork) (*entity.Artwork, error)
	GetArtwork(id string) (*entity.Artwork, error)
	GetArtworkWithArtist(id, viewerID string) (*entity.ArtworkWithArtist, error)
	GetArtworksByIDs(ids []string, viewerID string) ([]*entity.ArtworkWithArtist, error)
	ListArtworks(q entity.ArtworkQuery) ([]*entity.ArtworkWithArtist, error)
	ListArtworksByArtist(artistID string) ([]*entity.Artwork, error)
	SearchArtworks(q string, limit int, viewerID string) ([]*entity.ArtworkWithArtist, error)
	UpdateArtworkAvailability(id string, available bool) error
	IncrementArtworkViews(id string) error
}

// LikeRepository toggles likes. Every toggle rewrites the artwork's LikeCount.
type LikeRepository interface {
	ToggleLike(userID, artworkID string) (bool, error)
	IsArtworkLiked(userID, artworkID string) (bool, error)
	RecountArtworkLikes(artworkID string) error
}

type CommentRepository interface {
	CreateComment(in entity.NewComment) (*entity.Comment, error)
	ListCommentsByArtwork(artworkID string) ([]*entity.CommentWithUser, error)
}

// FollowRepository toggles follows. Every toggle rewrites the follow counts
// of both users involved.
type FollowRepository interface {
	ToggleFollow(followerID, followeeID string) (bool, error)
	IsFollowing(followerID, followeeID string) (bool, error)
	RecountFollows(userID string) error
}

type PurchaseRepository interface {
	CreatePurchase(in entity.NewPurchase) (*entity.Purchase, error)
	ListPurchasesByUser(buyerID string) ([]*entity.Purchase, error)
}

// MarketplaceStore is the full entity store.
type MarketplaceStore interface {
	UserRepository
	ArtworkRepository
	LikeRepository
	CommentRepository
	FollowRepository
	PurchaseRepository

	// Atomic runs fn with exclusive access to the store. Operations on tx
	// inside fn are not interleaved with any other store operation.
	Atomic(fn func(tx MarketplaceStore) error) error
}
