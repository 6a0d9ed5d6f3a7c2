package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Like is a (user, artwork) pair. At most one exists per pair.
type Like struct {
	ID        string
	UserID    string
	ArtworkID string
	CreatedAt time.Time
}

// Follow is a (follower, followee) pair. At most one exists per pair.
type Follow struct {
	ID         string
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}

type Comment struct {
	ID        string
	Content   string
	UserID    string
	ArtworkID string
	CreatedAt time.Time
}

type NewComment struct {
	Content   string
	UserID    string
	ArtworkID string
}

// Purchase snapshots the price paid at the time of sale. Immutable.
type Purchase struct {
	ID        string
	BuyerID   string
	ArtworkID string
	Price     decimal.Decimal
	CreatedAt time.Time
}

type NewPurchase struct {
	BuyerID   string
	ArtworkID string
	Price     decimal.Decimal
}
