package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a marketplace member. Artists and buyers share the same record;
// IsArtist only controls whether the user is listed as an artist.
//
// FollowerCount and FollowingCount are denormalized and rewritten from the
// follow relation after every follow toggle.
type User struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	RBBalance       decimal.Decimal
	Bio             string
	Specialization  string
	IsArtist        bool
	IsAdmin         bool
	FollowerCount   int
	FollowingCount  int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName prefers the full name and falls back to the email.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// UpsertUser carries a partial user update. Nil fields keep the stored value.
type UpsertUser struct {
	ID              string
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	RBBalance       *decimal.Decimal
	Bio             *string
	Specialization  *string
	IsArtist        *bool
	IsAdmin         *bool
}

// Identity is what the identity provider vouches for at login.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}
