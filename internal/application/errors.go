package application

import "errors"

var (
	ErrArtworkNotFound     = errors.New("artwork not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrBuyerNotFound       = errors.New("buyer not found")
	ErrArtistNotFound      = errors.New("artist not found")
	ErrArtworkUnavailable  = errors.New("artwork is no longer available")
	ErrSelfPurchase        = errors.New("cannot purchase your own artwork")
	ErrInsufficientBalance = errors.New("insufficient RB balance")
	ErrSelfFollow          = errors.New("cannot follow yourself")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginUnavailable   = errors.New("no identity provider configured")
)
