package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Marketplace categories accepted on upload.
const (
	CategoryDigitalPainting = "Digital Painting"
	Category3DArt           = "3D Art"
	CategoryPhotography     = "Photography"
	CategoryIllustration    = "Illustration"
	CategoryAbstract        = "Abstract"
	CategoryConceptArt      = "Concept Art"

	// CategoryAll disables the category filter on listings.
	CategoryAll = "all"
)

var Categories = []string{
	CategoryDigitalPainting,
	Category3DArt,
	CategoryPhotography,
	CategoryIllustration,
	CategoryAbstract,
	CategoryConceptArt,
}

// Artwork is a piece listed for sale. Once IsAvailable flips to false the
// artwork is sold and stays sold.
type Artwork struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Category    string
	ArtistID    string
	LikeCount   int
	ViewCount   int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewArtwork is the validated input for creating an artwork.
type NewArtwork struct {
	Title       string
	Description string
	ImageURL    string
	Price       decimal.Decimal
	Category    string
	ArtistID    string
}

type ArtworkSort string

const (
	SortNewest    ArtworkSort = "newest"
	SortPopular   ArtworkSort = "popular"
	SortPriceLow  ArtworkSort = "price-low"
	SortPriceHigh ArtworkSort = "price-high"
)

// ArtworkQuery drives the paginated artwork listing.
type ArtworkQuery struct {
	Limit    int
	Offset   int
	Category string
	Sort     ArtworkSort
	// ViewerID fills IsLiked on the results when set.
	ViewerID string
}

const (
	DefaultArtworkLimit = 20
	MaxArtworkLimit     = 100
)

// ClampArtworkLimit maps a requested page size onto 1..MaxArtworkLimit;
// zero or negative means DefaultArtworkLimit.
func ClampArtworkLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultArtworkLimit
	case n > MaxArtworkLimit:
		return MaxArtworkLimit
	}
	return n
}
