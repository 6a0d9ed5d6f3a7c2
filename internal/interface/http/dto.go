package handlers

import (
	"time"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

type userResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	RBBalance       string    `json:"rb_balance,omitempty"`
	Bio             string    `json:"bio"`
	Specialization  string    `json:"specialization"`
	IsArtist        bool      `json:"is_artist"`
	IsAdmin         bool      `json:"is_admin"`
	FollowerCount   int       `json:"follower_count"`
	FollowingCount  int       `json:"following_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// toUserResponse hides email and balance unless private is set.
func toUserResponse(u *entity.User, private bool) userResponse {
	r := userResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
		Specialization:  u.Specialization,
		IsArtist:        u.IsArtist,
		IsAdmin:         u.IsAdmin,
		FollowerCount:   u.FollowerCount,
		FollowingCount:  u.FollowingCount,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if private {
		r.Email = u.Email
		r.RBBalance = u.RBBalance.StringFixed(2)
	}
	return r
}

func toUserList(list []*entity.User) []userResponse {
	out := make([]userResponse, len(list))
	for i, u := range list {
		out[i] = toUserResponse(u, false)
	}
	return out
}

type artistProfileResponse struct {
	userResponse
	ArtworkCount int  `json:"artwork_count"`
	IsFollowing  bool `json:"is_following"`
}

type artworkResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Price       string        `json:"price"`
	Category    string        `json:"category"`
	ArtistID    string        `json:"artist_id"`
	LikeCount   int           `json:"like_count"`
	ViewCount   int           `json:"view_count"`
	IsAvailable bool          `json:"is_available"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Artist      *userResponse `json:"artist,omitempty"`
	IsLiked     *bool         `json:"is_liked,omitempty"`
}

func toArtworkResponse(a *entity.Artwork) artworkResponse {
	return artworkResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Price:       a.Price.StringFixed(2),
		Category:    a.Category,
		ArtistID:    a.ArtistID,
		LikeCount:   a.LikeCount,
		ViewCount:   a.ViewCount,
		IsAvailable: a.IsAvailable,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toArtworkWithArtist(v *entity.ArtworkWithArtist) artworkResponse {
	r := toArtworkResponse(&v.Artwork)
	artist := toUserResponse(&v.Artist, false)
	liked := v.IsLiked
	r.Artist = &artist
	r.IsLiked = &liked
	return r
}

func toArtworkList(list []*entity.ArtworkWithArtist) []artworkResponse {
	out := make([]artworkResponse, len(list))
	for i, v := range list {
		out[i] = toArtworkWithArtist(v)
	}
	return out
}

type commentResponse struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	UserID    string       `json:"user_id"`
	ArtworkID string       `json:"artwork_id"`
	CreatedAt time.Time    `json:"created_at"`
	User      userResponse `json:"user"`
}

func toCommentResponse(cm *entity.CommentWithUser) commentResponse {
	return commentResponse{
		ID:        cm.ID,
		Content:   cm.Content,
		UserID:    cm.UserID,
		ArtworkID: cm.ArtworkID,
		CreatedAt: cm.CreatedAt,
		User:      toUserResponse(&cm.User, false),
	}
}

type purchaseResponse struct {
	ID        string    `json:"id"`
	BuyerID   string    `json:"buyer_id"`
	ArtworkID string    `json:"artwork_id"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func toPurchaseResponse(p *entity.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:        p.ID,
		BuyerID:   p.BuyerID,
		ArtworkID: p.ArtworkID,
		Price:     p.Price.StringFixed(2),
		CreatedAt: p.CreatedAt,
	}
}
