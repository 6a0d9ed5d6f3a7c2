package entity

// ArtworkWithArtist joins an artwork with its artist and, when a viewer is
// known, whether the viewer liked it.
type ArtworkWithArtist struct {
	Artwork
	Artist  User
	IsLiked bool
}

type CommentWithUser struct {
	Comment
	User User
}

// ArtistProfile is a user together with the number of artworks they own.
type ArtistProfile struct {
	User
	ArtworkCount int
	IsFollowing  bool
}

// StoreStats is a point-in-time count of every collection in the store.
type StoreStats struct {
	Users     int `json:"users"`
	Artists   int `json:"artists"`
	Artworks  int `json:"artworks"`
	Available int `json:"available"`
	Likes     int `json:"likes"`
	Comments  int `json:"comments"`
	Follows   int `json:"follows"`
	Purchases int `json:"purchases"`
}
