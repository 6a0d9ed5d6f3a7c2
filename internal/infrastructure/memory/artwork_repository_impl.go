package memory

import (
	"sort"
	"strings"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/domain/repository"
)

// CreateArtwork stores a new available artwork. The artist must exist.
func (s *Store) CreateArtwork(in entity.NewArtwork) (*entity.Artwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.users[in.ArtistID]; !ok {
		return nil, repository.ErrNotFound
	}
	now := s.now()
	a := &entity.Artwork{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price.Round(2),
		Category:    in.Category,
		ArtistID:    in.ArtistID,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.c.artworks[a.ID] = a
	s.c.artworkOrder = append(s.c.artworkOrder, a.ID)
	s.c.artworksByArtist[a.ArtistID] = append(s.c.artworksByArtist[a.ArtistID], a.ID)
	return cloneArtwork(a), nil
}

func (s *Store) GetArtwork(id string) (*entity.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.c.artworks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneArtwork(a), nil
}

// GetArtworkWithArtist reports ErrNotFound when either the artwork or its
// artist is missing.
func (s *Store) GetArtworkWithArtist(id, viewerID string) (*entity.ArtworkWithArtist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.c.artworks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v, ok := s.join(a, viewerID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

// GetArtworksByIDs keeps the order of ids and skips unknown ones.
func (s *Store) GetArtworksByIDs(ids []string, viewerID string) ([]*entity.ArtworkWithArtist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.ArtworkWithArtist, 0, len(ids))
	for _, id := range ids {
		a, ok := s.c.artworks[id]
		if !ok {
			continue
		}
		if v, ok := s.join(a, viewerID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// ListArtworks filters by exact category, sorts, then paginates. Records
// whose artist cannot be resolved are left out of the page.
func (s *Store) ListArtworks(q entity.ArtworkQuery) ([]*entity.ArtworkWithArtist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := q.Category != "" && q.Category != entity.CategoryAll
	list := make([]*entity.Artwork, 0, len(s.c.artworkOrder))
	for i := len(s.c.artworkOrder) - 1; i >= 0; i-- {
		a := s.c.artworks[s.c.artworkOrder[i]]
		if filter && a.Category != q.Category {
			continue
		}
		list = append(list, a)
	}
	sortArtworks(list, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = entity.DefaultArtworkLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []*entity.ArtworkWithArtist{}, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}

	out := make([]*entity.ArtworkWithArtist, 0, end-offset)
	for _, a := range list[offset:end] {
		if v, ok := s.join(a, q.ViewerID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) ListArtworksByArtist(artistID string) ([]*entity.Artwork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.c.artworksByArtist[artistID]
	list := make([]*entity.Artwork, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		list = append(list, s.c.artworks[ids[i]])
	}
	sortArtworks(list, entity.SortNewest)

	out := make([]*entity.Artwork, len(list))
	for i, a := range list {
		out[i] = cloneArtwork(a)
	}
	return out, nil
}

// SearchArtworks does a case-insensitive substring match over title,
// description and category, newest first. IsLiked is set for viewerID.
func (s *Store) SearchArtworks(q string, limit int, viewerID string) ([]*entity.ArtworkWithArtist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = entity.DefaultArtworkLimit
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	list := make([]*entity.Artwork, 0)
	for i := len(s.c.artworkOrder) - 1; i >= 0; i-- {
		a := s.c.artworks[s.c.artworkOrder[i]]
		if needle == "" ||
			strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Description), needle) ||
			strings.Contains(strings.ToLower(a.Category), needle) {
			list = append(list, a)
		}
	}
	sortArtworks(list, entity.SortNewest)

	out := make([]*entity.ArtworkWithArtist, 0, limit)
	for _, a := range list {
		if len(out) == limit {
			break
		}
		if v, ok := s.join(a, viewerID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) UpdateArtworkAvailability(id string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.c.artworks[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsAvailable = available
	a.UpdatedAt = s.now()
	return nil
}

func (s *Store) IncrementArtworkViews(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.c.artworks[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.ViewCount++
	a.UpdatedAt = s.now()
	return nil
}

// join must be called with the lock held.
func (s *Store) join(a *entity.Artwork, viewerID string) (*entity.ArtworkWithArtist, bool) {
	artist, ok := s.c.users[a.ArtistID]
	if !ok {
		return nil, false
	}
	v := &entity.ArtworkWithArtist{Artwork: *a, Artist: *artist}
	if viewerID != "" {
		_, v.IsLiked = s.c.likesByArtwork[a.ID][viewerID]
	}
	return v, true
}

// sortArtworks expects list in reverse insertion order so that equal keys
// keep the most recently inserted artwork first.
func sortArtworks(list []*entity.Artwork, by entity.ArtworkSort) {
	newer := func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) }
	var less func(i, j int) bool
	switch by {
	case entity.SortPopular:
		less = func(i, j int) bool {
			if list[i].LikeCount != list[j].LikeCount {
				return list[i].LikeCount > list[j].LikeCount
			}
			return newer(i, j)
		}
	case entity.SortPriceLow:
		less = func(i, j int) bool {
			if c := list[i].Price.Cmp(list[j].Price); c != 0 {
				return c < 0
			}
			return newer(i, j)
		}
	case entity.SortPriceHigh:
		less = func(i, j int) bool {
			if c := list[i].Price.Cmp(list[j].Price); c != 0 {
				return c > 0
			}
			return newer(i, j)
		}
	default:
		less = newer
	}
	sort.SliceStable(list, less)
}
