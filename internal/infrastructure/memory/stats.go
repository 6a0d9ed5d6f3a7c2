package memory

import "github.com/oksasatya/rb-marketplace/internal/domain/entity"

// Stats counts the stored entities under a read lock.
func (s *Store) Stats() entity.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := entity.StoreStats{
		Users:     len(s.c.users),
		Artworks:  len(s.c.artworks),
		Likes:     len(s.c.likes),
		Comments:  len(s.c.comments),
		Follows:   len(s.c.follows),
		Purchases: len(s.c.purchases),
	}
	for _, u := range s.c.users {
		if u.IsArtist {
			st.Artists++
		}
	}
	for _, a := range s.c.artworks {
		if a.IsAvailable {
			st.Available++
		}
	}
	return st
}
