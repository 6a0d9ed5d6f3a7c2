package memory

import (
	"github.com/shopspring/decimal"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/domain/repository"
)

func (s *Store) GetUser(id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.c.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

// UpsertUser merges the non-nil fields of in onto the stored user, creating
// it when absent. CreatedAt is kept, UpdatedAt always refreshed.
func (s *Store) UpsertUser(in entity.UpsertUser) (*entity.User, error) {
	if in.RBBalance != nil && in.RBBalance.IsNegative() {
		return nil, repository.ErrNegativeBalance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := in.ID
	if id == "" {
		id = s.newID()
	}
	u, ok := s.c.users[id]
	if !ok {
		u = &entity.User{ID: id, RBBalance: s.defaultBalance, CreatedAt: now}
		s.c.users[id] = u
		s.c.userOrder = append(s.c.userOrder, id)
	}

	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.ProfileImageURL != nil {
		u.ProfileImageURL = *in.ProfileImageURL
	}
	if in.RBBalance != nil {
		u.RBBalance = in.RBBalance.Round(2)
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Specialization != nil {
		u.Specialization = *in.Specialization
	}
	if in.IsArtist != nil {
		u.IsArtist = *in.IsArtist
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	u.UpdatedAt = now
	return cloneUser(u), nil
}

func (s *Store) UpdateUserBalance(id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return repository.ErrNegativeBalance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.c.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RBBalance = amount.Round(2)
	u.UpdatedAt = s.now()
	return nil
}

// ListUsersByRole returns users in registration order.
func (s *Store) ListUsersByRole(isArtist bool) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.User, 0)
	for _, id := range s.c.userOrder {
		u := s.c.users[id]
		if u.IsArtist == isArtist {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *Store) GetArtistProfile(artistID, viewerID string) (*entity.ArtistProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.c.users[artistID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p := &entity.ArtistProfile{
		User:         *u,
		ArtworkCount: len(s.c.artworksByArtist[artistID]),
	}
	if viewerID != "" {
		_, p.IsFollowing = s.c.followsByFollower[viewerID][artistID]
	}
	return p, nil
}
