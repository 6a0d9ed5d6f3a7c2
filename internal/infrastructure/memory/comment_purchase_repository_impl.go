package memory

import (
	"sort"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/domain/repository"
)

// CreateComment requires both the author and the artwork to exist.
func (s *Store) CreateComment(in entity.NewComment) (*entity.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.users[in.UserID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := s.c.artworks[in.ArtworkID]; !ok {
		return nil, repository.ErrNotFound
	}
	cm := &entity.Comment{
		ID:        s.newID(),
		Content:   in.Content,
		UserID:    in.UserID,
		ArtworkID: in.ArtworkID,
		CreatedAt: s.now(),
	}
	s.c.comments[cm.ID] = cm
	s.c.commentsByArtwork[cm.ArtworkID] = append(s.c.commentsByArtwork[cm.ArtworkID], cm.ID)
	cp := *cm
	return &cp, nil
}

// ListCommentsByArtwork returns the artwork's comments newest first. An
// unknown artwork simply has no comments.
func (s *Store) ListCommentsByArtwork(artworkID string) ([]*entity.CommentWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.c.commentsByArtwork[artworkID]
	list := make([]*entity.Comment, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		list = append(list, s.c.comments[ids[i]])
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	out := make([]*entity.CommentWithUser, 0, len(list))
	for _, cm := range list {
		u, ok := s.c.users[cm.UserID]
		if !ok {
			continue
		}
		out = append(out, &entity.CommentWithUser{Comment: *cm, User: *u})
	}
	return out, nil
}

// CreatePurchase records a purchase snapshot. It does not move any balance.
func (s *Store) CreatePurchase(in entity.NewPurchase) (*entity.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.users[in.BuyerID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := s.c.artworks[in.ArtworkID]; !ok {
		return nil, repository.ErrNotFound
	}
	p := &entity.Purchase{
		ID:        s.newID(),
		BuyerID:   in.BuyerID,
		ArtworkID: in.ArtworkID,
		Price:     in.Price.Round(2),
		CreatedAt: s.now(),
	}
	s.c.purchases[p.ID] = p
	s.c.purchasesByBuyer[p.BuyerID] = append(s.c.purchasesByBuyer[p.BuyerID], p.ID)
	cp := *p
	return &cp, nil
}

func (s *Store) ListPurchasesByUser(buyerID string) ([]*entity.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.c.purchasesByBuyer[buyerID]
	out := make([]*entity.Purchase, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		cp := *s.c.purchases[ids[i]]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
