package memory

import (
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/domain/repository"
)

// ToggleLike removes the user's like on the artwork if present, otherwise
// adds one. It returns true when the artwork is liked afterwards.
func (s *Store) ToggleLike(userID, artworkID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.artworks[artworkID]; !ok {
		return false, repository.ErrNotFound
	}
	if _, ok := s.c.users[userID]; !ok {
		return false, repository.ErrNotFound
	}

	liked := false
	if likeID, ok := s.c.likesByArtwork[artworkID][userID]; ok {
		delete(s.c.likes, likeID)
		indexDel(s.c.likesByArtwork, artworkID, userID)
	} else {
		l := &entity.Like{ID: s.newID(), UserID: userID, ArtworkID: artworkID, CreatedAt: s.now()}
		s.c.likes[l.ID] = l
		indexAdd(s.c.likesByArtwork, artworkID, userID, l.ID)
		liked = true
	}
	s.recountLikes(artworkID)
	return liked, nil
}

func (s *Store) IsArtworkLiked(userID, artworkID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.c.likesByArtwork[artworkID][userID]
	return ok, nil
}

func (s *Store) RecountArtworkLikes(artworkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.artworks[artworkID]; !ok {
		return repository.ErrNotFound
	}
	s.recountLikes(artworkID)
	return nil
}

// recountLikes rewrites LikeCount from the like relation. Lock held.
func (s *Store) recountLikes(artworkID string) {
	a, ok := s.c.artworks[artworkID]
	if !ok {
		return
	}
	a.LikeCount = len(s.c.likesByArtwork[artworkID])
	a.UpdatedAt = s.now()
}

// ToggleFollow removes the follow if present, otherwise adds it, and then
// recounts both users. It returns true when follower follows followee
// afterwards.
func (s *Store) ToggleFollow(followerID, followeeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.users[followerID]; !ok {
		return false, repository.ErrNotFound
	}
	if _, ok := s.c.users[followeeID]; !ok {
		return false, repository.ErrNotFound
	}

	following := false
	if followID, ok := s.c.followsByFollower[followerID][followeeID]; ok {
		delete(s.c.follows, followID)
		indexDel(s.c.followsByFollower, followerID, followeeID)
		indexDel(s.c.followsByFollowee, followeeID, followerID)
	} else {
		f := &entity.Follow{ID: s.newID(), FollowerID: followerID, FolloweeID: followeeID, CreatedAt: s.now()}
		s.c.follows[f.ID] = f
		indexAdd(s.c.followsByFollower, followerID, followeeID, f.ID)
		indexAdd(s.c.followsByFollowee, followeeID, followerID, f.ID)
		following = true
	}
	s.recountFollows(followerID)
	s.recountFollows(followeeID)
	return following, nil
}

func (s *Store) IsFollowing(followerID, followeeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.c.followsByFollower[followerID][followeeID]
	return ok, nil
}

func (s *Store) RecountFollows(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.users[userID]; !ok {
		return repository.ErrNotFound
	}
	s.recountFollows(userID)
	return nil
}

// recountFollows rewrites both follow counters of the user. Lock held.
func (s *Store) recountFollows(userID string) {
	u, ok := s.c.users[userID]
	if !ok {
		return
	}
	u.FollowerCount = len(s.c.followsByFollowee[userID])
	u.FollowingCount = len(s.c.followsByFollower[userID])
	u.UpdatedAt = s.now()
}
