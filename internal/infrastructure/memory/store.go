package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/domain/repository"
)

// DefaultBalance is credited to users created without an explicit balance.
var DefaultBalance = decimal.RequireFromString("1250.00")

type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// heldLock is used by the view handed to Atomic callbacks; the outer lock is
// already held for the whole callback.
type heldLock struct{}

func (heldLock) Lock()    {}
func (heldLock) Unlock()  {}
func (heldLock) RLock()   {}
func (heldLock) RUnlock() {}

// collections holds the primary maps plus the secondary indexes kept in step
// with them. Slices of ids are in insertion order.
type collections struct {
	users     map[string]*entity.User
	artworks  map[string]*entity.Artwork
	likes     map[string]*entity.Like
	comments  map[string]*entity.Comment
	follows   map[string]*entity.Follow
	purchases map[string]*entity.Purchase

	userOrder    []string
	artworkOrder []string

	// artwork -> user -> like id
	likesByArtwork map[string]map[string]string
	// follower -> followee -> follow id
	followsByFollower map[string]map[string]string
	// followee -> follower -> follow id
	followsByFollowee map[string]map[string]string

	artworksByArtist  map[string][]string
	commentsByArtwork map[string][]string
	purchasesByBuyer  map[string][]string
}

func newCollections() *collections {
	return &collections{
		users:             make(map[string]*entity.User),
		artworks:          make(map[string]*entity.Artwork),
		likes:             make(map[string]*entity.Like),
		comments:          make(map[string]*entity.Comment),
		follows:           make(map[string]*entity.Follow),
		purchases:         make(map[string]*entity.Purchase),
		likesByArtwork:    make(map[string]map[string]string),
		followsByFollower: make(map[string]map[string]string),
		followsByFollowee: make(map[string]map[string]string),
		artworksByArtist:  make(map[string][]string),
		commentsByArtwork: make(map[string][]string),
		purchasesByBuyer:  make(map[string][]string),
	}
}

// Store is a process-local MarketplaceStore. All state is lost when the
// process exits. Returned entities are copies; mutating them does not touch
// the store.
type Store struct {
	mu             rwLocker
	c              *collections
	now            func() time.Time
	newID          func() string
	defaultBalance decimal.Decimal
}

type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithDefaultBalance sets the balance given to newly created users.
func WithDefaultBalance(d decimal.Decimal) Option {
	return func(s *Store) { s.defaultBalance = d.Round(2) }
}

func New(opts ...Option) *Store {
	s := &Store{
		mu:             &sync.RWMutex{},
		c:              newCollections(),
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		defaultBalance: DefaultBalance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Atomic(fn func(tx repository.MarketplaceStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Store{
		mu:             heldLock{},
		c:              s.c,
		now:            s.now,
		newID:          s.newID,
		defaultBalance: s.defaultBalance,
	})
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func cloneArtwork(a *entity.Artwork) *entity.Artwork {
	cp := *a
	return &cp
}

func indexAdd(idx map[string]map[string]string, outer, inner, id string) {
	m, ok := idx[outer]
	if !ok {
		m = make(map[string]string)
		idx[outer] = m
	}
	m[inner] = id
}

func indexDel(idx map[string]map[string]string, outer, inner string) {
	m, ok := idx[outer]
	if !ok {
		return
	}
	delete(m, inner)
	if len(m) == 0 {
		delete(idx, outer)
	}
}

var _ repository.MarketplaceStore = (*Store)(nil)
