package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rb-marketplace/config"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/rb-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/rb-marketplace/pkg/mailer/templates"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	indexed map[string]*entity.Artwork
	ids     []string
	err     error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]*entity.Artwork{}} }

func (f *fakeIndex) IndexArtwork(_ context.Context, a *entity.Artwork) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[a.ID] = a
	return nil
}

func (f *fakeIndex) SearchArtworkIDs(_ context.Context, _ string, _ int) ([]string, error) {
	return f.ids, f.err
}

type fixture struct {
	store *memory.Store
	svc   *MarketplaceService
	pub   *fakePublisher
	idx   *fakeIndex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	pub := &fakePublisher{}
	idx := newFakeIndex()
	cfg := &config.Config{AppName: "rb-marketplace", MailSendEnabled: true}
	return &fixture{store: store, svc: NewMarketplaceService(store, idx, pub, cfg, nil), pub: pub, idx: idx}
}

func (f *fixture) user(t *testing.T, id, balance string, artist bool) {
	t.Helper()
	bal := decimal.RequireFromString(balance)
	email := id + "@example.com"
	_, err := f.store.UpsertUser(entity.UpsertUser{ID: id, Email: &email, FirstName: &id, RBBalance: &bal, IsArtist: &artist})
	require.NoError(t, err)
}

func (f *fixture) artwork(t *testing.T, artistID, price string) *entity.ArtworkWithArtist {
	t.Helper()
	a, err := f.svc.CreateArtwork(context.Background(), artistID, CreateArtworkInput{
		Title:    "Piece " + price,
		ImageURL: "data:image/png;base64,AAAA",
		Price:    decimal.RequireFromString(price),
		Category: entity.CategoryAbstract,
	})
	require.NoError(t, err)
	return a
}

func balance(t *testing.T, f *fixture, id string) string {
	t.Helper()
	u, err := f.store.GetUser(id)
	require.NoError(t, err)
	return u.RBBalance.StringFixed(2)
}

func TestPurchase_TransfersCredit(t *testing.T) {
	f := newFixture(t)
	f.user(t, "buyer", "100.00", false)
	f.user(t, "artist", "0.00", true)
	art := f.artwork(t, "artist", "40.00")

	p, err := f.svc.Purchase(context.Background(), "buyer", art.ID)
	require.NoError(t, err)
	assert.Equal(t, "40.00", p.Price.StringFixed(2))
	assert.Equal(t, "buyer", p.BuyerID)

	assert.Equal(t, "60.00", balance(t, f, "buyer"))
	assert.Equal(t, "40.00", balance(t, f, "artist"))

	got, err := f.store.GetArtwork(art.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	purchases, err := f.svc.ListPurchases("buyer")
	require.NoError(t, err)
	assert.Len(t, purchases, 1)

	assert.False(t, f.idx.indexed[art.ID].IsAvailable)
}

func TestPurchase_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture) (buyerID, artworkID string)
		wantErr error
	}{
		{
			name: "unknown artwork",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "buyer", "100", false)
				return "buyer", "missing"
			},
			wantErr: ErrArtworkNotFound,
		},
		{
			name: "already sold",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "buyer", "100", false)
				f.user(t, "artist", "0", true)
				art := f.artwork(t, "artist", "10")
				require.NoError(t, f.store.UpdateArtworkAvailability(art.ID, false))
				return "buyer", art.ID
			},
			wantErr: ErrArtworkUnavailable,
		},
		{
			name: "own artwork",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "artist", "100", true)
				art := f.artwork(t, "artist", "10")
				return "artist", art.ID
			},
			wantErr: ErrSelfPurchase,
		},
		{
			name: "unknown buyer",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "artist", "0", true)
				art := f.artwork(t, "artist", "10")
				return "ghost", art.ID
			},
			wantErr: ErrBuyerNotFound,
		},
		{
			name: "insufficient balance",
			setup: func(t *testing.T, f *fixture) (string, string) {
				f.user(t, "buyer", "9.99", false)
				f.user(t, "artist", "0", true)
				art := f.artwork(t, "artist", "10")
				return "buyer", art.ID
			},
			wantErr: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			buyerID, artworkID := tt.setup(t, f)

			before := snapshotBalances(t, f)
			_, err := f.svc.Purchase(context.Background(), buyerID, artworkID)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, snapshotBalances(t, f))

			purchases, err := f.svc.ListPurchases(buyerID)
			require.NoError(t, err)
			assert.Empty(t, purchases)
			assert.Empty(t, f.pub.jobs)
		})
	}
}

func snapshotBalances(t *testing.T, f *fixture) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, artist := range []bool{true, false} {
		users, err := f.store.ListUsersByRole(artist)
		require.NoError(t, err)
		for _, u := range users {
			out[u.ID] = u.RBBalance.StringFixed(2)
		}
	}
	return out
}

func TestPurchase_ExactBalanceSucceeds(t *testing.T) {
	f := newFixture(t)
	f.user(t, "buyer", "25.50", false)
	f.user(t, "artist", "1.25", true)
	art := f.artwork(t, "artist", "25.50")

	_, err := f.svc.Purchase(context.Background(), "buyer", art.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", balance(t, f, "buyer"))
	assert.Equal(t, "26.75", balance(t, f, "artist"))
}

func TestPurchase_SecondPurchaseFails(t *testing.T) {
	f := newFixture(t)
	f.user(t, "b1", "100", false)
	f.user(t, "b2", "100", false)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "30")

	_, err := f.svc.Purchase(context.Background(), "b1", art.ID)
	require.NoError(t, err)
	_, err = f.svc.Purchase(context.Background(), "b2", art.ID)
	assert.ErrorIs(t, err, ErrArtworkUnavailable)
	assert.Equal(t, "100.00", balance(t, f, "b2"))
}

func TestPurchase_ConcurrentBuyersExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "50")

	const buyers = 32
	for i := 0; i < buyers; i++ {
		f.user(t, fmt.Sprintf("b%02d", i), "100", false)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.svc.Purchase(context.Background(), id, art.ID)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrArtworkUnavailable)
		}(fmt.Sprintf("b%02d", i))
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	total := decimal.Zero
	for _, b := range snapshotBalances(t, f) {
		total = total.Add(decimal.RequireFromString(b))
	}
	assert.Equal(t, "3200.00", total.StringFixed(2))
	assert.Equal(t, "50.00", balance(t, f, "artist"))
}

func TestPurchase_QueuesEmails(t *testing.T) {
	f := newFixture(t)
	f.user(t, "buyer", "100", false)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "40")

	_, err := f.svc.Purchase(context.Background(), "buyer", art.ID)
	require.NoError(t, err)

	require.Len(t, f.pub.jobs, 2)
	receipt := f.pub.jobs[0]
	assert.Equal(t, mailtpl.PurchaseReceipt, receipt.Template)
	assert.Equal(t, "buyer@example.com", receipt.To)
	assert.Equal(t, "40.00", receipt.Data["Price"])
	assert.Equal(t, "60.00", receipt.Data["Balance"])

	sold := f.pub.jobs[1]
	assert.Equal(t, mailtpl.ArtworkSold, sold.Template)
	assert.Equal(t, "artist@example.com", sold.To)
	assert.Equal(t, "40.00", sold.Data["Balance"])
}

func TestPurchase_PublishFailureKeepsPurchase(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")
	f.user(t, "buyer", "100", false)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "40")

	_, err := f.svc.Purchase(context.Background(), "buyer", art.ID)
	require.NoError(t, err)
	assert.Equal(t, "60.00", balance(t, f, "buyer"))
}

func TestPurchase_MailDisabled(t *testing.T) {
	f := newFixture(t)
	f.svc.Cfg.MailSendEnabled = false
	f.user(t, "buyer", "100", false)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "40")

	_, err := f.svc.Purchase(context.Background(), "buyer", art.ID)
	require.NoError(t, err)
	assert.Empty(t, f.pub.jobs)
}

func TestToggleFollow(t *testing.T) {
	f := newFixture(t)
	f.user(t, "a", "0", true)
	f.user(t, "b", "0", false)

	following, err := f.svc.ToggleFollow("b", "a")
	require.NoError(t, err)
	assert.True(t, following)

	following, err = f.svc.ToggleFollow("b", "a")
	require.NoError(t, err)
	assert.False(t, following)

	a, _ := f.store.GetUser("a")
	b, _ := f.store.GetUser("b")
	assert.Equal(t, 0, a.FollowerCount)
	assert.Equal(t, 0, b.FollowingCount)

	_, err = f.svc.ToggleFollow("a", "a")
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = f.svc.ToggleFollow("b", "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleLike(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	f.user(t, "fan", "0", false)
	art := f.artwork(t, "artist", "10")

	liked, err := f.svc.ToggleLike(context.Background(), "fan", art.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, f.idx.indexed[art.ID].LikeCount)

	_, err = f.svc.ToggleLike(context.Background(), "fan", "missing")
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestViewArtwork_IncrementsViews(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	art := f.artwork(t, "artist", "10")

	v, err := f.svc.ViewArtwork(art.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, v.ViewCount)
	v, err = f.svc.ViewArtwork(art.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, v.ViewCount)

	_, err = f.svc.ViewArtwork("missing", "")
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	f.user(t, "fan", "0", false)
	art := f.artwork(t, "artist", "10")

	cm, err := f.svc.AddComment("fan", art.ID, "  lovely  ")
	require.NoError(t, err)
	assert.Equal(t, "lovely", cm.Content)
	assert.Equal(t, "fan", cm.User.ID)

	_, err = f.svc.AddComment("fan", "missing", "x")
	assert.ErrorIs(t, err, ErrArtworkNotFound)
	_, err = f.svc.AddComment("ghost", art.ID, "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchArtworks_UsesIndexThenFallsBack(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	a := f.artwork(t, "artist", "10")
	b := f.artwork(t, "artist", "20")

	f.idx.ids = []string{b.ID, a.ID}
	got, err := f.svc.SearchArtworks(context.Background(), "piece", 10, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)

	f.idx.err = errors.New("es down")
	got, err = f.svc.SearchArtworks(context.Background(), "20", 10, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}

func TestSearchArtworks_StoreSearchReportsViewerLike(t *testing.T) {
	f := newFixture(t)
	f.svc.Index = nil
	f.user(t, "artist", "0", true)
	f.user(t, "fan", "0", false)
	art := f.artwork(t, "artist", "10")

	liked, err := f.svc.ToggleLike(context.Background(), "fan", art.ID)
	require.NoError(t, err)
	require.True(t, liked)

	got, err := f.svc.SearchArtworks(context.Background(), "piece", 10, "fan")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsLiked)

	anon, err := f.svc.SearchArtworks(context.Background(), "piece", 10, "")
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.False(t, anon[0].IsLiked)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	f.user(t, "u", "0", false)

	bio := "sculptor"
	artist := true
	u, err := f.svc.UpdateProfile("u", ProfileUpdate{Bio: &bio, IsArtist: &artist})
	require.NoError(t, err)
	assert.Equal(t, "sculptor", u.Bio)
	assert.True(t, u.IsArtist)

	_, err = f.svc.UpdateProfile("ghost", ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListArtworks_ClampsLimit(t *testing.T) {
	f := newFixture(t)
	f.user(t, "artist", "0", true)
	for i := 0; i < 3; i++ {
		f.artwork(t, "artist", fmt.Sprintf("%d", i+1))
	}
	got, err := f.svc.ListArtworks(entity.ArtworkQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
