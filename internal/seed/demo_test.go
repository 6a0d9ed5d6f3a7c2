package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

func TestDemo_SeedsOnce(t *testing.T) {
	store := memory.New()
	logger := helpers.NewNopLogger()
	svc := app.NewMarketplaceService(store, nil, nil, nil, logger)

	require.NoError(t, Demo(context.Background(), store, svc, logger))
	require.NoError(t, Demo(context.Background(), store, svc, logger))

	artists, err := store.ListUsersByRole(true)
	require.NoError(t, err)
	assert.Len(t, artists, 3)

	list, err := store.ListArtworks(entity.ArtworkQuery{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, list, len(demoArtworks))

	buyer, err := store.GetUser("demo-buyer")
	require.NoError(t, err)
	assert.False(t, buyer.IsArtist)
	assert.Equal(t, memory.DefaultBalance.StringFixed(2), buyer.RBBalance.StringFixed(2))
}
