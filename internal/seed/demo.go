// Package seed fills an empty store with demo artists, a buyer and a few
// artworks so a fresh server has something to browse.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
)

type demoUser struct {
	ID, Email, First, Last, Bio, Specialization string
	Artist                                      bool
}

type demoArtwork struct {
	ArtistID, Title, Description, Category, Price string
}

var demoUsers = []demoUser{
	{ID: "demo-artist-maya", Email: "maya@demo.rb", First: "Maya", Last: "Chen", Bio: "Neon cityscapes after midnight.", Specialization: entity.CategoryDigitalPainting, Artist: true},
	{ID: "demo-artist-leo", Email: "leo@demo.rb", First: "Leo", Last: "Okafor", Bio: "Soft geometry rendered in 3D.", Specialization: entity.Category3DArt, Artist: true},
	{ID: "demo-artist-ines", Email: "ines@demo.rb", First: "Ines", Last: "Duarte", Bio: "Film grain and long exposures.", Specialization: entity.CategoryPhotography, Artist: true},
	{ID: "demo-buyer", Email: "buyer@demo.rb", First: "Sam", Last: "Rivera"},
}

var demoArtworks = []demoArtwork{
	{"demo-artist-maya", "Rain on Fifth", "Wet asphalt reflecting a wall of signs.", entity.CategoryDigitalPainting, "120.00"},
	{"demo-artist-maya", "Night Market", "Lanterns and steam over a crowded alley.", entity.CategoryIllustration, "85.50"},
	{"demo-artist-leo", "Folded Light", "A paper-like sculpture lit from within.", entity.Category3DArt, "240.00"},
	{"demo-artist-leo", "Orbit Study", "Concentric rings drifting out of phase.", entity.CategoryAbstract, "60.00"},
	{"demo-artist-ines", "Low Tide", "Long exposure of a harbor at dawn.", entity.CategoryPhotography, "45.00"},
	{"demo-artist-ines", "Outpost", "Early concept for a desert relay station.", entity.CategoryConceptArt, "150.00"},
}

// Demo seeds the store unless the demo users are already present.
func Demo(ctx context.Context, store repo.MarketplaceStore, svc *app.MarketplaceService, logger *logrus.Logger) error {
	if _, err := store.GetUser(demoUsers[0].ID); err == nil {
		logger.Info("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	for _, u := range demoUsers {
		u := u
		if _, err := store.UpsertUser(entity.UpsertUser{
			ID:             u.ID,
			Email:          &u.Email,
			FirstName:      &u.First,
			LastName:       &u.Last,
			Bio:            &u.Bio,
			Specialization: &u.Specialization,
			IsArtist:       &u.Artist,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, a := range demoArtworks {
		if _, err := svc.CreateArtwork(ctx, a.ArtistID, app.CreateArtworkInput{
			Title:       a.Title,
			Description: a.Description,
			ImageURL:    "https://picsum.photos/seed/" + a.ArtistID + "/800/600",
			Price:       decimal.RequireFromString(a.Price),
			Category:    a.Category,
		}); err != nil {
			return fmt.Errorf("seed artwork %q: %w", a.Title, err)
		}
	}

	helpers.LogInfo(logger, "demo data seeded", logrus.Fields{
		"users":    len(demoUsers),
		"artworks": len(demoArtworks),
	})
	return nil
}
