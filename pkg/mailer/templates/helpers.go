package templates

import (
	"time"

	"github.com/oksasatya/rb-marketplace/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithPurchase(purchaseID, artworkID, title, price string) Option {
	return func(d *EmailData) {
		d.PurchaseID = purchaseID
		d.ArtworkID = artworkID
		d.ArtworkTitle = title
		d.Price = price
		if d.FrontendURL != "" && artworkID != "" {
			d.ArtworkURL = d.FrontendURL + "/artworks/" + artworkID
		}
	}
}

func WithBalance(balance string) Option   { return func(d *EmailData) { d.Balance = balance } }
func WithCounterParty(name string) Option { return func(d *EmailData) { d.CounterParty = name } }

// NewBaseEmailData fills the common fields from config, then applies opts in order.
func NewBaseEmailData(cfg *config.Config, typ string, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          recipient,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
		FrontendURL: cfg.FrontendURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
