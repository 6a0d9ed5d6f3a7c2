package application

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/rb-marketplace/pkg/mailer/templates"
)

// sale captures what the notifications need once the lock is released.
type sale struct {
	purchase *entity.Purchase
	artwork  *entity.Artwork
	buyer    *entity.User
	seller   *entity.User
}

// Purchase transfers artworkID to buyerID for its current price.
//
// Checks run in order: artwork exists, artwork available, buyer is not the
// artist, buyer exists, buyer can afford it. On success the purchase is
// recorded, the artwork marked sold, the buyer debited and the artist
// credited, all inside one store transaction. A failed purchase changes
// nothing.
func (s *MarketplaceService) Purchase(ctx context.Context, buyerID, artworkID string) (*entity.Purchase, error) {
	var done sale
	err := s.Store.Atomic(func(tx repo.MarketplaceStore) error {
		art, err := tx.GetArtwork(artworkID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArtworkNotFound
		}
		if err != nil {
			return err
		}
		if !art.IsAvailable {
			return ErrArtworkUnavailable
		}
		if art.ArtistID == buyerID {
			return ErrSelfPurchase
		}
		buyer, err := tx.GetUser(buyerID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBuyerNotFound
		}
		if err != nil {
			return err
		}
		if buyer.RBBalance.LessThan(art.Price) {
			return ErrInsufficientBalance
		}
		seller, err := tx.GetUser(art.ArtistID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArtistNotFound
		}
		if err != nil {
			return err
		}

		p, err := tx.CreatePurchase(entity.NewPurchase{BuyerID: buyer.ID, ArtworkID: art.ID, Price: art.Price})
		if err != nil {
			return err
		}
		if err := tx.UpdateArtworkAvailability(art.ID, false); err != nil {
			return err
		}
		buyer.RBBalance = buyer.RBBalance.Sub(art.Price).Round(2)
		if err := tx.UpdateUserBalance(buyer.ID, buyer.RBBalance); err != nil {
			return err
		}
		seller.RBBalance = seller.RBBalance.Add(art.Price).Round(2)
		if err := tx.UpdateUserBalance(seller.ID, seller.RBBalance); err != nil {
			return err
		}

		art.IsAvailable = false
		done = sale{purchase: p, artwork: art, buyer: buyer, seller: seller}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"purchase_id": done.purchase.ID,
		"artwork_id":  done.artwork.ID,
		"buyer_id":    done.buyer.ID,
		"artist_id":   done.seller.ID,
		"price":       done.purchase.Price.StringFixed(2),
	}).Info("artwork purchased")

	s.index(ctx, done.artwork)
	s.notifySale(ctx, done)
	return done.purchase, nil
}

// notifySale queues the buyer receipt and the artist sale notice. Queue
// failures are logged and never undo the purchase.
func (s *MarketplaceService) notifySale(ctx context.Context, d sale) {
	if s.Mail == nil || !s.Cfg.MailSendEnabled {
		return
	}
	price := d.purchase.Price.StringFixed(2)
	jobs := []mailer.EmailJob{
		saleJob(s, mailtpl.PurchaseReceipt, d.buyer, d.seller, d, price, d.buyer.RBBalance),
		saleJob(s, mailtpl.ArtworkSold, d.seller, d.buyer, d, price, d.seller.RBBalance),
	}
	for _, job := range jobs {
		if job.To == "" {
			continue
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"template":    job.Template,
				"purchase_id": d.purchase.ID,
			}).Warn("publish email job failed")
		}
	}
}

func saleJob(s *MarketplaceService, tpl string, to, other *entity.User, d sale, price string, balance decimal.Decimal) mailer.EmailJob {
	data := mailtpl.NewBaseEmailData(s.Cfg, tpl, to.DisplayName(), to.Email,
		mailtpl.WithPurchase(d.purchase.ID, d.artwork.ID, d.artwork.Title, price),
		mailtpl.WithBalance(balance.StringFixed(2)),
		mailtpl.WithCounterParty(other.DisplayName()),
		mailtpl.WithTime(d.purchase.CreatedAt),
	)
	return mailer.EmailJob{To: to.Email, Template: tpl, Data: mailtpl.ToMap(data)}
}
