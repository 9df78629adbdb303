package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

// Purchase attempts to buy the single unit of productID on behalf of
// userID. At most one caller ever succeeds per product: the availability
// flip is a conditional UPDATE on is_available=1, and only the caller
// whose update affected a row gets to append the purchase record. The
// record is written in the same transaction as the flip, so a committed
// unavailable product always has exactly one purchase row.
//
// ErrProductUnavailable and ErrLostRace mean the same thing to a client
// (someone else owns the item); they are kept distinct so tests and
// metrics can tell the fast path from an actual lost race.
func (s *Store) Purchase(ctx context.Context, productID, userID string) (*models.Purchase, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, ErrProductUnavailable
	}

	rec := models.Purchase{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND is_available = ?", productID, true).
			Update("is_available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Someone else flipped the flag between our snapshot and here.
			return ErrLostRace
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PurchasesFor lists a user's purchases, newest first.
func (s *Store) PurchasesFor(ctx context.Context, userID string) ([]models.Purchase, error) {
	var out []models.Purchase
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
