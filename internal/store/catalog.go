package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

// ListAvailable returns the catalog entries still purchasable, in
// insertion order.
func (s *Store) ListAvailable(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

// ListAll returns every product regardless of availability (admin view).
func (s *Store) ListAll(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&out).Error
	return out, err
}

// GetProduct fetches one product by id.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateInvite registers a new single-use invitation code.
func (s *Store) CreateInvite(ctx context.Context, code string) (*models.InviteCode, error) {
	inv := models.InviteCode{
		ID:   uuid.NewString(),
		Code: code,
	}
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrInviteExists
		}
		return nil, err
	}
	return &inv, nil
}

// GetInvite fetches an invitation by its code.
func (s *Store) GetInvite(ctx context.Context, code string) (*models.InviteCode, error) {
	var inv models.InviteCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	} else if err != nil {
		return nil, err
	}
	return &inv, nil
}

// AddProduct inserts a catalog entry (seed/admin path).
func (s *Store) AddProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.IsAvailable = true
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Seed populates an empty database with the launch catalog and the first
// invitation code. Idempotent: tables that already hold rows are left
// untouched.
func (s *Store) Seed(ctx context.Context) error {
	var nProducts int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&nProducts).Error; err != nil {
		return err
	}
	if nProducts == 0 {
		launch := []models.Product{
			{
				ID:          uuid.NewString(),
				Name:        "Hoodie negro/oro Edición Limitada",
				Price:       390000,
				Description: "Buzo premium en tela gruesa, bordado dorado de alta calidad y triángulo azul celeste distintivo.",
				Category:    "Hoodies",
				Image:       "/img/hoodie_oro.png",
				IsAvailable: true,
			},
			{
				ID:          uuid.NewString(),
				Name:        "Gorra negro/oro IMI Edición Limitada",
				Price:       230000,
				Description: "Gorra negra con bordado dorado IMI, edición especial limitada.",
				Category:    "Gorras",
				Image:       "/img/gorra_oro.png",
				IsAvailable: true,
			},
		}
		if err := s.db.WithContext(ctx).Create(&launch).Error; err != nil {
			return err
		}
	}

	var nInvites int64
	if err := s.db.WithContext(ctx).Model(&models.InviteCode{}).Count(&nInvites).Error; err != nil {
		return err
	}
	if nInvites == 0 {
		if _, err := s.CreateInvite(ctx, "INVITE-MEBA-001"); err != nil {
			return err
		}
	}
	return nil
}
