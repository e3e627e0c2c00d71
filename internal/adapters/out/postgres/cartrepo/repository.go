package cartrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/pgtx"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Get(ctx context.Context, buyerID kernel.UUID) (*cart.Cart, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID.Bytes()).
		Order("position").
		Find(&dtos).Error; err != nil {
		return nil, pgtx.Classify("load cart", err)
	}

	return toDomain(buyerID, dtos)
}

// Save replaces every line of the buyer's cart.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := r.delete(db, c.BuyerID()); err != nil {
		return err
	}

	dtos := fromDomain(c)
	if len(dtos) == 0 {
		return nil
	}
	return pgtx.Classify("save cart", db.Create(&dtos).Error)
}

func (r *GormCartRepository) Delete(ctx context.Context, buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	return r.delete(r.db.WithContext(ctx), buyerID)
}

func (r *GormCartRepository) delete(db *gorm.DB, buyerID kernel.UUID) error {
	err := db.Where("buyer_id = ?", buyerID.Bytes()).Delete(&CartLineDTO{}).Error
	return pgtx.Classify("delete cart", err)
}
