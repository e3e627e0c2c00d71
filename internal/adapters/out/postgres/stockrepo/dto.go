// Package stockrepo persists the stock ledger.
package stockrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItemDTO is one stock_items row, keyed by product id.
type StockItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Available int             `gorm:"not null;check:available >= 0"`
}

func (StockItemDTO) TableName() string {
	return "stock_items"
}

func fromDomain(item *stock.Item) StockItemDTO {
	return StockItemDTO{
		ID:        item.ProductID().Bytes(),
		SellerID:  item.SellerID().Bytes(),
		Name:      item.Name(),
		UnitPrice: item.UnitPrice().Amount(),
		Available: item.Available(),
	}
}

func toDomain(dto StockItemDTO) (*stock.Item, error) {
	productID, err := kernel.UUIDFromUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromUUID(dto.SellerID)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	return stock.NewItem(productID, sellerID, dto.Name, price, dto.Available)
}
