// Package cartrepo persists buyers' open carts.
package cartrepo

import (
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartLineDTO is one cart_lines row. A cart is the set of lines of one buyer.
type CartLineDTO struct {
	BuyerID    uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Position   int               `gorm:"primaryKey;autoIncrement:false"`
	ProductID  uuid.UUID         `gorm:"type:uuid;not null"`
	Quantity   int               `gorm:"not null"`
	Attributes map[string]string `gorm:"serializer:json"`
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) []CartLineDTO {
	buyerID := c.BuyerID().Bytes()
	lines := c.Lines()
	dtos := make([]CartLineDTO, 0, len(lines))
	for pos, l := range lines {
		dtos = append(dtos, CartLineDTO{
			BuyerID:    buyerID,
			Position:   pos,
			ProductID:  l.ProductID().Bytes(),
			Quantity:   l.Quantity(),
			Attributes: l.Attributes(),
		})
	}
	return dtos
}

func toDomain(buyerID kernel.UUID, dtos []CartLineDTO) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromUUID(dto.ProductID)
		if err != nil {
			return nil, err
		}
		l, err := cart.NewLine(productID, dto.Quantity, dto.Attributes)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return cart.NewCart(buyerID, lines...)
}
