package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Pricing is fixed at checkout: total = itemsTotal + shippingFee.
type Pricing struct {
	itemsTotal  kernel.Money
	shippingFee kernel.Money
	total       kernel.Money
}

func NewPricing(itemsTotal, shippingFee kernel.Money) Pricing {
	return Pricing{
		itemsTotal:  itemsTotal,
		shippingFee: shippingFee,
		total:       itemsTotal.Add(shippingFee),
	}
}

// RestorePricing rebuilds persisted pricing and rejects rows that break the total invariant.
func RestorePricing(itemsTotal, shippingFee, total kernel.Money) (Pricing, error) {
	p := NewPricing(itemsTotal, shippingFee)
	if !p.total.IsEqual(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("total %s does not equal items %s plus shipping %s", total, itemsTotal, shippingFee))
	}
	return p, nil
}

func (p Pricing) ItemsTotal() kernel.Money  { return p.itemsTotal }
func (p Pricing) ShippingFee() kernel.Money { return p.shippingFee }
func (p Pricing) Total() kernel.Money       { return p.total }
