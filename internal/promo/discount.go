package promo

import "mattress-shop/internal/model"

// CalculateDiscount returns the discount in minor units for orderAmount.
// Percentage discounts round half up; fixed discounts never exceed the order amount.
func CalculateDiscount(p *model.PromoCode, orderAmount int64) int64 {
	if p == nil || orderAmount <= 0 || p.DiscountValue <= 0 {
		return 0
	}

	var discount int64
	switch p.DiscountType {
	case model.DiscountTypePercentage:
		discount = (orderAmount*p.DiscountValue + 50) / 100
	case model.DiscountTypeFixed:
		discount = p.DiscountValue
	}

	return min(discount, orderAmount)
}
