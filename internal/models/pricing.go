package models

import "math"

// ComputeDiscount returns the discount percentage in [0,100] rounded half-up.
// A nil, zero or non-discounting discountPrice yields 0.
func ComputeDiscount(price float64, discountPrice *float64) int {
	if discountPrice == nil || !(*discountPrice > 0) || *discountPrice >= price || price <= 0 {
		return 0
	}
	pct := (price - *discountPrice) / price * 100
	return int(math.Floor(pct + 0.5))
}

// NormalizeDiscountPrice treats NaN, infinite, zero and negative values as absent.
func NormalizeDiscountPrice(discountPrice *float64) *float64 {
	if discountPrice == nil {
		return nil
	}
	v := *discountPrice
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// InStock is the stock indicator for an inventory count.
func InStock(count int64) bool {
	return count > 0
}
