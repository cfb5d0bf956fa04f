package entity

import "math"

// RoundMoney rounds a non-negative amount to cents, halves going up.
// The 1e-9 nudge absorbs binary representation error (2.675 is stored as 2.67499...).
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100+math.Copysign(1e-9, amount)) / 100
}

func validAmount(amount float64) bool {
	return amount >= 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}
