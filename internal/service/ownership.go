package service

import "chainmove/internal/domain"

// CalculateOwnership converts a contribution into pool ownership. Units and
// bps are floored so the confirmed total for a pool can never exceed the
// full denominator.
func CalculateOwnership(amountNgn, targetAmountNgn int64) (units int64, bps int) {
	if targetAmountNgn <= 0 || amountNgn <= 0 {
		return 0, 0
	}
	units = amountNgn * domain.TotalOwnershipUnits / targetAmountNgn
	bps = int(amountNgn * domain.TotalOwnershipBps / targetAmountNgn)
	if bps > domain.TotalOwnershipBps {
		bps = domain.TotalOwnershipBps
	}
	return units, bps
}
