package service

import (
	"sort"

	"chainmove/internal/domain"
	"chainmove/internal/models"
)

// CreditShare is one investor's slice of a confirmed driver payment.
type CreditShare struct {
	InvestorUserID uint
	AmountNgn      int64
	OwnershipBps   int
}

// AllocateCredits splits appliedNgn across the pool's investors in
// proportion to their confirmed contributions. Shares are floor-divided and
// the rounding remainder goes to the largest shareholder (ties broken by
// lower user ID), so the returned shares always sum to exactly appliedNgn.
// Zero-amount shares are dropped.
func AllocateCredits(appliedNgn int64, investments []models.PoolInvestment) []CreditShare {
	if appliedNgn <= 0 {
		return nil
	}

	totals := make(map[uint]int64)
	for _, inv := range investments {
		if inv.Status != domain.InvestmentStatusConfirmed || inv.AmountNgn <= 0 {
			continue
		}
		totals[inv.UserID] += inv.AmountNgn
	}
	if len(totals) == 0 {
		return nil
	}

	type holder struct {
		userID uint
		amount int64
	}
	holders := make([]holder, 0, len(totals))
	var totalInvested int64
	for id, amt := range totals {
		holders = append(holders, holder{userID: id, amount: amt})
		totalInvested += amt
	}
	if totalInvested <= 0 {
		return nil
	}
	sort.Slice(holders, func(i, j int) bool {
		if holders[i].amount != holders[j].amount {
			return holders[i].amount > holders[j].amount
		}
		return holders[i].userID < holders[j].userID
	})

	shares := make([]CreditShare, 0, len(holders))
	var allocated int64
	for _, h := range holders {
		amt := appliedNgn * h.amount / totalInvested
		allocated += amt
		bps := int(h.amount * domain.TotalOwnershipBps / totalInvested)
		if bps > domain.TotalOwnershipBps {
			bps = domain.TotalOwnershipBps
		}
		shares = append(shares, CreditShare{InvestorUserID: h.userID, AmountNgn: amt, OwnershipBps: bps})
	}
	if remainder := appliedNgn - allocated; remainder > 0 {
		shares[0].AmountNgn += remainder
	}

	nonZero := shares[:0]
	for _, s := range shares {
		if s.AmountNgn > 0 {
			nonZero = append(nonZero, s)
		}
	}
	return nonZero
}
