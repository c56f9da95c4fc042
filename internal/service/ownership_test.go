package service

import "testing"

func TestCalculateOwnership(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		target    int64
		wantUnits int64
		wantBps   int
	}{
		{"sixty percent", 60_000, 100_000, 600_000, 6_000},
		{"forty percent", 40_000, 100_000, 400_000, 4_000},
		{"full pool", 100_000, 100_000, 1_000_000, 10_000},
		{"floors fractional units", 1, 3, 333_333, 3_333},
		{"small contribution to large pool", 5_000, 4_600_000, 1_086, 10},
		{"zero amount", 0, 100_000, 0, 0},
		{"zero target", 5_000, 0, 0, 0},
		{"negative amount", -1, 100_000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, bps := CalculateOwnership(tt.amount, tt.target)
			if units != tt.wantUnits {
				t.Errorf("units = %d, want %d", units, tt.wantUnits)
			}
			if bps != tt.wantBps {
				t.Errorf("bps = %d, want %d", bps, tt.wantBps)
			}
		})
	}
}

func TestCalculateOwnershipNeverExceedsDenominator(t *testing.T) {
	// Any split of the target across contributions must floor such that the
	// summed units stay at or below the full denominator.
	target := int64(100_000)
	splits := [][]int64{
		{33_333, 33_333, 33_334},
		{1, 1, 99_998},
		{50_000, 49_999, 1},
	}
	for _, split := range splits {
		var totalUnits int64
		var totalBps int
		for _, amount := range split {
			units, bps := CalculateOwnership(amount, target)
			totalUnits += units
			totalBps += bps
		}
		if totalUnits > 1_000_000 {
			t.Errorf("split %v: total units %d exceeds denominator", split, totalUnits)
		}
		if totalBps > 10_000 {
			t.Errorf("split %v: total bps %d exceeds denominator", split, totalBps)
		}
	}
}
