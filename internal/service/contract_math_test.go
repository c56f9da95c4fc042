package service

import (
	"testing"
	"time"
)

func TestTotalPayableNgn(t *testing.T) {
	tests := []struct {
		name     string
		financed int64
		roi      float64
		want     int64
	}{
		{"24 percent on a keke", 3_500_000, 24, 4_340_000},
		{"zero roi", 50_000, 0, 50_000},
		{"rounds up fractional naira", 1_001, 0.1, 1_003},
		{"zero principal", 0, 24, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPayableNgn(tt.financed, tt.roi); got != tt.want {
				t.Errorf("TotalPayableNgn(%d, %v) = %d, want %d", tt.financed, tt.roi, got, tt.want)
			}
		})
	}
}

func TestWeeklyPaymentNgn(t *testing.T) {
	tests := []struct {
		name     string
		payable  int64
		weeks    int
		want     int64
	}{
		{"even split", 52_000, 52, 1_000},
		{"rounds up", 52_001, 52, 1_001},
		{"single week", 52_000, 1, 52_000},
		{"zero weeks falls back to lump sum", 52_000, 0, 52_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyPaymentNgn(tt.payable, tt.weeks); got != tt.want {
				t.Errorf("WeeklyPaymentNgn(%d, %d) = %d, want %d", tt.payable, tt.weeks, got, tt.want)
			}
		})
	}
}

func TestWeeklyScheduleCoversTotal(t *testing.T) {
	// duration * weekly must always reach the total payable.
	for weeks := 1; weeks <= 60; weeks++ {
		payable := int64(4_340_000)
		weekly := WeeklyPaymentNgn(payable, weeks)
		if int64(weeks)*weekly < payable {
			t.Errorf("weeks=%d weekly=%d undershoots %d", weeks, weekly, payable)
		}
	}
}

func TestNextDueDate(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// Nothing paid yet: due one week in.
	if got := NextDueDate(start, 1_000, 0); !got.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("no payments: got %v", got)
	}
	// Three full installments paid: due at week four.
	if got := NextDueDate(start, 1_000, 3_000); !got.Equal(start.AddDate(0, 0, 28)) {
		t.Errorf("three installments: got %v", got)
	}
	// A partial installment does not advance the boundary.
	if got := NextDueDate(start, 1_000, 3_500); !got.Equal(start.AddDate(0, 0, 28)) {
		t.Errorf("partial installment: got %v", got)
	}
}
