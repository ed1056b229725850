package database

import (
	"testing"
	"time"
)

func TestPaymentFiltersDateRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filters  PaymentFilters
		wantFrom string
		wantTo   string
	}{
		{"both bounds open", PaymentFilters{}, "1900-01-01", "2025-06-15"},
		{"open start", PaymentFilters{DateTo: "2025-01-31"}, "1900-01-01", "2025-01-31"},
		{"open end", PaymentFilters{DateFrom: "2025-01-01"}, "2025-01-01", "2025-06-15"},
		{"both supplied", PaymentFilters{DateFrom: "2025-01-01", DateTo: "2025-01-31"}, "2025-01-01", "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.filters.DateRange(now)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("DateRange() = (%s, %s), want (%s, %s)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
