package models

import (
	"testing"
	"time"
)

func TestDepartureLimit(t *testing.T) {
	limit := DepartureLimit()
	now := time.Now().UTC()

	diff := now.Sub(limit)
	if diff < 6*time.Hour-time.Second || diff > 6*time.Hour+time.Second {
		t.Errorf("limit should trail now by six hours, got %v", diff)
	}
}

func TestRide_FormatDeparture(t *testing.T) {
	ride := &Ride{
		DepartureDatetime: time.Date(2026, 9, 12, 14, 30, 0, 0, time.UTC),
	}

	if got := ride.FormatDeparture(); got != "09-12-2026 at 14:30 PM" {
		t.Errorf("FormatDeparture = %q", got)
	}
}
