package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAvailability(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		capacity  int
		booked    int
		remaining int
	}{
		{"empty day", 10, 0, 10},
		{"partially booked", 10, 7, 3},
		{"fully booked", 10, 10, 0},
		{"overbooked clamps at zero", 3, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAvailability(1, date, tc.capacity, tc.booked)

			assert.Equal(t, tc.remaining, a.Remaining)
			assert.Equal(t, tc.capacity, a.Capacity)
			assert.Equal(t, tc.booked, a.Booked)
			assert.Equal(t, tc.remaining > 0, a.HasFreeSlots())
		})
	}
}
