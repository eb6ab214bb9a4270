package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	d := func(dd int) time.Time {
		return time.Date(2026, 9, dd, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"fully before", d(1), d(3), d(5), d(8), false},
		{"fully after", d(10), d(12), d(5), d(8), false},
		{"contained", d(6), d(7), d(5), d(8), true},
		{"containing", d(4), d(9), d(5), d(8), true},
		{"partial left", d(3), d(6), d(5), d(8), true},
		{"partial right", d(7), d(10), d(5), d(8), true},
		{"shared end and start day conflicts", d(8), d(10), d(5), d(8), true},
		{"shared start and end day conflicts", d(3), d(5), d(5), d(8), true},
		{"identical range", d(5), d(8), d(5), d(8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
		})
	}
}
