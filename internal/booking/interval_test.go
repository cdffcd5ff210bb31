package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h int) time.Time {
	return time.Date(2026, 9, 1, h, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", at(10), at(14), at(10), at(14), true},
		{"contained", at(10), at(14), at(11), at(12), true},
		{"partial left", at(8), at(11), at(10), at(14), true},
		{"partial right", at(13), at(16), at(10), at(14), true},
		{"touching end-to-start", at(8), at(10), at(10), at(14), false},
		{"touching start-to-end", at(14), at(18), at(10), at(14), false},
		{"disjoint before", at(6), at(8), at(10), at(14), false},
		{"disjoint after", at(16), at(18), at(10), at(14), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}
