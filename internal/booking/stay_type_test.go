package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzohaibq/roomstay/internal/model"
)

func TestParseStayType(t *testing.T) {
	for _, s := range []string{"4h", "6h", "12h", "24h"} {
		st, err := ParseStayType(s)
		require.NoError(t, err)
		assert.Equal(t, StayType(s), st)
	}
	for _, s := range []string{"", "8h", "4H", "1d", "24", "48h"} {
		_, err := ParseStayType(s)
		assert.ErrorIs(t, err, ErrUnknownStayType, "input %q", s)
	}
}

func TestStayTypeDuration(t *testing.T) {
	assert.Equal(t, 4*time.Hour, Stay4h.Duration())
	assert.Equal(t, 6*time.Hour, Stay6h.Duration())
	assert.Equal(t, 12*time.Hour, Stay12h.Duration())
	assert.Equal(t, 24*time.Hour, Stay24h.Duration())
}

func TestTierPrice(t *testing.T) {
	cat := &model.RoomCategory{Price4h: 2000, Price6h: 2800, Price12h: 4500, Price24h: 7000}

	cases := map[StayType]int64{
		Stay4h:  2000,
		Stay6h:  2800,
		Stay12h: 4500,
		Stay24h: 7000,
	}
	for st, want := range cases {
		got, err := TierPrice(cat, st)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := TierPrice(cat, StayType("8h"))
	assert.ErrorIs(t, err, ErrUnknownStayType)
}
