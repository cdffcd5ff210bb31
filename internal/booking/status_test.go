package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzohaibq/roomstay/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]model.BookingStatus]bool{
		{model.BookingPending, model.BookingConfirmed}:   true,
		{model.BookingPending, model.BookingCancelled}:   true,
		{model.BookingConfirmed, model.BookingCompleted}: true,
		{model.BookingConfirmed, model.BookingCancelled}: true,
	}

	all := []model.BookingStatus{
		model.BookingPending, model.BookingConfirmed,
		model.BookingCancelled, model.BookingCompleted,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]model.BookingStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
		st, ok := ParseStatus(s)
		assert.True(t, ok)
		assert.Equal(t, model.BookingStatus(s), st)
	}
	for _, s := range []string{"", "pending", "DONE", "EXPIRED"} {
		_, ok := ParseStatus(s)
		assert.False(t, ok, "input %q", s)
	}
}
