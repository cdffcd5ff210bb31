package booking

import (
	"time"

	"github.com/mzohaibq/roomstay/internal/model"
)

// StayType is one of the four fixed duration buckets a room category is
// priced in.  Each bucket carries its own flat price on the category; there
// is no interpolation for durations that fall between tiers.
type StayType string

const (
	Stay4h  StayType = "4h"
	Stay6h  StayType = "6h"
	Stay12h StayType = "12h"
	Stay24h StayType = "24h"
)

// ParseStayType validates a wire value.  Anything outside the four known
// buckets is rejected with ErrUnknownStayType.
func ParseStayType(s string) (StayType, error) {
	switch StayType(s) {
	case Stay4h, Stay6h, Stay12h, Stay24h:
		return StayType(s), nil
	}
	return "", ErrUnknownStayType
}

// Duration returns the nominal length of the stay bucket.
func (st StayType) Duration() time.Duration {
	switch st {
	case Stay4h:
		return 4 * time.Hour
	case Stay6h:
		return 6 * time.Hour
	case Stay12h:
		return 12 * time.Hour
	case Stay24h:
		return 24 * time.Hour
	}
	return 0
}

// TierPrice maps a room category and stay type to the total price of the
// booking.  The value is taken directly from the matching tier field and is
// independent of the actual (start, end) delta; the caller picks the tier
// that matches the requested duration.  Pure function; the result is
// persisted on the booking at creation and never recomputed.
func TierPrice(cat *model.RoomCategory, st StayType) (int64, error) {
	switch st {
	case Stay4h:
		return cat.Price4h, nil
	case Stay6h:
		return cat.Price6h, nil
	case Stay12h:
		return cat.Price12h, nil
	case Stay24h:
		return cat.Price24h, nil
	}
	return 0, ErrUnknownStayType
}
