package booking

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect: s1 < e2 && e1 > s2.  Touching intervals (e1 == s2) do not
// conflict, which allows back-to-back bookings on the same room category.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
