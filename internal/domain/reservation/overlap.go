package reservation

import "time"

// Overlaps reports whether two closed date intervals intersect:
// s1 <= e2 AND e1 >= s2. Reservations sharing a boundary day conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}
