package sources

import "time"

// DefaultWindowHours is the trailing window used when none is given.
const DefaultWindowHours = 1.0

type Timestamped interface {
	Timestamp() time.Time
}

// FilterWindow keeps the items younger than hours, measured in fractional hours from now.
// Input order is preserved. A nil input yields an empty slice.
func FilterWindow[T Timestamped](items []T, hours float64, now time.Time) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if now.Sub(item.Timestamp()).Hours() < hours {
			out = append(out, item)
		}
	}
	return out
}
