package lib

import (
	"math/rand"
	"time"
)

// JitteredInterval returns interval plus a random delay of up to 10% of it.
// Every call draws a new delay, so callers re-arm a timer with it on each tick.
func JitteredInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = time.Hour
	}

	if max := int64(interval / 10); max > 0 {
		return interval + time.Duration(rand.Int63n(max))
	}

	return interval
}
