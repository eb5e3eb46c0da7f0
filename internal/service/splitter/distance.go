package splitter

import (
	"strings"

	"service-rider-platform/internal/domain"
)

const distanceUnavailable = "Distance not available"

var distanceBuckets = []struct {
	below int
	label string
}{
	{1000, "0.5-1 miles"},
	{5000, "1-2 miles"},
	{10000, "2-3 miles"},
	{20000, "3-5 miles"},
}

const farBucket = "5+ miles"

// Distance estimates the pickup to dropoff distance from the zip code gap.
// It is a coarse bucket, not a geodesic figure.
func Distance(pickup, dropoff *domain.Address) string {
	if pickup == nil || dropoff == nil {
		return distanceUnavailable
	}
	from, ok1 := leadingInt(pickup.ZipCode)
	to, ok2 := leadingInt(dropoff.ZipCode)
	if !ok1 || !ok2 {
		return farBucket
	}
	diff := from - to
	if diff < 0 {
		diff = -diff
	}
	for _, b := range distanceBuckets {
		if diff < b.below {
			return b.label
		}
	}
	return farBucket
}

// leadingInt reads an optional sign and the leading digits, "1200-334" -> 1200.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if digits > 9 {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
