package keys

import "strings"

// NoMonth is the rank of a key that mentions no month. It orders after
// December.
const NoMonth = 13

var months = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthRank returns the 0-based index of the first month abbreviation (in
// calendar order) contained anywhere in s, or NoMonth. Matching is
// case-sensitive substring containment, so "September" ranks as "Sep".
func MonthRank(s string) int {
	for i, m := range months {
		if strings.Contains(s, m) {
			return i
		}
	}
	return NoMonth
}
