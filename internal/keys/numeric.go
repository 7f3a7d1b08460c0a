package keys

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MinFloat is the value of a key that does not parse as a number. It orders
// before every finite number.
const MinFloat = -math.MaxFloat64

// suffixScale maps the recognized size suffixes to their decimal multipliers.
var suffixScale = map[rune]float64{
	'K': 1e3, 'k': 1e3,
	'M': 1e6, 'm': 1e6,
	'G': 1e9, 'g': 1e9,
}

// ParseNumber parses s as a floating-point number, returning MinFloat when it
// is not one.
func ParseNumber(s string) float64 {
	if v, ok := parseFloat(s); ok {
		return v
	}
	return MinFloat
}

// ParseSuffixed parses human-scaled numbers such as "5K" or "2.5M".
//
//   - "" is MinFloat.
//   - A single character is parsed as a plain number (MinFloat on failure).
//   - Otherwise the last character is the suffix and the rest the number. An
//     unparseable number counts as 0, not MinFloat. K, M and G (any case)
//     scale by 1e3, 1e6 and 1e9; any other last character is dropped and
//     the number is used as is, so "500" parses as 50.
func ParseSuffixed(s string) float64 {
	switch utf8.RuneCountInString(s) {
	case 0:
		return MinFloat
	case 1:
		return ParseNumber(s)
	}

	last, size := utf8.DecodeLastRuneInString(s)
	num, ok := parseFloat(s[:len(s)-size])
	if !ok {
		num = 0
	}
	if scale, ok := suffixScale[last]; ok {
		return num * scale
	}
	return num
}

// parseFloat accepts decimal float literals, inf, infinity and nan. Digit
// separators and hex floats are rejected even though strconv takes them.
// Literals outside the float64 range saturate to ±Inf rather than failing.
func parseFloat(s string) (float64, bool) {
	if strings.ContainsRune(s, '_') {
		return 0, false
	}
	if digits := strings.TrimLeft(s, "+-"); strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return v, true
	}
	return 0, false
}
