package ordering

import "fmt"

// Mode is the comparison strategy for one run. Exactly one Mode is active.
type Mode int

const (
	Lexicographic Mode = iota
	Numeric
	MonthName
	SuffixScaled
)

// ModeFromFlags maps the -n, -M and -h flags to a Mode, defaulting to
// Lexicographic. The flags are mutually exclusive and are validated before
// this is called; if several are set anyway, numeric wins over month, and
// month wins over suffix.
func ModeFromFlags(numeric, month, suffix bool) Mode {
	switch {
	case numeric:
		return Numeric
	case month:
		return MonthName
	case suffix:
		return SuffixScaled
	default:
		return Lexicographic
	}
}

func (m Mode) String() string {
	switch m {
	case Lexicographic:
		return "lexicographic"
	case Numeric:
		return "numeric"
	case MonthName:
		return "month"
	case SuffixScaled:
		return "suffix"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
