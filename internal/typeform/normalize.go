package typeform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like a conventional local@domain.tld
// address. It is a gate, not a fix-up: callers skip invalid values.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone strips everything except digits and plus signs and accepts the
// value only if the remaining length is within 10-15. A retained plus counts
// toward the length, so "+123456789" passes with nine digits.
func ValidPhone(s string) bool {
	kept := 0
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			kept++
		}
	}
	return kept >= 10 && kept <= 15
}

// NormalizeNumber converts a human-entered numeric string such as "30,000" or
// "$1,250.50" into a number. Everything except digits and the first decimal
// point is stripped before parsing; asFloat=false truncates to an integer.
// Empty or unparsable input reports ok=false and is a warning, never fatal.
func NormalizeNumber(raw string, asFloat bool) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	var b strings.Builder
	sawPoint := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !sawPoint:
			b.WriteRune(r)
			sawPoint = true
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	if !asFloat {
		// conversion is undefined outside int64 range
		if n >= float64(math.MaxInt64) || n <= float64(math.MinInt64) {
			return 0, false
		}
		n = float64(int64(n))
	}
	return n, true
}
