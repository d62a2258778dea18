package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by ParseNumber for text that is not a
// well-formed finite decimal number.
var ErrInvalidNumber = errors.New("not a valid decimal number")

// ParseNumber parses text as a decimal number. Surrounding whitespace is
// ignored. Accepted forms are an optional sign, digits with an optional
// fraction, and an optional exponent ("3.2", "-.5", "1e-3"). Hexadecimal,
// digit separators, infinities and NaN are rejected, as are values outside
// the float64 range.
func ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if !isDecimalLiteral(s) {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidNumber)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: out of range: %w", text, ErrInvalidNumber)
	}
	return f, nil
}

// FormatNumber returns the shortest decimal text that ParseNumber reads back
// as exactly f. Magnitudes in [1e-4, 1e16) use positional notation, others use
// exponent notation.
func FormatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// isDecimalLiteral reports whether s matches [+-]? (d+ (. d*)? | . d+) ([eE] [+-]? d+)?.
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = countDigits(s[i:])
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := countDigits(s[i:])
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}
	return i == len(s)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
