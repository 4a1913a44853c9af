// Package units parses the inconsistent numeric and dimension strings found
// in construction documents ("3' x 7'", "2,000 MBH", "15,000 CFM") into
// plain quantities for cost arithmetic.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// First extracts the first decimal number from a free-text field, tolerating
// thousands separators. Returns 0 when no numeric token is present so
// downstream arithmetic never has to branch on a parse failure.
func First(s string) float64 {
	m := numberRe.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// Dimensions parses a compound "W x H" field, returning the first numeric
// token on each side of the x/X separator. Either value is 0 when missing.
func Dimensions(s string) (width, height float64) {
	parts := splitDimension(s)
	width = First(parts[0])
	if len(parts) > 1 {
		height = First(parts[1])
	}
	return width, height
}

// Area parses a "W x H" field and returns width*height, or 0 when either
// dimension is missing.
func Area(s string) float64 {
	w, h := Dimensions(s)
	return w * h
}

// splitDimension splits on the first x/X that separates two numeric tokens.
func splitDimension(s string) []string {
	for i, r := range s {
		if r != 'x' && r != 'X' {
			continue
		}
		left, right := s[:i], s[i+1:]
		if numberRe.MatchString(strings.ReplaceAll(left, ",", "")) {
			return []string{left, right}
		}
	}
	return []string{s}
}

// CubicFeetToYards converts a cubic-foot volume to cubic yards.
func CubicFeetToYards(cf float64) float64 {
	return cf / 27
}

// PoundsToTons converts a weight in pounds to short tons.
func PoundsToTons(lbs float64) float64 {
	return lbs / 2000
}

// Quantity coerces a plugin-extracted value into a float64. LLM output mixes
// JSON numbers with quantity strings ("2,000 MBH"); both resolve here.
// Returns 0 for nil or anything non-numeric.
func Quantity(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return First(n)
	default:
		return 0
	}
}

// Round2 rounds to 2 decimal places, the precision of every cost field.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
