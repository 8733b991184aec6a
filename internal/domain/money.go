package domain

import (
	"fmt"
	"math"
)

// FormatPrice renders minor units with two decimals: 12345 -> "123.45".
func FormatPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// FormatWholePrice renders minor units rounded to whole currency units,
// as the room browse cards do.
func FormatWholePrice(minor int64) string {
	return fmt.Sprintf("%.0f", float64(minor)/100)
}

// ToMinorUnits converts a major-unit amount typed into a form (e.g. 89.99).
func ToMinorUnits(major float64) int64 {
	return int64(math.Round(major * 100))
}
