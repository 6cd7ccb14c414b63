package client

import (
	"math"
	"strconv"
	"strings"
)

// FormatMeasure renders height and weight with exactly one decimal place.
func FormatMeasure(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 1, 64)
}

// ParseMeasure accepts "70.5" and "70,5" and rounds to one decimal place.
func ParseMeasure(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return math.Round(parsed*10) / 10, nil
}
