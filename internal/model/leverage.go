package model

import (
	"regexp"
	"strconv"
)

// leveragePattern matches the first "1:<N>" ratio in a leverage string.
// The pattern is unanchored so values like "up to 1:1000" still parse.
var leveragePattern = regexp.MustCompile(`1:(\d+)`)

// ParseLeverage extracts N from a leverage ratio string of the form "1:<N>".
// It returns ok=false when the string contains no such ratio (for example
// "unlimited" or an empty string) or when N overflows an int.
func ParseLeverage(s string) (n int, ok bool) {
	m := leveragePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
