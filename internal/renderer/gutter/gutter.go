// Package gutter renders the line-number column drawn to the left of the
// buffer text.
package gutter

import "strings"

// Width returns the number of digits needed to number lineCount lines.
// It is at least 1, so an empty buffer still reserves a column.
func Width(lineCount int) int {
	return countDigits(lineCount)
}

// countDigits returns the number of decimal digits in n.
func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
