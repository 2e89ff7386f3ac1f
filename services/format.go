package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFCFA renders an amount in West African CFA franc notation: rounded to
// the nearest whole franc, digits grouped in threes with spaces and no
// currency symbol (e.g. 750000 -> "750 000").
func FormatFCFA(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.0f", amount)

	// Group digits in threes from the right.
	result := ""
	for len(raw) > 3 {
		result = " " + raw[len(raw)-3:] + result
		raw = raw[:len(raw)-3]
	}
	result = raw + result

	if negative {
		result = "-" + result
	}
	return result
}

// FormatProjectReference builds the document reference for a project number,
// zero-padded to three digits (7 -> "PROJ-007", 123 -> "PROJ-123").
func FormatProjectReference(number int) string {
	return fmt.Sprintf("PROJ-%03d", number)
}

// FormatQuantity renders a quantity without trailing zeros ("3", "2.5").
func FormatQuantity(qty float64) string {
	s := strconv.FormatFloat(qty, 'f', -1, 64)
	return s
}

// TruncateDescription shortens long item descriptions for the tabular report
// layout, cutting at 45 runes and appending "...".
func TruncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) <= 45 {
		return desc
	}
	return strings.TrimRight(string(runes[:45]), " ") + "..."
}
