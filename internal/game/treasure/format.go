package treasure

import (
	"fmt"
	"strings"
)

// FormatResult renders r as plain text: the description line, a coins line of
// non-zero denominations highest value first, then bulleted gem/jewelry and
// magic item sections when non-empty.
func FormatResult(r Result) string {
	return formatResult(r, false)
}

// FormatResultWithBreakdown is FormatResult followed by a bulleted
// "Breakdown:" section with every roll trace.
func FormatResultWithBreakdown(r Result) string {
	return formatResult(r, true)
}

func formatResult(r Result, withBreakdown bool) string {
	lines := []string{r.Description}

	var coins []string
	for i := len(Denominations) - 1; i >= 0; i-- {
		d := Denominations[i]
		if n := r.Coins(d); n > 0 {
			coins = append(coins, fmt.Sprintf("%d %s", n, d.Abbrev()))
		}
	}
	if len(coins) > 0 {
		lines = append(lines, "Coins: "+strings.Join(coins, ", "))
	}

	lines = appendSection(lines, "Gems & Jewelry:", r.GemsAndJewelry)
	lines = appendSection(lines, "Magic Items:", r.MagicItems)
	if withBreakdown {
		lines = appendSection(lines, "Breakdown:", r.Breakdown)
	}
	return strings.Join(lines, "\n")
}

func appendSection(lines []string, title string, items []string) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, title)
	for _, item := range items {
		lines = append(lines, "  - "+item)
	}
	return lines
}
