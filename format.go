package grantview

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formatting. Values are shown as the backend reported them; the
// only rounding is to the precision of the display format.

var printer = message.NewPrinter(language.English)

// FormatScore renders a score with the shortest exact representation, so 8.4
// is "8.4" and 9.0 is "9".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// FormatOverallScore renders a score out of ten, such as "8.4/10".
func FormatOverallScore(score float64) string {
	return FormatScore(score) + "/10"
}

// FormatCurrency renders a dollar amount with thousands separators. Whole
// amounts have no decimals; fractional amounts show cents.
func FormatCurrency(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("$%d", int64(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

// FormatPercent renders a percentage literally, such as "50.4%".
func FormatPercent(p float64) string {
	return FormatScore(p) + "%"
}

// FormatFileSize renders a byte count in megabytes with two decimals.
func FormatFileSize(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatDate renders the calendar date of a timestamp, or "unknown".
func FormatDate(t Timestamp) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("2006-01-02")
}
