// ABOUTME: Display formatting for elapsed times and dates.
// ABOUTME: Times render as M:SS.CC or S.CC; dates use Czech conventions.
package records

import (
	"fmt"
	"math"
	"time"
)

// FormatElapsed renders seconds as M:SS.CC, or S.CC under a minute.
// Rounding to hundredths happens on the total so 59.999 carries to "1:00.00".
func FormatElapsed(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	hundredths := int64(math.Round(seconds * 100))
	mins := hundredths / 6000
	secs := (hundredths % 6000) / 100
	cs := hundredths % 100

	if mins > 0 {
		return fmt.Sprintf("%d:%02d.%02d", mins, secs, cs)
	}
	return fmt.Sprintf("%d.%02d", secs, cs)
}

var czechShortMonths = [...]string{
	"led", "úno", "bře", "dub", "kvě", "čvn",
	"čvc", "srp", "zář", "říj", "lis", "pro",
}

// FormatDate renders t as "2. led 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), czechShortMonths[t.Month()-1], t.Year())
}

// FormatDateShort renders t as "2. 1.".
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%d. %d.", t.Day(), int(t.Month()))
}

// FormatDateTime renders t as "2. led 14:05".
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%d. %s %02d:%02d", t.Day(), czechShortMonths[t.Month()-1], t.Hour(), t.Minute())
}
