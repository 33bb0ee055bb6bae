package order

import (
	"fmt"
	"strconv"
	"time"
)

const (
	numberDateLayout    = "060102"
	numberPaddingLength = 4

	// MaxDailySequence is the last sequence that fits the four digit suffix.
	MaxDailySequence = 9999
)

// GenerateNumber builds the order number for the order that follows
// countToday orders already created on now's calendar day. Callers keep
// countToday below MaxDailySequence.
//
//	GenerateNumber(2024-01-23, 6) == "2401230007"
func GenerateNumber(now time.Time, countToday int64) string {
	return now.Format(numberDateLayout) + fmt.Sprintf("%0*d", numberPaddingLength, countToday+1)
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey is the YYMMDD prefix shared by every order number of t's day.
func DayKey(t time.Time) string {
	return t.Format(numberDateLayout)
}

// Sequence extracts the daily sequence from an order number.
func Sequence(number string) (int64, bool) {
	if len(number) <= len(numberDateLayout) {
		return 0, false
	}
	n, err := strconv.ParseInt(number[len(numberDateLayout):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
