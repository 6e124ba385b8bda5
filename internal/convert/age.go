package convert

import (
	"fmt"
	"time"
)

// minBirthYear is the earliest accepted birth year.
const minBirthYear = 1900

// Age is a calendar difference in whole years, months and days.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// AgeOn returns the age on the date of today of someone born on the given
// calendar date. month is 1-based. Only the calendar date of today is used.
func AgeOn(year, month, day int, today time.Time) (Age, error) {
	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if year < minBirthYear || birth.Year() != year || int(birth.Month()) != month || birth.Day() != day {
		return Age{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	ty, tm, td := today.Date()
	now := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	if birth.After(now) {
		return Age{}, fmt.Errorf("%w: %s", ErrFutureDate, birth.Format(time.DateOnly))
	}

	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	anchor := addMonths(birth, months)
	if anchor.After(now) {
		months--
		anchor = addMonths(birth, months)
	}
	days := int(now.Sub(anchor).Hours() / 24)

	return Age{Years: months / 12, Months: months % 12, Days: days}, nil
}

// addMonths moves t forward n months, clamping the day to the end of the
// target month so that Jan 31 plus one month is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	m := int(t.Month()) - 1 + n
	year := t.Year() + m/12
	month := time.Month(m%12 + 1)
	day := min(t.Day(), daysIn(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
