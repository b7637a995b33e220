package calendar

import (
	"fmt"
	"time"

	"slotbook/models"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
)

// Date is a calendar date with no time-of-day or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses "YYYY-MM-DD". Anything else, including impossible dates
// like 2025-02-30, is an InvalidDateError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, models.NewInvalidDateError("malformed date %q, expected YYYY-MM-DD", s)
	}
	return FromTime(t), nil
}

// FromTime takes the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the calendar date of now as observed in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(now.In(loc))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight of d in loc (UTC when loc is nil).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.compare(o) < 0
}

func (d Date) After(o Date) bool {
	return d.compare(o) > 0
}

func (d Date) Equal(o Date) bool {
	return d.compare(o) == 0
}

func (d Date) compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, models.NewInvalidDateError("malformed month %q, expected YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Valid() bool {
	return ym.Month >= time.January && ym.Month <= time.December && ym.Year > 0 && ym.Year <= 9999
}

// First returns the first day of the month.
func (ym YearMonth) First() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: 1}
}

// Last returns the last day of the month.
func (ym YearMonth) Last() Date {
	return FromTime(time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

func (ym YearMonth) Contains(d Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}
