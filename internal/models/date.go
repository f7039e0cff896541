package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/dailytrack/internal/constants"
)

// Date is a calendar day with no time zone. The zero value is not a valid day.
// Dates are comparable with == and ordered with Before/After.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD key. Out-of-range days such as 2026-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals; it panics on malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc (time.Local when nil).
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.midnight().Format(constants.DateFormat)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// DaysUntil returns the number of calendar days from d to other (negative when other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.midnight().Sub(d.midnight()).Hours() / 24)
}

func (d Date) Before(other Date) bool {
	return d.midnight().Before(other.midnight())
}

func (d Date) After(other Date) bool {
	return d.midnight().After(other.midnight())
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// Weekday reports the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores dates as their canonical text key.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepts the text key and, for drivers that return DATE columns as time.Time, a timestamp.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// DateRange lists every day from start to end inclusive. It is empty when end is before start.
func DateRange(start, end Date) []Date {
	if end.Before(start) {
		return nil
	}
	days := make([]Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
