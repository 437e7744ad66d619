package domain

import "time"

// Schedule resolves a rule into concrete dates for one calendar month.
type Schedule interface {
	Dates(year int, month time.Month) []time.Time
}

// MonthlySchedule fires once a month on Day, clamped to the month length.
type MonthlySchedule struct {
	Day int
}

func (s MonthlySchedule) Dates(year int, month time.Month) []time.Time {
	return []time.Time{clampedDate(year, month, s.Day)}
}

// WeeklySchedule fires on every Weekday of the month.
type WeeklySchedule struct {
	Weekday time.Weekday
}

func (s WeeklySchedule) Dates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(s.Weekday) - int(first.Weekday()) + 7) % 7
	last := DaysIn(year, month)
	var out []time.Time
	for day := 1 + offset; day <= last; day += 7 {
		out = append(out, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}
	return out
}

// YearlySchedule fires once a year, in Month on Day (clamped).
type YearlySchedule struct {
	Month time.Month
	Day   int
}

func (s YearlySchedule) Dates(year int, month time.Month) []time.Time {
	if month != s.Month {
		return nil
	}
	return []time.Time{clampedDate(year, month, s.Day)}
}

// WeekdayFromIndex maps the 0=Monday..6=Sunday convention used by rules
// onto time.Weekday.
func WeekdayFromIndex(i int) time.Weekday {
	return time.Weekday((i + 1) % 7)
}

func clampedDate(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
