package calendar

import (
	"time"

	"github.com/username/invoice-maker/pkg/dateutil"
)

// DayType represents the type of day within a billing month
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeDayOff
)

// DayInfo represents billing information about a specific day
type DayInfo struct {
	Date   time.Time
	Type   DayType
	Billed bool
}

// MonthInfo represents the billed-day breakdown for a billing period
type MonthInfo struct {
	Year       int
	Month      time.Month
	BilledDays int
	Weekends   int
	DaysOff    int
	Days       []DayInfo
}

// DateSet is a set of calendar dates, keyed by day regardless of time of
// day or location.
type DateSet map[string]struct{}

// NewDateSet builds a DateSet from the given dates
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

// Add inserts a date into the set
func (s DateSet) Add(date time.Time) {
	s[dateutil.FormatDate(date)] = struct{}{}
}

// Contains reports whether the set holds the given date
func (s DateSet) Contains(date time.Time) bool {
	_, ok := s[dateutil.FormatDate(date)]
	return ok
}

// BusinessDaysBilled counts the billable business days in the month ending
// at periodEnd. The period is the inclusive range from the first of the
// month through periodEnd. A day is billed when it falls Monday-Friday and
// is not listed in daysOff. Weekend or out-of-range daysOff entries have no
// effect.
func BusinessDaysBilled(periodEnd time.Time, daysOff DateSet) int {
	return MonthOf(periodEnd, daysOff).BilledDays
}

// MonthOf walks every calendar day from the first of periodEnd's month
// through periodEnd and classifies it as workday, weekend, or day off.
func MonthOf(periodEnd time.Time, daysOff DateSet) *MonthInfo {
	info := &MonthInfo{
		Year:  periodEnd.Year(),
		Month: periodEnd.Month(),
	}

	end := dateutil.StartOfDay(periodEnd)
	for day := dateutil.StartOfMonth(periodEnd); !day.After(end); day = day.AddDate(0, 0, 1) {
		dayInfo := DayInfo{Date: day}

		switch {
		case dateutil.IsWeekend(day):
			dayInfo.Type = DayTypeWeekend
			info.Weekends++
		case daysOff.Contains(day):
			dayInfo.Type = DayTypeDayOff
			info.DaysOff++
		default:
			dayInfo.Type = DayTypeWorkday
			dayInfo.Billed = true
			info.BilledDays++
		}

		info.Days = append(info.Days, dayInfo)
	}

	return info
}
