package Models

import (
	"math"
	"time"
)

// Holidays are fixed no-attendance dates. Sundays are always excluded as
// the weekly off day.
var Holidays = []string{
	"2024-12-25",
	"2024-12-31",
}

const DateLayout = "2006-01-02"

// IsHoliday reports whether attendance cannot be recorded on the given
// date, either because it is a listed holiday or falls on a Sunday.
// Unparseable dates are not holidays; the caller validates the format.
func IsHoliday(date string) bool {
	for _, h := range Holidays {
		if h == date {
			return true
		}
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Sunday
}

// AttendanceSummary holds the derived counts for one student.
type AttendanceSummary struct {
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	LeaveDays   int     `json:"leave_days"`
	TotalDays   int     `json:"total_days"`
	Percentage  float64 `json:"percentage"`
}

// CalculateAttendance derives present/absent/leave counts and the
// attendance percentage from a student's records. Dates that are holidays
// or Sundays are excluded from the totals before the percentage is
// computed, so records marked before a date was declared a holiday do not
// skew the result. Percentage is 0 when no countable days exist.
func CalculateAttendance(records []AttendanceRecord) AttendanceSummary {
	var summary AttendanceSummary
	for _, record := range records {
		if IsHoliday(record.Date) {
			continue
		}
		switch record.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusLeave:
			summary.LeaveDays++
		default:
			continue
		}
		summary.TotalDays++
	}
	if summary.TotalDays == 0 {
		return summary
	}
	percentage := float64(summary.PresentDays) / float64(summary.TotalDays) * 100
	summary.Percentage = math.Round(percentage*100) / 100
	return summary
}
