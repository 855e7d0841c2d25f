// Package calendar classifies each day of a schedule month into the single
// status the console displays. Classification is pure: the same inputs always
// produce the same status.
package calendar

import (
	"time"

	"github.com/iamsayeed/payroll-console/internal/hris"
)

type Status string

const (
	StatusRegularHoliday Status = "regularholiday"
	StatusSpecialHoliday Status = "specialholiday"
	StatusSickLeave      Status = "sickleave"
	StatusNightDiff      Status = "nightdiff"
	StatusOnCall         Status = "oncall"
	StatusVacationLeave  Status = "vacationleave"
	StatusAttended       Status = "attended"
	StatusLate           Status = "late"
	StatusOvertime       Status = "overtime"
	StatusUndertime      Status = "undertime"
	StatusAbsent         Status = "absent"
	StatusScheduled      Status = "scheduled"
	StatusUnselected     Status = "unselected"
	StatusOutsidePeriod  Status = "outside-period"
)

const dateLayout = "2006-01-02"

// Period is the active payroll period window, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// DayContext is everything a classification depends on. Now anchors the
// past/future split so the function stays deterministic under test.
type DayContext struct {
	Schedule      *hris.ScheduleRecord
	Holidays      []hris.Holiday
	Attendance    []hris.AttendanceRecord
	OvertimeHours []hris.OvertimeHoursRecord
	ShiftsByDate  map[string]hris.Shift
	Period        Period
	Now           time.Time
}

// Classify resolves one date to its display status. The priority order is
// load-bearing: a holiday always beats a scheduled working day, an explicit
// schedule event beats attendance, and attendance beats the weekday
// selection.
func Classify(date time.Time, day DayContext) Status {
	key := date.Format(dateLayout)
	isPast := date.Before(truncateToDay(day.Now))

	// 1. Master-calendar holidays.
	for _, holiday := range day.Holidays {
		if holiday.Date != key {
			continue
		}
		if holiday.Type == hris.HolidaySpecial {
			return StatusSpecialHoliday
		}
		return StatusRegularHoliday
	}

	// 2. Explicit per-category schedule events. The schedule editor keeps a
	// date in at most one category, so first match is the only match.
	if day.Schedule != nil {
		if day.Schedule.SickLeaveDate == key {
			return StatusSickLeave
		}
		if containsDate(day.Schedule.RegularHolidayDates, key) {
			return StatusRegularHoliday
		}
		if containsDate(day.Schedule.SpecialHolidayDates, key) {
			return StatusSpecialHoliday
		}
		if containsDate(day.Schedule.NightDiffDates, key) {
			return StatusNightDiff
		}
		if containsDate(day.Schedule.OnCallDates, key) {
			return StatusOnCall
		}
		if containsDate(day.Schedule.VacationLeaveDates, key) {
			return StatusVacationLeave
		}
	}

	// 3. Recorded attendance, past dates only.
	if isPast {
		if record, ok := attendanceOn(day.Attendance, key); ok {
			switch record.Status {
			case hris.AttendanceAbsent:
				return StatusAbsent
			case hris.AttendanceLate:
				return StatusLate
			case hris.AttendancePresent:
				return refinePresent(record, day, key)
			}
		}
	}

	// 4. The weekday selection inside the payroll period.
	if day.Schedule != nil && day.Period.Contains(date) && containsDate(day.Schedule.Days, date.Weekday().String()) {
		if isPast {
			return StatusAbsent
		}
		return StatusScheduled
	}

	// 5. Past with nothing recorded.
	if isPast {
		return StatusAbsent
	}

	// 6. Future non-working day.
	if !day.Period.Contains(date) {
		return StatusOutsidePeriod
	}
	return StatusUnselected
}

// refinePresent narrows a Present attendance into late, overtime or
// undertime using the shift window and the per-day hours summary.
func refinePresent(record hris.AttendanceRecord, day DayContext, key string) Status {
	if shift, ok := day.ShiftsByDate[key]; ok && record.CheckInTime != "" && shift.ShiftStart != "" {
		if record.CheckInTime > shift.ShiftStart {
			return StatusLate
		}
	}
	for _, summary := range day.OvertimeHours {
		if summary.Date != key {
			continue
		}
		if summary.OvertimeHours > 0 {
			return StatusOvertime
		}
		if summary.UndertimeHours > 0 {
			return StatusUndertime
		}
	}
	return StatusAttended
}

func attendanceOn(records []hris.AttendanceRecord, key string) (hris.AttendanceRecord, bool) {
	for _, record := range records {
		if record.Date == key {
			return record, true
		}
	}
	return hris.AttendanceRecord{}, false
}

func containsDate(dates []string, key string) bool {
	for _, d := range dates {
		if d == key {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
