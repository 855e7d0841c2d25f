// Package schedule turns a weekday selection into concrete shift resources on
// the backend and keeps the schedule record's shift-ID list in step.
package schedule

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	detach "github.com/iamsayeed/payroll-console/internal/context"
	"github.com/iamsayeed/payroll-console/internal/hris"
)

const (
	dateLayout       = "2006-01-02"
	batchDeleteChunk = 10
)

// Period is the active payroll period window, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// GenerateOutcome lists what one generation run did. Per-date failures are
// collected rather than aborting the run.
type GenerateOutcome struct {
	CreatedShiftIDs []int
	CreatedDates    []string
	SkippedDates    []string
	Errors          []string
}

type RemoveOutcome struct {
	RemovedShiftIDs []int
	Errors          []string
}

type Generator struct {
	client hris.ClientInterface
}

func NewGenerator(client hris.ClientInterface) *Generator {
	return &Generator{client: client}
}

// GenerateShiftsForWeekday creates one shift per date of the displayed month
// that falls on the given weekday inside the payroll period, skipping dates
// that already carry a shift, then links the new shift IDs to the employee's
// schedule. An existing schedule is PATCHed with an add_shift_ids delta; a
// missing one is POSTed with the full shift_ids list.
func (g *Generator) GenerateShiftsForWeekday(ctx context.Context, employeeID int, weekday time.Weekday, window Window, period Period, month time.Time) (*GenerateOutcome, error) {
	ctxLogger := log.WithContext(ctx)
	ctxLogger.Infof("Generating %v shifts for employee %v between %s and %s",
		weekday, employeeID, period.Start.Format(dateLayout), period.End.Format(dateLayout))

	outcome := &GenerateOutcome{}

	record, err := g.client.GetSchedule(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	existingDates, err := g.knownShiftDates(ctx, record, outcome)
	if err != nil {
		return nil, err
	}

	for _, date := range matchingDates(month, weekday, period) {
		key := date.Format(dateLayout)
		if _, ok := existingDates[key]; ok {
			outcome.SkippedDates = append(outcome.SkippedDates, key)
			continue
		}

		created, err := g.client.CreateShift(ctx, hris.Shift{
			Employee:   employeeID,
			Date:       key,
			ShiftStart: window.Start,
			ShiftEnd:   window.End,
		})
		if err != nil {
			errStr := fmt.Errorf("Failed to create shift on %v for employee %v: %v. ", key, employeeID, err)
			ctxLogger.Infof(errStr.Error())
			outcome.Errors = append(outcome.Errors, errStr.Error())
			continue
		}
		existingDates[key] = created.ID
		outcome.CreatedShiftIDs = append(outcome.CreatedShiftIDs, created.ID)
		outcome.CreatedDates = append(outcome.CreatedDates, key)
	}

	if len(outcome.CreatedShiftIDs) == 0 {
		return outcome, nil
	}

	if record != nil {
		err = g.client.UpdateScheduleShifts(ctx, record.ID, hris.ScheduleShiftDelta{AddShiftIDs: outcome.CreatedShiftIDs})
	} else {
		_, err = g.client.CreateSchedule(ctx, hris.ScheduleRecord{
			Employee:           employeeID,
			Days:               []string{weekday.String()},
			ShiftIDs:           outcome.CreatedShiftIDs,
			PayrollPeriodStart: period.Start.Format(dateLayout),
			PayrollPeriodEnd:   period.End.Format(dateLayout),
		})
	}
	if err != nil {
		errStr := fmt.Errorf("Failed to link %v new shifts to the schedule for employee %v: %v. ", len(outcome.CreatedShiftIDs), employeeID, err)
		ctxLogger.Infof(errStr.Error())
		outcome.Errors = append(outcome.Errors, errStr.Error())
	}

	return outcome, nil
}

// RemoveShiftsForWeekday unlinks every shift of the weekday inside the payroll
// period from the schedule, then deletes the shifts in chunks of ten on a
// detached context so request cancellation cannot orphan the schedule's
// shift-ID list.
func (g *Generator) RemoveShiftsForWeekday(ctx context.Context, employeeID int, weekday time.Weekday, period Period) (*RemoveOutcome, error) {
	ctxLogger := log.WithContext(ctx)
	outcome := &RemoveOutcome{}

	record, err := g.client.GetSchedule(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return outcome, nil
	}

	for _, shiftID := range record.ShiftIDs {
		shift, err := g.client.GetShift(ctx, shiftID)
		if err != nil {
			errStr := fmt.Errorf("Failed to fetch shift %v for employee %v: %v. ", shiftID, employeeID, err)
			ctxLogger.Infof(errStr.Error())
			outcome.Errors = append(outcome.Errors, errStr.Error())
			continue
		}
		date, err := time.Parse(dateLayout, shift.Date)
		if err != nil {
			continue
		}
		if date.Weekday() == weekday && period.Contains(date) {
			outcome.RemovedShiftIDs = append(outcome.RemovedShiftIDs, shiftID)
		}
	}

	if len(outcome.RemovedShiftIDs) == 0 {
		return outcome, nil
	}

	if err := g.client.UpdateScheduleShifts(ctx, record.ID, hris.ScheduleShiftDelta{RemoveShiftIDs: outcome.RemovedShiftIDs}); err != nil {
		errStr := fmt.Errorf("Failed to unlink %v shifts from the schedule for employee %v: %v. ", len(outcome.RemovedShiftIDs), employeeID, err)
		ctxLogger.Infof(errStr.Error())
		outcome.Errors = append(outcome.Errors, errStr.Error())
		return outcome, nil
	}

	deleteCtx := detach.Detach(ctx)
	go g.batchDeleteShifts(deleteCtx, outcome.RemovedShiftIDs)

	return outcome, nil
}

func (g *Generator) batchDeleteShifts(ctx context.Context, shiftIDs []int) {
	ctxLogger := log.WithContext(ctx)
	for start := 0; start < len(shiftIDs); start += batchDeleteChunk {
		end := start + batchDeleteChunk
		if end > len(shiftIDs) {
			end = len(shiftIDs)
		}
		if err := g.client.BatchDeleteShifts(ctx, shiftIDs[start:end]); err != nil {
			ctxLogger.WithError(err).Errorf("batch delete of shifts %v failed", shiftIDs[start:end])
		}
	}
}

// knownShiftDates resolves the schedule's shift IDs to their dates. A shift
// that cannot be fetched is logged and ignored; duplicate checking stays
// best-effort.
func (g *Generator) knownShiftDates(ctx context.Context, record *hris.ScheduleRecord, outcome *GenerateOutcome) (map[string]int, error) {
	dates := make(map[string]int)
	if record == nil {
		return dates, nil
	}
	ctxLogger := log.WithContext(ctx)
	for _, shiftID := range record.ShiftIDs {
		shift, err := g.client.GetShift(ctx, shiftID)
		if err != nil {
			ctxLogger.WithError(err).Infof("could not fetch shift %v while checking for duplicates", shiftID)
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("Failed to fetch shift %v while checking for duplicates. ", shiftID))
			continue
		}
		dates[shift.Date] = shift.ID
	}
	return dates, nil
}

// matchingDates enumerates the dates of the displayed month that fall on the
// weekday and inside the payroll period, both bounds inclusive. month may be
// any instant inside the displayed calendar month.
func matchingDates(month time.Time, weekday time.Weekday, period Period) []time.Time {
	var dates []time.Time
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != weekday {
			continue
		}
		if !period.Contains(d) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
