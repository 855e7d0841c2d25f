package payroll

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/iamsayeed/payroll-console/internal/hris"
)

// Policy decides what a failed step does to the rest of a save.
type Policy int

const (
	// PolicyBestEffort records the failure and keeps going; the save as a
	// whole still reports success. This mirrors the console's original
	// "never block the user on a partial backend hiccup" behavior.
	PolicyBestEffort Policy = iota
	// PolicyFailFast stops at the first failed step and returns its error.
	PolicyFailFast
)

// Draft is the editable payroll form for one employee. Monetary fields are
// raw strings straight from the form; IDs are zero until a record is known.
type Draft struct {
	Earnings           hris.EarningsLine
	Overtime           hris.OvertimeTotals
	Deductions         hris.DeductionsLine
	PayDate            string
	PayrollPeriodStart string
}

type StepResult struct {
	Step string
	Err  error
}

// Outcome reports every step of a save run plus the recomputed totals. The
// payroll status in the outcome is always Processing regardless of what the
// backend persisted; the next read is the source of truth.
type Outcome struct {
	Totals  Totals
	Status  string
	Steps   []StepResult
	Payroll *hris.PayrollRecord
}

// FailedSteps returns the steps that errored.
func (o *Outcome) FailedSteps() []StepResult {
	var failed []StepResult
	for _, s := range o.Steps {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

type Synchronizer struct {
	client hris.ClientInterface
	policy Policy
	newKey func() string
}

func NewSynchronizer(client hris.ClientInterface, policy Policy) *Synchronizer {
	return &Synchronizer{
		client: client,
		policy: policy,
		newKey: uuid.NewString,
	}
}

// SavePayroll materializes one employee's payroll period: totals are
// recomputed from the draft (stale client totals are never trusted), then
// earnings, deductions, overtime totals and the payroll record are upserted
// in sequence against their collections. Every request in the run carries one
// idempotency key so a rapid double-submit cannot double-create records.
func (s *Synchronizer) SavePayroll(ctx context.Context, employeeID int, draft Draft) (*Outcome, error) {
	ctxLogger := log.WithContext(ctx)
	ctxLogger.Infof("Saving payroll for employee %v", employeeID)

	ctx = hris.WithIdempotencyKey(ctx, s.newKey())

	outcome := &Outcome{
		Totals: ComputeTotals(draft.Earnings, draft.Overtime, draft.Deductions),
		Status: hris.PayrollStatusProcessing,
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{name: "earnings", run: func(ctx context.Context) error {
			return s.upsertEarnings(ctx, employeeID, draft.Earnings)
		}},
		{name: "deductions", run: func(ctx context.Context) error {
			return s.upsertDeductions(ctx, employeeID, draft.Deductions)
		}},
		{name: "overtime", run: func(ctx context.Context) error {
			return s.upsertOvertime(ctx, employeeID, draft)
		}},
		{name: "payroll", run: func(ctx context.Context) error {
			return s.upsertPayroll(ctx, employeeID, draft, outcome)
		}},
	}

	for _, step := range steps {
		err := step.run(ctx)
		outcome.Steps = append(outcome.Steps, StepResult{Step: step.name, Err: err})
		if err == nil {
			continue
		}
		ctxLogger.WithError(err).Errorf("payroll save step %q failed for employee %v", step.name, employeeID)
		if s.policy == PolicyFailFast {
			return outcome, fmt.Errorf("payroll save stopped at step %q: %w", step.name, err)
		}
	}

	return outcome, nil
}

func (s *Synchronizer) upsertEarnings(ctx context.Context, employeeID int, line hris.EarningsLine) error {
	line.Employee = employeeID
	if line.ID == 0 {
		existing, err := s.client.GetEarnings(ctx, employeeID)
		if err != nil {
			return err
		}
		if existing != nil {
			line.ID = existing.ID
		}
	}
	if line.ID != 0 {
		_, err := s.client.UpdateEarnings(ctx, line.ID, line)
		return err
	}
	_, err := s.client.CreateEarnings(ctx, line)
	return err
}

func (s *Synchronizer) upsertDeductions(ctx context.Context, employeeID int, line hris.DeductionsLine) error {
	line.Employee = employeeID
	if line.ID == 0 {
		existing, err := s.client.GetDeductions(ctx, employeeID)
		if err != nil {
			return err
		}
		if existing != nil {
			line.ID = existing.ID
		}
	}
	if line.ID != 0 {
		_, err := s.client.UpdateDeductions(ctx, line.ID, line)
		return err
	}
	_, err := s.client.CreateDeductions(ctx, line)
	return err
}

func (s *Synchronizer) upsertOvertime(ctx context.Context, employeeID int, draft Draft) error {
	totals := draft.Overtime
	totals.Employee = employeeID
	// The bi-week anchor is the selected payroll period start. Stamping the
	// save date here drifts from the period being edited.
	totals.BiweekStart = draft.PayrollPeriodStart
	if totals.ID == 0 {
		existing, err := s.client.GetOvertimeTotals(ctx, employeeID)
		if err != nil {
			return err
		}
		if existing != nil {
			totals.ID = existing.ID
		}
	}
	if totals.ID != 0 {
		_, err := s.client.UpdateOvertimeTotals(ctx, totals.ID, totals)
		return err
	}
	_, err := s.client.CreateOvertimeTotals(ctx, totals)
	return err
}

func (s *Synchronizer) upsertPayroll(ctx context.Context, employeeID int, draft Draft, outcome *Outcome) error {
	ctxLogger := log.WithContext(ctx)

	record := hris.PayrollRecord{
		Employee:        employeeID,
		GrossPay:        outcome.Totals.TotalGross,
		TotalDeductions: outcome.Totals.TotalDeductions,
		NetPay:          outcome.Totals.TotalSalaryCompensation,
		PayDate:         draft.PayDate,
		Status:          hris.PayrollStatusProcessing,
	}

	// Salary and schedule references ride along when known; a lookup failure
	// only costs the reference, not the save.
	if salary, err := s.client.GetSalary(ctx, employeeID); err != nil {
		ctxLogger.WithError(err).Infof("salary lookup failed for employee %v, saving payroll without the reference", employeeID)
	} else if salary != nil {
		record.Salary = salary.ID
	}
	if schedule, err := s.client.GetSchedule(ctx, employeeID); err != nil {
		ctxLogger.WithError(err).Infof("schedule lookup failed for employee %v, saving payroll without the reference", employeeID)
	} else if schedule != nil {
		record.Schedule = schedule.ID
	}

	existing, err := s.client.GetPayroll(ctx, employeeID)
	if err != nil {
		return err
	}
	if existing != nil {
		saved, err := s.client.UpdatePayroll(ctx, existing.ID, record)
		if err != nil {
			return err
		}
		outcome.Payroll = saved
		return nil
	}
	saved, err := s.client.CreatePayroll(ctx, record)
	if err != nil {
		return err
	}
	outcome.Payroll = saved
	return nil
}
