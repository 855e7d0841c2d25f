package payroll

import (
	"github.com/iamsayeed/payroll-console/internal/hris"
	"github.com/iamsayeed/payroll-console/internal/money"
)

// Totals is the derived money view of one payroll draft. All fields are
// formatted with exactly two decimal places.
type Totals struct {
	TotalGross              string
	TotalDeductions         string
	TotalSalaryCompensation string
	DeductionsBreakdown     DeductionsBreakdown
}

type DeductionsBreakdown struct {
	WithholdingTax string
	SSS            string
	PhilHealth     string
	PagIbig        string
	Late           string
	NoWork         string
	Loan           string
	Charges        string
	Undertime      string
	MSFCLoan       string
	OvertimeOffset string
}

// ComputeTotals derives gross pay, total deductions and net compensation from
// a payroll draft. Pure and deterministic: blank or malformed numeric fields
// count as zero, and calling it twice on the same draft yields the same
// result. The basic rate is informational and not part of gross pay.
func ComputeTotals(earnings hris.EarningsLine, overtime hris.OvertimeTotals, deductions hris.DeductionsLine) Totals {
	totalGross := money.Sum(
		earnings.Basic,
		earnings.Allowance,
		earnings.NonTaxableAllowance,
		earnings.VacationLeavePay,
		earnings.SickLeavePay,
		overtime.RegularOTRate,
		overtime.RegularHolidayRate,
		overtime.SpecialHolidayRate,
		overtime.RestDayRate,
		overtime.NightDiffRate,
		overtime.BackwageRate,
	)

	totalDeductions := money.Sum(
		deductions.SSSAmount,
		deductions.PhilHealthAmount,
		deductions.PagIbigAmount,
		overtime.LateAmount,
		deductions.WithholdingTax,
		deductions.NoWorkAmount,
		deductions.LoanAmount,
		deductions.ChargesAmount,
		overtime.UndertimeAmount,
		deductions.MSFCLoanAmount,
		deductions.OvertimeOffset,
	)

	return Totals{
		TotalGross:              money.Format(totalGross),
		TotalDeductions:         money.Format(totalDeductions),
		TotalSalaryCompensation: money.Format(totalGross.Sub(totalDeductions)),
		DeductionsBreakdown: DeductionsBreakdown{
			WithholdingTax: format(deductions.WithholdingTax),
			SSS:            format(deductions.SSSAmount),
			PhilHealth:     format(deductions.PhilHealthAmount),
			PagIbig:        format(deductions.PagIbigAmount),
			Late:           format(overtime.LateAmount),
			NoWork:         format(deductions.NoWorkAmount),
			Loan:           format(deductions.LoanAmount),
			Charges:        format(deductions.ChargesAmount),
			Undertime:      format(overtime.UndertimeAmount),
			MSFCLoan:       format(deductions.MSFCLoanAmount),
			OvertimeOffset: format(deductions.OvertimeOffset),
		},
	}
}

func format(raw string) string {
	return money.Format(money.Parse(raw))
}
