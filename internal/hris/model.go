package hris

import "encoding/json"

// Monetary fields stay strings on the wire. The backend serializes decimals
// as strings and the edit forms round-trip them verbatim; parsing happens at
// the money package boundary only.

type TokenResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	UserID       string `json:"user_id"`
	UserRole     string `json:"user_role"`
	UserEmail    string `json:"user_email"`
}

type Employee struct {
	ID               int    `json:"id"`
	UserID           int    `json:"user"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Position         string `json:"position"`
	EmploymentStatus string `json:"employment_status"`
}

type EarningsLine struct {
	ID                  int    `json:"id,omitempty"`
	Employee            int    `json:"employee,omitempty"`
	BasicRate           string `json:"basic_rate"`
	Basic               string `json:"basic"`
	Allowance           string `json:"allowance"`
	NonTaxableAllowance string `json:"non_taxable_allowance"`
	VacationLeavePay    string `json:"vacation_leave_pay"`
	SickLeavePay        string `json:"sick_leave_pay"`
}

type OvertimeTotals struct {
	ID                 int    `json:"id,omitempty"`
	Employee           int    `json:"employee,omitempty"`
	RegularOTRate      string `json:"regular_ot_rate"`
	RegularHolidayRate string `json:"regular_holiday_rate"`
	SpecialHolidayRate string `json:"special_holiday_rate"`
	RestDayRate        string `json:"rest_day_rate"`
	NightDiffRate      string `json:"night_diff_rate"`
	BackwageRate       string `json:"backwage_rate"`
	LateAmount         string `json:"late_amount"`
	UndertimeAmount    string `json:"undertime_amount"`
	OvertimeAmount     string `json:"overtime_amount"`
	BiweekStart        string `json:"biweek_start,omitempty"`
}

// DeductionsLine carries the deduction side of a payroll draft. OvertimeOffset
// is serialized as overtime_amount: the backend reuses that field name for a
// deduction-side adjustment that is unrelated to overtime earnings, so the Go
// name keeps the two apart.
type DeductionsLine struct {
	ID               int    `json:"id,omitempty"`
	Employee         int    `json:"employee,omitempty"`
	WithholdingTax   string `json:"withholding_tax"`
	SSSAmount        string `json:"sss_amount"`
	PhilHealthAmount string `json:"philhealth_amount"`
	PagIbigAmount    string `json:"pagibig_amount"`
	NoWorkAmount     string `json:"no_work_amount"`
	LoanAmount       string `json:"loan_amount"`
	ChargesAmount    string `json:"charges_amount"`
	MSFCLoanAmount   string `json:"msfc_loan_amount"`
	OvertimeOffset   string `json:"overtime_amount"`
}

const (
	PayrollStatusPending    = "Pending"
	PayrollStatusProcessing = "Processing"
	PayrollStatusPaid       = "Paid"
	PayrollStatusRejected   = "Rejected"
)

type PayrollRecord struct {
	ID              int    `json:"id,omitempty"`
	Employee        int    `json:"employee,omitempty"`
	Salary          int    `json:"salary,omitempty"`
	Schedule        int    `json:"schedule,omitempty"`
	GrossPay        string `json:"gross_pay"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
	PayDate         string `json:"pay_date,omitempty"`
	Status          string `json:"status"`
}

type SalaryRecord struct {
	ID         int    `json:"id"`
	Employee   int    `json:"employee"`
	BaseSalary string `json:"base_salary"`
	PayFreq    string `json:"pay_frequency"`
}

type ScheduleRecord struct {
	ID                  int      `json:"id,omitempty"`
	Employee            int      `json:"employee,omitempty"`
	Days                []string `json:"days"`
	ShiftIDs            []int    `json:"shift_ids"`
	PayrollPeriodStart  string   `json:"payroll_period_start"`
	PayrollPeriodEnd    string   `json:"payroll_period_end"`
	SickLeaveDate       string   `json:"sick_leave_date,omitempty"`
	RegularHolidayDates []string `json:"regular_holiday_dates"`
	SpecialHolidayDates []string `json:"special_holiday_dates"`
	NightDiffDates      []string `json:"night_diff_dates"`
	OnCallDates         []string `json:"on_call_dates"`
	VacationLeaveDates  []string `json:"vacation_leave_dates"`
}

// ScheduleShiftDelta is the PATCH body for an existing schedule. The backend
// contract is asymmetric: updates send add/remove deltas while creation sends
// the full shift_ids list, and both sides must keep it that way.
type ScheduleShiftDelta struct {
	AddShiftIDs    []int `json:"add_shift_ids,omitempty"`
	RemoveShiftIDs []int `json:"remove_shift_ids,omitempty"`
}

type Shift struct {
	ID         int    `json:"id,omitempty"`
	Employee   int    `json:"employee,omitempty"`
	Date       string `json:"date"`
	ShiftStart string `json:"shift_start"`
	ShiftEnd   string `json:"shift_end"`
}

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
)

type AttendanceRecord struct {
	ID           int    `json:"id"`
	Employee     int    `json:"employee"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
}

// OvertimeHoursRecord is the per-day attendance summary consumed by the
// calendar classifier to refine a Present day into overtime or undertime.
type OvertimeHoursRecord struct {
	ID             int     `json:"id"`
	Employee       int     `json:"employee"`
	Date           string  `json:"date"`
	OvertimeHours  float64 `json:"overtime_hours"`
	UndertimeHours float64 `json:"undertime_hours"`
}

type BiometricRecord struct {
	ID       int    `json:"id"`
	Employee int    `json:"employee"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Kind     string `json:"kind"`
}

type BenefitRecord struct {
	ID       int    `json:"id"`
	Employee int    `json:"employee"`
	Amount   string `json:"amount"`
}

// Benefits groups the three statutory contribution records. Missing or failed
// lookups leave the zero record in place; the join never fails as a whole.
type Benefits struct {
	SSS        BenefitRecord
	PhilHealth BenefitRecord
	PagIbig    BenefitRecord
}

const (
	HolidayRegular = "Regular"
	HolidaySpecial = "Special"
)

type Holiday struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type PayrollPeriod struct {
	ID        int    `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
}

type Payslip struct {
	ID              int    `json:"id"`
	Employee        int    `json:"employee"`
	Payroll         int    `json:"payroll"`
	PeriodStart     string `json:"period_start"`
	PeriodEnd       string `json:"period_end"`
	GrossPay        string `json:"gross_pay"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
	Status          string `json:"status"`
}

const (
	ActivityCreate = "CREATE"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)

type ActivityLogEntry struct {
	ID       int                 `json:"id"`
	Module   string              `json:"module"`
	Type     string              `json:"type"`
	Datetime string              `json:"datetime"`
	User     string              `json:"user"`
	Changes  map[string][]string `json:"changes"`
	Object   json.RawMessage     `json:"object"`
}

// ActivityLogPage is the paginated envelope; activity-log is the only
// collection the backend pages, everything else returns bare arrays.
type ActivityLogPage struct {
	Count   int                `json:"count"`
	Results []ActivityLogEntry `json:"results"`
}
