package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/iamsayeed/payroll-console/internal/activitylog"
	"github.com/iamsayeed/payroll-console/internal/calendar"
	detach "github.com/iamsayeed/payroll-console/internal/context"
	"github.com/iamsayeed/payroll-console/internal/hris"
	"github.com/iamsayeed/payroll-console/internal/payroll"
	"github.com/iamsayeed/payroll-console/internal/payslip"
	"github.com/iamsayeed/payroll-console/internal/report"
	"github.com/iamsayeed/payroll-console/internal/schedule"
	"github.com/iamsayeed/payroll-console/internal/util"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var validate = validator.New()

var weekdaysByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

//LoginHandler proxies credentials to the backend and persists the session.
func LoginHandler(client hris.ClientInterface) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var body loginRequest
		if !decodeAndValidate(req, res, &body) {
			return
		}

		token, err := client.Login(ctx, body.Email, body.Password)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Login against the hris backend failed")
			util.WithErrorAndStatus(err, http.StatusUnauthorized, res)
			return
		}
		util.WithBodyAndStatus(token, http.StatusOK, res)
	}
}

type savePayrollRequest struct {
	Earnings           hris.EarningsLine   `json:"earnings"`
	Overtime           hris.OvertimeTotals `json:"overtime"`
	Deductions         hris.DeductionsLine `json:"deductions"`
	PayDate            string              `json:"pay_date" validate:"omitempty,datetime=2006-01-02"`
	PayrollPeriodStart string              `json:"payroll_period_start" validate:"required,datetime=2006-01-02"`
}

type saveStepView struct {
	Step  string `json:"step"`
	Error string `json:"error,omitempty"`
}

type savePayrollResponse struct {
	TotalGross              string              `json:"total_gross"`
	TotalDeductions         string              `json:"total_deductions"`
	TotalSalaryCompensation string              `json:"total_salary_compensation"`
	Status                  string              `json:"status"`
	Steps                   []saveStepView      `json:"steps"`
	Payroll                 *hris.PayrollRecord `json:"payroll,omitempty"`
}

//SavePayrollHandler runs the payroll save flow for one employee.
func SavePayrollHandler(synchronizer *payroll.Synchronizer, mailer *report.Mailer) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		var body savePayrollRequest
		if !decodeAndValidate(req, res, &body) {
			return
		}

		outcome, err := synchronizer.SavePayroll(ctx, employeeID, payroll.Draft{
			Earnings:           body.Earnings,
			Overtime:           body.Overtime,
			Deductions:         body.Deductions,
			PayDate:            body.PayDate,
			PayrollPeriodStart: body.PayrollPeriodStart,
		})
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}

		if mailer.Enabled() {
			go mailer.SendPayrollSaveReport(detach.Detach(ctx), employeeID, outcome)
		}

		response := savePayrollResponse{
			TotalGross:              outcome.Totals.TotalGross,
			TotalDeductions:         outcome.Totals.TotalDeductions,
			TotalSalaryCompensation: outcome.Totals.TotalSalaryCompensation,
			Status:                  outcome.Status,
			Payroll:                 outcome.Payroll,
		}
		for _, step := range outcome.Steps {
			view := saveStepView{Step: step.Step}
			if step.Err != nil {
				view.Error = step.Err.Error()
			}
			response.Steps = append(response.Steps, view)
		}
		util.WithBodyAndStatus(response, http.StatusOK, res)
	}
}

type generateShiftsRequest struct {
	Weekday     string `json:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	Preset      string `json:"preset" validate:"required,oneof=morning midday night custom"`
	ShiftStart  string `json:"shift_start" validate:"omitempty"`
	ShiftEnd    string `json:"shift_end" validate:"omitempty"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
	Month       string `json:"month" validate:"omitempty,datetime=2006-01"`
}

//GenerateShiftsHandler creates shifts for every matching date of the month.
func GenerateShiftsHandler(generator *schedule.Generator) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		var body generateShiftsRequest
		if !decodeAndValidate(req, res, &body) {
			return
		}

		window, err := schedule.WindowFor(schedule.Preset(body.Preset), body.ShiftStart, body.ShiftEnd)
		if err != nil {
			util.WithErrorAndStatus(err, http.StatusBadRequest, res)
			return
		}
		period, err := parsePeriod(body.PeriodStart, body.PeriodEnd)
		if err != nil {
			util.WithErrorAndStatus(err, http.StatusBadRequest, res)
			return
		}
		month := period.Start
		if body.Month != "" {
			month, _ = time.Parse(monthLayout, body.Month)
		}

		outcome, err := generator.GenerateShiftsForWeekday(ctx, employeeID, weekdaysByName[body.Weekday], window, period, month)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(outcome, http.StatusOK, res)
	}
}

type removeShiftsRequest struct {
	Weekday     string `json:"weekday" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}

//RemoveShiftsHandler unlinks and deletes shifts for the weekday.
func RemoveShiftsHandler(generator *schedule.Generator) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		var body removeShiftsRequest
		if !decodeAndValidate(req, res, &body) {
			return
		}

		period, err := parsePeriod(body.PeriodStart, body.PeriodEnd)
		if err != nil {
			util.WithErrorAndStatus(err, http.StatusBadRequest, res)
			return
		}

		outcome, err := generator.RemoveShiftsForWeekday(ctx, employeeID, weekdaysByName[body.Weekday], period)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(outcome, http.StatusOK, res)
	}
}

//CalendarMonthHandler classifies every day of the requested month.
func CalendarMonthHandler(client hris.ClientInterface) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}

		month := time.Now()
		if raw := req.URL.Query().Get("month"); raw != "" {
			parsed, err := time.Parse(monthLayout, raw)
			if err != nil {
				util.WithErrorAndStatus(fmt.Errorf("invalid month %q, expected YYYY-MM", raw), http.StatusBadRequest, res)
				return
			}
			month = parsed
		}

		day, err := buildDayContext(req, client, employeeID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}

		util.WithBodyAndStatus(calendar.MonthStatuses(month, *day), http.StatusOK, res)
	}
}

// buildDayContext assembles the classifier inputs from the backend: the
// schedule, holidays, attendance, per-day hour summaries and the shift
// windows referenced by the schedule.
func buildDayContext(req *http.Request, client hris.ClientInterface, employeeID int) (*calendar.DayContext, error) {
	ctx := req.Context()
	contextLogger := log.WithContext(ctx)

	scheduleRecord, err := client.GetSchedule(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	holidays, err := client.GetHolidays(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := client.GetAttendance(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	overtimeHours, err := client.GetOvertimeHours(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	shiftsByDate := make(map[string]hris.Shift)
	if scheduleRecord != nil {
		for _, shiftID := range scheduleRecord.ShiftIDs {
			shift, err := client.GetShift(ctx, shiftID)
			if err != nil {
				contextLogger.WithError(err).Infof("could not fetch shift %v for the month view", shiftID)
				continue
			}
			shiftsByDate[shift.Date] = *shift
		}
	}

	period := calendar.Period{}
	periodStart := req.URL.Query().Get("period_start")
	periodEnd := req.URL.Query().Get("period_end")
	if periodStart == "" && scheduleRecord != nil {
		periodStart = scheduleRecord.PayrollPeriodStart
	}
	if periodEnd == "" && scheduleRecord != nil {
		periodEnd = scheduleRecord.PayrollPeriodEnd
	}
	if periodStart != "" && periodEnd != "" {
		start, startErr := time.Parse(dateLayout, periodStart)
		end, endErr := time.Parse(dateLayout, periodEnd)
		if startErr == nil && endErr == nil {
			period = calendar.Period{Start: start, End: end}
		}
	}

	return &calendar.DayContext{
		Schedule:      scheduleRecord,
		Holidays:      holidays,
		Attendance:    attendance,
		OvertimeHours: overtimeHours,
		ShiftsByDate:  shiftsByDate,
		Period:        period,
		Now:           time.Now(),
	}, nil
}

//BenefitsHandler returns the employee's statutory contribution records.
func BenefitsHandler(client hris.ClientInterface) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		benefits, err := client.GetBenefits(ctx, employeeID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(benefits, http.StatusOK, res)
	}
}

//BiometricsHandler returns the employee's raw biometric punches.
func BiometricsHandler(client hris.ClientInterface) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		records, err := client.GetBiometricData(ctx, employeeID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(records, http.StatusOK, res)
	}
}

//PayrollPeriodsHandler returns the selectable payroll periods.
func PayrollPeriodsHandler(client hris.ClientInterface) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		periods, err := client.GetPayrollPeriods(ctx)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(periods, http.StatusOK, res)
	}
}

//ListPayslipsHandler returns every payslip of the employee.
func ListPayslipsHandler(payslips *payslip.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		slips, err := payslips.ListForEmployee(ctx, employeeID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(slips, http.StatusOK, res)
	}
}

//PayslipPDFHandler renders one payslip to PDF and serves the file.
func PayslipPDFHandler(payslips *payslip.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		payslipID, err := strconv.Atoi(mux.Vars(req)["payslipID"])
		if err != nil {
			util.WithErrorAndStatus(fmt.Errorf("invalid payslip id"), http.StatusBadRequest, res)
			return
		}

		filePath, err := payslips.GeneratePDF(ctx, employeeID, payslipID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		res.Header().Set("Content-Type", "application/pdf")
		http.ServeFile(res, req, filePath)
	}
}

//PayslipExportHandler serves the employee's payslip workbook.
func PayslipExportHandler(payslips *payslip.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		employeeID, ok := employeeIDFromPath(req, res)
		if !ok {
			return
		}
		filePath, err := payslips.ExportWorkbook(ctx, employeeID)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		res.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		http.ServeFile(res, req, filePath)
	}
}

//ActivityLogHandler returns one page of the audit trail.
func ActivityLogHandler(logs *activitylog.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		query := activityLogQueryFromRequest(req)
		page, err := logs.List(ctx, query)
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		util.WithBodyAndStatus(page, http.StatusOK, res)
	}
}

//ActivityLogDeleteHandler removes every entry recorded on the date.
func ActivityLogDeleteHandler(logs *activitylog.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		date := mux.Vars(req)["date"]
		if err := logs.DeleteByDate(ctx, date); err != nil {
			if errors.Is(err, hris.ErrSessionExpired) {
				respondError(res, contextLogger, err)
				return
			}
			util.WithErrorAndStatus(err, http.StatusBadRequest, res)
			return
		}
		util.WithBodyAndStatus(nil, http.StatusNoContent, res)
	}
}

//ActivityLogExportHandler serves the filtered audit trail as a workbook.
func ActivityLogExportHandler(logs *activitylog.Service) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		filePath, err := logs.ExportWorkbook(ctx, activityLogQueryFromRequest(req))
		if err != nil {
			respondError(res, contextLogger, err)
			return
		}
		res.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		http.ServeFile(res, req, filePath)
	}
}

func activityLogQueryFromRequest(req *http.Request) hris.ActivityLogQuery {
	values := req.URL.Query()
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))
	return hris.ActivityLogQuery{
		Page:     page,
		PageSize: pageSize,
		Module:   values.Get("module"),
		Type:     values.Get("type"),
	}
}

// decodeAndValidate parses the JSON body into dest and runs struct
// validation. Validation failures respond inline, field by field.
func decodeAndValidate(req *http.Request, res http.ResponseWriter, dest interface{}) bool {
	ctx := req.Context()
	contextLogger := log.WithContext(ctx)

	if err := json.NewDecoder(req.Body).Decode(dest); err != nil {
		contextLogger.WithError(err).Error("Failed to parse request body")
		util.WithErrorAndStatus(fmt.Errorf("invalid request body"), http.StatusBadRequest, res)
		return false
	}
	if err := validate.Struct(dest); err != nil {
		util.WithBodyAndStatus(map[string]interface{}{"errors": validationMessages(err)}, http.StatusBadRequest, res)
		return false
	}
	return true
}

func validationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: failed %s validation", fieldError.Field(), fieldError.Tag()))
	}
	return messages
}

func employeeIDFromPath(req *http.Request, res http.ResponseWriter) (int, bool) {
	employeeID, err := strconv.Atoi(mux.Vars(req)["employeeID"])
	if err != nil {
		util.WithErrorAndStatus(fmt.Errorf("invalid employee id"), http.StatusBadRequest, res)
		return 0, false
	}
	return employeeID, true
}

func parsePeriod(start, end string) (schedule.Period, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return schedule.Period{}, fmt.Errorf("invalid period start %q: %w", start, err)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return schedule.Period{}, fmt.Errorf("invalid period end %q: %w", end, err)
	}
	if endDate.Before(startDate) {
		return schedule.Period{}, fmt.Errorf("period end %q precedes start %q", end, start)
	}
	return schedule.Period{Start: startDate, End: endDate}, nil
}

func respondError(res http.ResponseWriter, contextLogger *log.Entry, err error) {
	if errors.Is(err, hris.ErrSessionExpired) {
		contextLogger.Warn("session expired, forcing re-login")
		util.WithErrorAndStatus(err, http.StatusUnauthorized, res)
		return
	}
	contextLogger.WithError(err).Error("request failed")
	util.WithErrorAndStatus(err, http.StatusInternalServerError, res)
}
