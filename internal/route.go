package internal

import (
	"net/http"

	"github.com/iamsayeed/payroll-console/internal/activitylog"
	"github.com/iamsayeed/payroll-console/internal/config"
	"github.com/iamsayeed/payroll-console/internal/hris"
	"github.com/iamsayeed/payroll-console/internal/payroll"
	"github.com/iamsayeed/payroll-console/internal/payslip"
	"github.com/iamsayeed/payroll-console/internal/report"
	"github.com/iamsayeed/payroll-console/internal/schedule"
)

// Routes wires every console endpoint under the versioned base path.
func Routes(client hris.ClientInterface, synchronizer *payroll.Synchronizer, generator *schedule.Generator,
	payslips *payslip.Service, logs *activitylog.Service, mailer *report.Mailer) []config.Route {
	return []config.Route{
		{
			Path:    "/auth/login",
			Method:  http.MethodPost,
			Handler: LoginHandler(client),
		},
		{
			Path:    "/payroll/{employeeID}",
			Method:  http.MethodPost,
			Handler: SavePayrollHandler(synchronizer, mailer),
		},
		{
			Path:    "/schedule/{employeeID}/shifts",
			Method:  http.MethodPost,
			Handler: GenerateShiftsHandler(generator),
		},
		{
			Path:    "/schedule/{employeeID}/shifts",
			Method:  http.MethodDelete,
			Handler: RemoveShiftsHandler(generator),
		},
		{
			Path:    "/calendar/{employeeID}",
			Method:  http.MethodGet,
			Handler: CalendarMonthHandler(client),
		},
		{
			Path:    "/employees/{employeeID}/benefits",
			Method:  http.MethodGet,
			Handler: BenefitsHandler(client),
		},
		{
			Path:    "/employees/{employeeID}/biometrics",
			Method:  http.MethodGet,
			Handler: BiometricsHandler(client),
		},
		{
			Path:    "/master-calendar/periods",
			Method:  http.MethodGet,
			Handler: PayrollPeriodsHandler(client),
		},
		{
			Path:    "/payslips/{employeeID}",
			Method:  http.MethodGet,
			Handler: ListPayslipsHandler(payslips),
		},
		{
			Path:    "/payslips/{employeeID}/{payslipID}/pdf",
			Method:  http.MethodGet,
			Handler: PayslipPDFHandler(payslips),
		},
		{
			Path:    "/payslips/{employeeID}/export",
			Method:  http.MethodGet,
			Handler: PayslipExportHandler(payslips),
		},
		{
			Path:    "/activity-log",
			Method:  http.MethodGet,
			Handler: ActivityLogHandler(logs),
		},
		{
			Path:    "/activity-log/{date}",
			Method:  http.MethodDelete,
			Handler: ActivityLogDeleteHandler(logs),
		},
		{
			Path:    "/activity-log/export",
			Method:  http.MethodGet,
			Handler: ActivityLogExportHandler(logs),
		},
	}
}
