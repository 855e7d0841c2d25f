// Package hris is the typed client for the HR backend REST API. Every piece
// of data the console shows or edits lives behind this API; the client owns
// bearer-token injection, JSON codec and the forced-logout path.
package hris

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamsayeed/payroll-console/internal/customhttp"
	"github.com/iamsayeed/payroll-console/internal/session"
)

// ErrSessionExpired is returned when the stored token's exp claim has
// lapsed or the backend rejects the bearer token with its token_not_valid
// marker. The session store has already been cleared by the time callers
// see this.
var ErrSessionExpired = errors.New("session expired: token_not_valid")

const tokenNotValidMarker = "token_not_valid"

type ClientInterface interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	GetEmployee(ctx context.Context, employeeID int) (*Employee, error)

	GetEarnings(ctx context.Context, employeeID int) (*EarningsLine, error)
	CreateEarnings(ctx context.Context, line EarningsLine) (*EarningsLine, error)
	UpdateEarnings(ctx context.Context, id int, line EarningsLine) (*EarningsLine, error)

	GetDeductions(ctx context.Context, employeeID int) (*DeductionsLine, error)
	CreateDeductions(ctx context.Context, line DeductionsLine) (*DeductionsLine, error)
	UpdateDeductions(ctx context.Context, id int, line DeductionsLine) (*DeductionsLine, error)

	GetOvertimeTotals(ctx context.Context, employeeID int) (*OvertimeTotals, error)
	CreateOvertimeTotals(ctx context.Context, totals OvertimeTotals) (*OvertimeTotals, error)
	UpdateOvertimeTotals(ctx context.Context, id int, totals OvertimeTotals) (*OvertimeTotals, error)

	GetSalary(ctx context.Context, employeeID int) (*SalaryRecord, error)
	GetPayroll(ctx context.Context, employeeID int) (*PayrollRecord, error)
	CreatePayroll(ctx context.Context, record PayrollRecord) (*PayrollRecord, error)
	UpdatePayroll(ctx context.Context, id int, record PayrollRecord) (*PayrollRecord, error)

	GetSchedule(ctx context.Context, employeeID int) (*ScheduleRecord, error)
	CreateSchedule(ctx context.Context, record ScheduleRecord) (*ScheduleRecord, error)
	UpdateScheduleShifts(ctx context.Context, scheduleID int, delta ScheduleShiftDelta) error
	GetShift(ctx context.Context, shiftID int) (*Shift, error)
	CreateShift(ctx context.Context, shift Shift) (*Shift, error)
	BatchDeleteShifts(ctx context.Context, shiftIDs []int) error

	GetAttendance(ctx context.Context, employeeID int) ([]AttendanceRecord, error)
	GetOvertimeHours(ctx context.Context, employeeID int) ([]OvertimeHoursRecord, error)
	GetBiometricData(ctx context.Context, employeeID int) ([]BiometricRecord, error)
	GetBenefits(ctx context.Context, employeeID int) (*Benefits, error)

	GetHolidays(ctx context.Context) ([]Holiday, error)
	GetPayrollPeriods(ctx context.Context) ([]PayrollPeriod, error)

	GetPayslipsForUser(ctx context.Context, userID int) ([]Payslip, error)

	GetActivityLog(ctx context.Context, query ActivityLogQuery) (*ActivityLogPage, error)
	DeleteActivityLogByDate(ctx context.Context, date string) error
}

func NewClient(endpoint string, c customhttp.HTTPCommand, store *session.Store) *client {
	return &client{
		URL:         strings.TrimRight(endpoint, "/"),
		HTTPCommand: c,
		Session:     store,
	}
}

type client struct {
	URL         string
	HTTPCommand customhttp.HTTPCommand
	Session     *session.Store
}

type idempotencyKeyCtx struct{}

// WithIdempotencyKey stamps mutating requests issued under ctx with an
// Idempotency-Key header so a rapid double-submit cannot create two records.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// IdempotencyKeyFromContext returns the key set by WithIdempotencyKey.
func IdempotencyKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, ok && key != ""
}

// do issues one request against the backend and decodes the JSON response
// into out when out is non-nil. A nil body makes a bodyless request. The op
// name only feeds error and log messages.
func (c *client) do(ctx context.Context, op, method, url string, body interface{}, out interface{}) error {
	contextLogger := log.WithContext(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(payload)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	httpRequest.Header.Set("Accept", "application/json")
	if key, ok := IdempotencyKeyFromContext(ctx); ok {
		httpRequest.Header.Set("Idempotency-Key", key)
	}

	sess, err := c.Session.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		contextLogger.WithError(err).Errorf("Error loading the session")
		return err
	}
	if sess != nil {
		// A token that is already expired locally would only buy a 401
		// round trip; clear the session here instead.
		if sess.Expired(time.Now()) {
			contextLogger.Warn("stored access token has expired, clearing session")
			if clearErr := c.Session.Clear(); clearErr != nil {
				contextLogger.WithError(clearErr).Error("failed to clear the session store")
			}
			return ErrSessionExpired
		}
		httpRequest.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.HTTPCommand.Do(httpRequest)
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the hris %s API. %v", op, err)
		return err
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Error("Error when closing response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Errorf("error reading hris API data resp body (%s)", respBody)
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && strings.Contains(string(respBody), tokenNotValidMarker) {
		contextLogger.Warn("backend reported token_not_valid, clearing session")
		if clearErr := c.Session.Clear(); clearErr != nil {
			contextLogger.WithError(clearErr).Error("failed to clear the session store")
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		contextLogger.Infof("status returned from hris service %s ", resp.Status)
		return fmt.Errorf("hris service (%s) returned status: %s ", op, resp.Status)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		contextLogger.WithError(err).Errorf("there was an error un marshalling the hris API resp. %v", err)
		return err
	}
	return nil
}

func (c *client) GetEmployee(ctx context.Context, employeeID int) (*Employee, error) {
	response := &Employee{}
	url := fmt.Sprintf("%s/employment-info/%d", c.URL, employeeID)
	if err := c.do(ctx, "GetEmployee", http.MethodGet, url, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}
