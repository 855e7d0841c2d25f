package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iamsayeed/payroll-console/internal/hris"
)

// MockHrisClient implements the client methods the synchronizer touches; the
// embedded interface panics on anything unexpected.
type MockHrisClient struct {
	mock.Mock
	hris.ClientInterface
}

func (m *MockHrisClient) GetEarnings(ctx context.Context, employeeID int) (*hris.EarningsLine, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.EarningsLine), args.Error(1)
}

func (m *MockHrisClient) CreateEarnings(ctx context.Context, line hris.EarningsLine) (*hris.EarningsLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.EarningsLine), args.Error(1)
}

func (m *MockHrisClient) UpdateEarnings(ctx context.Context, id int, line hris.EarningsLine) (*hris.EarningsLine, error) {
	args := m.Called(ctx, id, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.EarningsLine), args.Error(1)
}

func (m *MockHrisClient) GetDeductions(ctx context.Context, employeeID int) (*hris.DeductionsLine, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.DeductionsLine), args.Error(1)
}

func (m *MockHrisClient) CreateDeductions(ctx context.Context, line hris.DeductionsLine) (*hris.DeductionsLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.DeductionsLine), args.Error(1)
}

func (m *MockHrisClient) UpdateDeductions(ctx context.Context, id int, line hris.DeductionsLine) (*hris.DeductionsLine, error) {
	args := m.Called(ctx, id, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.DeductionsLine), args.Error(1)
}

func (m *MockHrisClient) GetOvertimeTotals(ctx context.Context, employeeID int) (*hris.OvertimeTotals, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.OvertimeTotals), args.Error(1)
}

func (m *MockHrisClient) CreateOvertimeTotals(ctx context.Context, totals hris.OvertimeTotals) (*hris.OvertimeTotals, error) {
	args := m.Called(ctx, totals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.OvertimeTotals), args.Error(1)
}

func (m *MockHrisClient) UpdateOvertimeTotals(ctx context.Context, id int, totals hris.OvertimeTotals) (*hris.OvertimeTotals, error) {
	args := m.Called(ctx, id, totals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.OvertimeTotals), args.Error(1)
}

func (m *MockHrisClient) GetSalary(ctx context.Context, employeeID int) (*hris.SalaryRecord, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.SalaryRecord), args.Error(1)
}

func (m *MockHrisClient) GetSchedule(ctx context.Context, employeeID int) (*hris.ScheduleRecord, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.ScheduleRecord), args.Error(1)
}

func (m *MockHrisClient) GetPayroll(ctx context.Context, employeeID int) (*hris.PayrollRecord, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.PayrollRecord), args.Error(1)
}

func (m *MockHrisClient) CreatePayroll(ctx context.Context, record hris.PayrollRecord) (*hris.PayrollRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.PayrollRecord), args.Error(1)
}

func (m *MockHrisClient) UpdatePayroll(ctx context.Context, id int, record hris.PayrollRecord) (*hris.PayrollRecord, error) {
	args := m.Called(ctx, id, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hris.PayrollRecord), args.Error(1)
}

func anyCtx() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
}

func draftFixture() Draft {
	return Draft{
		Earnings:           hris.EarningsLine{Basic: "20000.00", Allowance: "1000"},
		Overtime:           hris.OvertimeTotals{RegularOTRate: "500"},
		Deductions:         hris.DeductionsLine{SSSAmount: "200.00", WithholdingTax: "150"},
		PayDate:            "2024-06-16",
		PayrollPeriodStart: "2024-06-03",
	}
}

func TestSavePayrollCreatesMissingRecords(t *testing.T) {
	mockClient := new(MockHrisClient)
	employeeID := 7

	mockClient.On("GetEarnings", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetDeductions", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetOvertimeTotals", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetSalary", anyCtx(), employeeID).Return(&hris.SalaryRecord{ID: 31, Employee: employeeID}, nil)
	mockClient.On("GetSchedule", anyCtx(), employeeID).Return(&hris.ScheduleRecord{ID: 44, Employee: employeeID}, nil)
	mockClient.On("GetPayroll", anyCtx(), employeeID).Return(nil, nil)

	mockClient.On("CreateEarnings", anyCtx(), mock.Anything).Return(&hris.EarningsLine{ID: 1}, nil)
	mockClient.On("CreateDeductions", anyCtx(), mock.Anything).Return(&hris.DeductionsLine{ID: 2}, nil)
	mockClient.On("CreateOvertimeTotals", anyCtx(), mock.MatchedBy(func(totals hris.OvertimeTotals) bool {
		return totals.BiweekStart == "2024-06-03"
	})).Return(&hris.OvertimeTotals{ID: 3}, nil)
	mockClient.On("CreatePayroll", anyCtx(), mock.MatchedBy(func(record hris.PayrollRecord) bool {
		return record.Status == hris.PayrollStatusProcessing &&
			record.GrossPay == "21500.00" &&
			record.TotalDeductions == "350.00" &&
			record.NetPay == "21150.00" &&
			record.Salary == 31 &&
			record.Schedule == 44
	})).Return(&hris.PayrollRecord{ID: 9, Status: hris.PayrollStatusProcessing}, nil)

	synchronizer := NewSynchronizer(mockClient, PolicyBestEffort)
	outcome, err := synchronizer.SavePayroll(context.Background(), employeeID, draftFixture())

	require.NoError(t, err)
	assert.Empty(t, outcome.FailedSteps())
	assert.Equal(t, hris.PayrollStatusProcessing, outcome.Status)
	assert.Equal(t, "21150.00", outcome.Totals.TotalSalaryCompensation)
	require.NotNil(t, outcome.Payroll)
	assert.Equal(t, 9, outcome.Payroll.ID)
	mockClient.AssertExpectations(t)
}

func TestSavePayrollPatchesKnownRecords(t *testing.T) {
	mockClient := new(MockHrisClient)
	employeeID := 7

	mockClient.On("GetEarnings", anyCtx(), employeeID).Return(&hris.EarningsLine{ID: 11, Employee: employeeID}, nil)
	mockClient.On("GetDeductions", anyCtx(), employeeID).Return(&hris.DeductionsLine{ID: 12, Employee: employeeID}, nil)
	mockClient.On("GetOvertimeTotals", anyCtx(), employeeID).Return(&hris.OvertimeTotals{ID: 13, Employee: employeeID}, nil)
	mockClient.On("GetSalary", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetSchedule", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetPayroll", anyCtx(), employeeID).Return(&hris.PayrollRecord{ID: 14, Employee: employeeID}, nil)

	mockClient.On("UpdateEarnings", anyCtx(), 11, mock.Anything).Return(&hris.EarningsLine{ID: 11}, nil)
	mockClient.On("UpdateDeductions", anyCtx(), 12, mock.Anything).Return(&hris.DeductionsLine{ID: 12}, nil)
	mockClient.On("UpdateOvertimeTotals", anyCtx(), 13, mock.Anything).Return(&hris.OvertimeTotals{ID: 13}, nil)
	mockClient.On("UpdatePayroll", anyCtx(), 14, mock.Anything).Return(&hris.PayrollRecord{ID: 14, Status: hris.PayrollStatusProcessing}, nil)

	synchronizer := NewSynchronizer(mockClient, PolicyBestEffort)
	outcome, err := synchronizer.SavePayroll(context.Background(), employeeID, draftFixture())

	require.NoError(t, err)
	assert.Empty(t, outcome.FailedSteps())
	mockClient.AssertNotCalled(t, "CreateEarnings", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "CreatePayroll", mock.Anything, mock.Anything)
	mockClient.AssertExpectations(t)
}

func TestSavePayrollBestEffortContinuesPastFailures(t *testing.T) {
	mockClient := new(MockHrisClient)
	employeeID := 7
	boom := errors.New("backend unavailable")

	mockClient.On("GetEarnings", anyCtx(), employeeID).Return(nil, boom)
	mockClient.On("GetDeductions", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetOvertimeTotals", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetSalary", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetSchedule", anyCtx(), employeeID).Return(nil, nil)
	mockClient.On("GetPayroll", anyCtx(), employeeID).Return(nil, nil)

	mockClient.On("CreateDeductions", anyCtx(), mock.Anything).Return(&hris.DeductionsLine{ID: 2}, nil)
	mockClient.On("CreateOvertimeTotals", anyCtx(), mock.Anything).Return(&hris.OvertimeTotals{ID: 3}, nil)
	mockClient.On("CreatePayroll", anyCtx(), mock.Anything).Return(&hris.PayrollRecord{ID: 9}, nil)

	synchronizer := NewSynchronizer(mockClient, PolicyBestEffort)
	outcome, err := synchronizer.SavePayroll(context.Background(), employeeID, draftFixture())

	require.NoError(t, err)
	require.Len(t, outcome.FailedSteps(), 1)
	assert.Equal(t, "earnings", outcome.FailedSteps()[0].Step)
	assert.Len(t, outcome.Steps, 4)
	mockClient.AssertCalled(t, "CreatePayroll", mock.Anything, mock.Anything)
}

func TestSavePayrollFailFastStopsAtFirstFailure(t *testing.T) {
	mockClient := new(MockHrisClient)
	employeeID := 7
	boom := errors.New("backend unavailable")

	mockClient.On("GetEarnings", anyCtx(), employeeID).Return(nil, boom)

	synchronizer := NewSynchronizer(mockClient, PolicyFailFast)
	outcome, err := synchronizer.SavePayroll(context.Background(), employeeID, draftFixture())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, outcome.Steps, 1)
	mockClient.AssertNotCalled(t, "GetDeductions", mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "CreatePayroll", mock.Anything, mock.Anything)
}

func TestSavePayrollStampsOneIdempotencyKeyPerRun(t *testing.T) {
	mockClient := new(MockHrisClient)
	employeeID := 7
	var seen []string
	keyCapturingCtx := mock.MatchedBy(func(ctx context.Context) bool {
		key, ok := hris.IdempotencyKeyFromContext(ctx)
		if ok {
			seen = append(seen, key)
		}
		return ok
	})

	mockClient.On("GetEarnings", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("GetDeductions", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("GetOvertimeTotals", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("GetSalary", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("GetSchedule", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("GetPayroll", keyCapturingCtx, employeeID).Return(nil, nil)
	mockClient.On("CreateEarnings", mock.Anything, mock.Anything).Return(&hris.EarningsLine{ID: 1}, nil)
	mockClient.On("CreateDeductions", mock.Anything, mock.Anything).Return(&hris.DeductionsLine{ID: 2}, nil)
	mockClient.On("CreateOvertimeTotals", mock.Anything, mock.Anything).Return(&hris.OvertimeTotals{ID: 3}, nil)
	mockClient.On("CreatePayroll", mock.Anything, mock.Anything).Return(&hris.PayrollRecord{ID: 9}, nil)

	synchronizer := NewSynchronizer(mockClient, PolicyBestEffort)
	_, err := synchronizer.SavePayroll(context.Background(), employeeID, draftFixture())

	require.NoError(t, err)
	require.NotEmpty(t, seen)
	for _, key := range seen {
		assert.Equal(t, seen[0], key)
	}
}
