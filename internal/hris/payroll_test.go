package hris

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_GetEarnings(t *testing.T) {
	tests := []struct {
		name    string
		want    *EarningsLine
		handler func(w http.ResponseWriter, r *http.Request)
		err     error
	}{
		{
			name: "200-employee-present",
			want: &EarningsLine{ID: 12, Employee: 5, Basic: "20000.00", Allowance: "1500.00"},
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/earnings", r.RequestURI)
				collection := []EarningsLine{
					{ID: 11, Employee: 4, Basic: "18000.00"},
					{ID: 12, Employee: 5, Basic: "20000.00", Allowance: "1500.00"},
				}
				c, err := json.Marshal(collection)
				require.NoError(t, err)
				w.Write(c)
			},
		},
		{
			name: "200-employee-absent",
			want: nil,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"id": 11, "employee": 4, "basic": "18000.00"}]`))
			},
		},
		{
			name: "500-backend-error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			err: errors.New("hris service (GetEarnings) returned status: 500 Internal Server Error "),
		},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(tt.handler))

			got, err := c.GetEarnings(context.Background(), 5)
			if tt.err != nil {
				require.EqualError(t, err, tt.err.Error())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClient_UpdateDeductions(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deductions/12", r.RequestURI)
		require.Equal(t, http.MethodPatch, r.Method)

		var body DeductionsLine
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "150.00", body.OvertimeOffset)

		w.Write([]byte(`{"id": 12, "employee": 5, "overtime_amount": "150.00"}`))
	}))

	got, err := c.UpdateDeductions(context.Background(), 12, DeductionsLine{Employee: 5, OvertimeOffset: "150.00"})
	require.NoError(t, err)
	require.Equal(t, "150.00", got.OvertimeOffset)
}

// The deduction-side overtime adjustment shares the overtime_amount wire name
// with the earnings-side rate; the decoder must keep them apart by type.
func TestDeductionsOvertimeOffsetWireName(t *testing.T) {
	raw, err := json.Marshal(DeductionsLine{OvertimeOffset: "99.00"})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"overtime_amount":"99.00"`)
}

func TestClient_CreateOvertimeTotalsKeepsBiweekStart(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/totalovertime", r.RequestURI)

		var body OvertimeTotals
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "2024-06-03", body.BiweekStart)

		w.Write([]byte(`{"id": 3, "employee": 5, "biweek_start": "2024-06-03"}`))
	}))

	got, err := c.CreateOvertimeTotals(context.Background(), OvertimeTotals{Employee: 5, BiweekStart: "2024-06-03"})
	require.NoError(t, err)
	require.Equal(t, 3, got.ID)
}

func TestClient_GetPayroll(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payroll", r.RequestURI)
		w.Write([]byte(`[{"id": 77, "employee": 5, "gross_pay": "21500.00", "status": "Processing"}]`))
	}))

	got, err := c.GetPayroll(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 77, got.ID)
	require.Equal(t, PayrollStatusProcessing, got.Status)
}
