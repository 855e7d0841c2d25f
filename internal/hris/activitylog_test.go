package hris

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_GetActivityLog(t *testing.T) {
	tests := []struct {
		name    string
		query   ActivityLogQuery
		wantURI string
	}{
		{
			name:    "defaults-omit-empty-params",
			query:   ActivityLogQuery{},
			wantURI: "/activity-log",
		},
		{
			name:    "page-and-size",
			query:   ActivityLogQuery{Page: 2, PageSize: 20},
			wantURI: "/activity-log?page=2&page_size=20",
		},
		{
			name:    "module-and-type-filters",
			query:   ActivityLogQuery{Page: 1, PageSize: 20, Module: "payroll", Type: ActivityUpdate},
			wantURI: "/activity-log?module=payroll&page=1&page_size=20&type=UPDATE",
		},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tt.wantURI, r.RequestURI)
				w.Write([]byte(`{
					"count": 41,
					"results": [
						{"id": 1, "module": "payroll", "type": "UPDATE", "datetime": "2024-06-10T08:00:00Z",
						 "user": "admin@example.com", "changes": {"gross_pay": ["21000.00", "21500.00"]}}
					]
				}`))
			}))

			page, err := c.GetActivityLog(context.Background(), tt.query)
			require.NoError(t, err)
			require.Equal(t, 41, page.Count)
			require.Len(t, page.Results, 1)
			require.Equal(t, []string{"21000.00", "21500.00"}, page.Results[0].Changes["gross_pay"])
		})
	}
}

func TestClient_DeleteActivityLogByDate(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activity-log/delete_by_date", r.RequestURI)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "2024-06-10", body["date"])

		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.DeleteActivityLogByDate(context.Background(), "2024-06-10")
	require.NoError(t, err)
}
