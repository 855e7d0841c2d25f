package hris

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_UpdateScheduleShiftsSendsDelta(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule/1/add-shifts", r.RequestURI)
		require.Equal(t, http.MethodPatch, r.Method)

		var body map[string][]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []int{101, 102}, body["add_shift_ids"])
		require.NotContains(t, body, "remove_shift_ids")

		w.WriteHeader(http.StatusOK)
	}))

	err := c.UpdateScheduleShifts(context.Background(), 1, ScheduleShiftDelta{AddShiftIDs: []int{101, 102}})
	require.NoError(t, err)
}

func TestClient_UpdateScheduleShiftsRemoveDelta(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []int{101}, body["remove_shift_ids"])
		require.NotContains(t, body, "add_shift_ids")

		w.WriteHeader(http.StatusOK)
	}))

	err := c.UpdateScheduleShifts(context.Background(), 1, ScheduleShiftDelta{RemoveShiftIDs: []int{101}})
	require.NoError(t, err)
}

func TestClient_BatchDeleteShifts(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule/shifts/batch-delete", r.RequestURI)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string][]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []int{101, 102, 103}, body["shift_ids"])

		w.WriteHeader(http.StatusOK)
	}))

	err := c.BatchDeleteShifts(context.Background(), []int{101, 102, 103})
	require.NoError(t, err)
}

func TestClient_BatchDeleteShiftsEmptyIsNoop(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty batch")
	}))

	err := c.BatchDeleteShifts(context.Background(), nil)
	require.NoError(t, err)
}

func TestClient_GetScheduleFiltersByEmployee(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule", r.RequestURI)
		w.Write([]byte(`[
			{"id": 1, "employee": 4, "days": ["Tuesday"], "shift_ids": [9]},
			{"id": 2, "employee": 5, "days": ["Monday"], "shift_ids": [101, 102]}
		]`))
	}))

	got, err := c.GetSchedule(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 2, got.ID)
	require.Equal(t, []int{101, 102}, got.ShiftIDs)

	missing, err := c.GetSchedule(context.Background(), 6)
	require.NoError(t, err)
	require.Nil(t, missing)
}
