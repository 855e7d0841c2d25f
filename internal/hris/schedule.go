package hris

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (c *client) GetSchedule(ctx context.Context, employeeID int) (*ScheduleRecord, error) {
	var collection []ScheduleRecord
	if err := c.do(ctx, "GetSchedule", http.MethodGet, c.URL+"/schedule", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) CreateSchedule(ctx context.Context, record ScheduleRecord) (*ScheduleRecord, error) {
	log.WithContext(ctx).Info("Creating schedule for employee: ", record.Employee)
	response := &ScheduleRecord{}
	if err := c.do(ctx, "CreateSchedule", http.MethodPost, c.URL+"/schedule", record, response); err != nil {
		return nil, err
	}
	return response, nil
}

// UpdateScheduleShifts PATCHes shift-ID deltas onto an existing schedule via
// the backend's add-shifts sub-action. Creation goes through CreateSchedule
// with the full shift_ids list instead; the asymmetry is the backend contract.
func (c *client) UpdateScheduleShifts(ctx context.Context, scheduleID int, delta ScheduleShiftDelta) error {
	url := fmt.Sprintf("%s/schedule/%d/add-shifts", c.URL, scheduleID)
	return c.do(ctx, "UpdateScheduleShifts", http.MethodPatch, url, delta, nil)
}

func (c *client) GetShift(ctx context.Context, shiftID int) (*Shift, error) {
	response := &Shift{}
	url := fmt.Sprintf("%s/shift/%d", c.URL, shiftID)
	if err := c.do(ctx, "GetShift", http.MethodGet, url, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) CreateShift(ctx context.Context, shift Shift) (*Shift, error) {
	response := &Shift{}
	if err := c.do(ctx, "CreateShift", http.MethodPost, c.URL+"/shift", shift, response); err != nil {
		return nil, err
	}
	return response, nil
}

type batchDeleteRequest struct {
	ShiftIDs []int `json:"shift_ids"`
}

// BatchDeleteShifts removes a set of shifts through the bulk endpoint.
// Callers chunk the IDs; the backend caps a batch at 10.
func (c *client) BatchDeleteShifts(ctx context.Context, shiftIDs []int) error {
	if len(shiftIDs) == 0 {
		return nil
	}
	url := c.URL + "/schedule/shifts/batch-delete"
	return c.do(ctx, "BatchDeleteShifts", http.MethodPost, url, batchDeleteRequest{ShiftIDs: shiftIDs}, nil)
}
