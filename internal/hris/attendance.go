package hris

import (
	"context"
	"net/http"
)

func (c *client) GetAttendance(ctx context.Context, employeeID int) ([]AttendanceRecord, error) {
	var collection []AttendanceRecord
	if err := c.do(ctx, "GetAttendance", http.MethodGet, c.URL+"/attendance", nil, &collection); err != nil {
		return nil, err
	}
	return filterByEmployee(collection, employeeID, func(r AttendanceRecord) int { return r.Employee }), nil
}

func (c *client) GetOvertimeHours(ctx context.Context, employeeID int) ([]OvertimeHoursRecord, error) {
	var collection []OvertimeHoursRecord
	if err := c.do(ctx, "GetOvertimeHours", http.MethodGet, c.URL+"/overtimehours", nil, &collection); err != nil {
		return nil, err
	}
	return filterByEmployee(collection, employeeID, func(r OvertimeHoursRecord) int { return r.Employee }), nil
}

func (c *client) GetBiometricData(ctx context.Context, employeeID int) ([]BiometricRecord, error) {
	var collection []BiometricRecord
	if err := c.do(ctx, "GetBiometricData", http.MethodGet, c.URL+"/biometricdata", nil, &collection); err != nil {
		return nil, err
	}
	return filterByEmployee(collection, employeeID, func(r BiometricRecord) int { return r.Employee }), nil
}

func filterByEmployee[T any](collection []T, employeeID int, owner func(T) int) []T {
	var filtered []T
	for _, record := range collection {
		if owner(record) == employeeID {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
