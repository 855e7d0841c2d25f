package hris

import (
	"context"
	"net/http"
)

func (c *client) GetHolidays(ctx context.Context) ([]Holiday, error) {
	var collection []Holiday
	url := c.URL + "/master-calendar/holidays"
	if err := c.do(ctx, "GetHolidays", http.MethodGet, url, nil, &collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (c *client) GetPayrollPeriods(ctx context.Context) ([]PayrollPeriod, error) {
	var collection []PayrollPeriod
	url := c.URL + "/master-calendar/payrollperiod"
	if err := c.do(ctx, "GetPayrollPeriods", http.MethodGet, url, nil, &collection); err != nil {
		return nil, err
	}
	return collection, nil
}
