package hris

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// The earnings, deductions, totalovertime, salary and payroll collections
// return bare arrays with no pagination or server-side filtering, so each
// lookup fetches the collection and filters by employee here.

func (c *client) GetEarnings(ctx context.Context, employeeID int) (*EarningsLine, error) {
	var collection []EarningsLine
	if err := c.do(ctx, "GetEarnings", http.MethodGet, c.URL+"/earnings", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) CreateEarnings(ctx context.Context, line EarningsLine) (*EarningsLine, error) {
	log.WithContext(ctx).Info("Creating earnings record for employee: ", line.Employee)
	response := &EarningsLine{}
	if err := c.do(ctx, "CreateEarnings", http.MethodPost, c.URL+"/earnings", line, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) UpdateEarnings(ctx context.Context, id int, line EarningsLine) (*EarningsLine, error) {
	response := &EarningsLine{}
	url := fmt.Sprintf("%s/earnings/%d", c.URL, id)
	if err := c.do(ctx, "UpdateEarnings", http.MethodPatch, url, line, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) GetDeductions(ctx context.Context, employeeID int) (*DeductionsLine, error) {
	var collection []DeductionsLine
	if err := c.do(ctx, "GetDeductions", http.MethodGet, c.URL+"/deductions", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) CreateDeductions(ctx context.Context, line DeductionsLine) (*DeductionsLine, error) {
	log.WithContext(ctx).Info("Creating deductions record for employee: ", line.Employee)
	response := &DeductionsLine{}
	if err := c.do(ctx, "CreateDeductions", http.MethodPost, c.URL+"/deductions", line, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) UpdateDeductions(ctx context.Context, id int, line DeductionsLine) (*DeductionsLine, error) {
	response := &DeductionsLine{}
	url := fmt.Sprintf("%s/deductions/%d", c.URL, id)
	if err := c.do(ctx, "UpdateDeductions", http.MethodPatch, url, line, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) GetOvertimeTotals(ctx context.Context, employeeID int) (*OvertimeTotals, error) {
	var collection []OvertimeTotals
	if err := c.do(ctx, "GetOvertimeTotals", http.MethodGet, c.URL+"/totalovertime", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) CreateOvertimeTotals(ctx context.Context, totals OvertimeTotals) (*OvertimeTotals, error) {
	log.WithContext(ctx).Info("Creating overtime totals record for employee: ", totals.Employee)
	response := &OvertimeTotals{}
	if err := c.do(ctx, "CreateOvertimeTotals", http.MethodPost, c.URL+"/totalovertime", totals, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) UpdateOvertimeTotals(ctx context.Context, id int, totals OvertimeTotals) (*OvertimeTotals, error) {
	response := &OvertimeTotals{}
	url := fmt.Sprintf("%s/totalovertime/%d", c.URL, id)
	if err := c.do(ctx, "UpdateOvertimeTotals", http.MethodPatch, url, totals, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) GetSalary(ctx context.Context, employeeID int) (*SalaryRecord, error) {
	var collection []SalaryRecord
	if err := c.do(ctx, "GetSalary", http.MethodGet, c.URL+"/salary", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) GetPayroll(ctx context.Context, employeeID int) (*PayrollRecord, error) {
	var collection []PayrollRecord
	if err := c.do(ctx, "GetPayroll", http.MethodGet, c.URL+"/payroll", nil, &collection); err != nil {
		return nil, err
	}
	for i := range collection {
		if collection[i].Employee == employeeID {
			return &collection[i], nil
		}
	}
	return nil, nil
}

func (c *client) CreatePayroll(ctx context.Context, record PayrollRecord) (*PayrollRecord, error) {
	log.WithContext(ctx).Info("Creating payroll record for employee: ", record.Employee)
	response := &PayrollRecord{}
	if err := c.do(ctx, "CreatePayroll", http.MethodPost, c.URL+"/payroll", record, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *client) UpdatePayroll(ctx context.Context, id int, record PayrollRecord) (*PayrollRecord, error) {
	response := &PayrollRecord{}
	url := fmt.Sprintf("%s/payroll/%d", c.URL, id)
	if err := c.do(ctx, "UpdatePayroll", http.MethodPatch, url, record, response); err != nil {
		return nil, err
	}
	return response, nil
}
