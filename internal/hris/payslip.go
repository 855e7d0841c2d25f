package hris

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (c *client) GetPayslipsForUser(ctx context.Context, userID int) ([]Payslip, error) {
	log.WithContext(ctx).Info("Fetching payslips for user: ", userID)
	var collection []Payslip
	url := fmt.Sprintf("%s/payslip/user-all/%d", c.URL, userID)
	if err := c.do(ctx, "GetPayslipsForUser", http.MethodGet, url, nil, &collection); err != nil {
		return nil, err
	}
	return collection, nil
}
