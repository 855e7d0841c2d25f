package hris

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ActivityLogQuery struct {
	Page     int
	PageSize int
	Module   string
	Type     string
}

func (c *client) GetActivityLog(ctx context.Context, query ActivityLogQuery) (*ActivityLogPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if query.Module != "" {
		params.Set("module", query.Module)
	}
	if query.Type != "" {
		params.Set("type", query.Type)
	}

	endpoint := c.URL + "/activity-log"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	response := &ActivityLogPage{}
	if err := c.do(ctx, "GetActivityLog", http.MethodGet, endpoint, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

type deleteByDateRequest struct {
	Date string `json:"date"`
}

func (c *client) DeleteActivityLogByDate(ctx context.Context, date string) error {
	log.WithContext(ctx).Info("Deleting activity log entries for date: ", date)
	url := c.URL + "/activity-log/delete_by_date"
	return c.do(ctx, "DeleteActivityLogByDate", http.MethodPost, url, deleteByDateRequest{Date: date}, nil)
}
