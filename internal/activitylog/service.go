// Package activitylog reads and prunes the backend's append-only audit trail.
package activitylog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"

	"github.com/iamsayeed/payroll-console/internal/hris"
)

const (
	dateLayout      = "2006-01-02"
	defaultPageSize = 20
	exportPageSize  = 100
)

type Service struct {
	client    hris.ClientInterface
	outputDir string
}

func NewService(client hris.ClientInterface, outputDir string) *Service {
	return &Service{client: client, outputDir: outputDir}
}

// List returns one page of the audit trail, optionally filtered by module
// and entry type.
func (s *Service) List(ctx context.Context, query hris.ActivityLogQuery) (*hris.ActivityLogPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = defaultPageSize
	}
	return s.client.GetActivityLog(ctx, query)
}

// DeleteByDate removes every entry recorded on the given date.
func (s *Service) DeleteByDate(ctx context.Context, date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return s.client.DeleteActivityLogByDate(ctx, date)
}

// ExportWorkbook pages through the whole filtered trail and writes it to one
// xlsx sheet, returning the file path.
func (s *Service) ExportWorkbook(ctx context.Context, query hris.ActivityLogQuery) (string, error) {
	ctxLogger := log.WithContext(ctx)

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.outputDir, exportFileName(query))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Activity Log")
	if err != nil {
		return "", err
	}

	header := sheet.AddRow()
	for _, title := range []string{"Module", "Type", "Datetime", "User", "Changes"} {
		header.AddCell().Value = title
	}

	query.PageSize = exportPageSize
	for page := 1; ; page++ {
		query.Page = page
		result, err := s.client.GetActivityLog(ctx, query)
		if err != nil {
			return "", err
		}
		for _, entry := range result.Results {
			row := sheet.AddRow()
			row.AddCell().Value = entry.Module
			row.AddCell().Value = entry.Type
			row.AddCell().Value = entry.Datetime
			row.AddCell().Value = entry.User
			row.AddCell().Value = formatChanges(entry.Changes)
		}
		if page*exportPageSize >= result.Count || len(result.Results) == 0 {
			break
		}
	}

	if err := file.Save(filePath); err != nil {
		ctxLogger.WithError(err).Error("Failed to save activity log workbook")
		return "", err
	}
	return filePath, nil
}

// exportFileName names the workbook after the active filter with a per-export
// suffix. Two overlapping exports must never share a file.
func exportFileName(query hris.ActivityLogQuery) string {
	parts := []string{"activity-log"}
	if query.Module != "" {
		parts = append(parts, query.Module)
	}
	if query.Type != "" {
		parts = append(parts, strings.ToLower(query.Type))
	}
	parts = append(parts, uuid.NewString())
	return strings.Join(parts, "-") + ".xlsx"
}

// formatChanges renders the field -> [old, new] mapping one field per line.
func formatChanges(changes map[string][]string) string {
	var lines []string
	for field, values := range changes {
		switch len(values) {
		case 2:
			lines = append(lines, fmt.Sprintf("%s: %s -> %s", field, values[0], values[1]))
		case 1:
			lines = append(lines, fmt.Sprintf("%s: %s", field, values[0]))
		default:
			lines = append(lines, field)
		}
	}
	return strings.Join(lines, "\n")
}
