package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iamsayeed/payroll-console/internal/payroll"
)

func TestReportAttachmentPathIsUniquePerRun(t *testing.T) {
	first := reportAttachmentPath("/tmp", 5)
	second := reportAttachmentPath("/tmp", 5)

	require.NotEqual(t, first, second)
	require.True(t, strings.HasPrefix(filepath.Base(first), "payroll-save-report-5-"))
	require.True(t, strings.HasSuffix(first, ".xlsx"))
}

func TestWriteOutcomeToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	outcome := &payroll.Outcome{
		Steps: []payroll.StepResult{
			{Step: "earnings"},
			{Step: "payroll", Err: errors.New("backend unavailable")},
		},
	}

	require.NoError(t, writeOutcomeToExcel(path, 5, outcome))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	step, err := f.GetCellValue(sheet, "A3")
	require.NoError(t, err)
	require.Equal(t, "payroll", step)

	result, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	require.Equal(t, "backend unavailable", result)

	ok, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "ok", ok)
}

func TestMailerEnabled(t *testing.T) {
	require.False(t, NewMailer(nil, "", "noreply@example.com", "/tmp").Enabled())
	require.True(t, NewMailer(nil, "payroll@example.com", "noreply@example.com", "/tmp").Enabled())
}
