// Package payslip materializes payslip artifacts (PDF and workbook) from the
// backend's payslip records.
package payslip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/iamsayeed/payroll-console/internal/hris"
)

const dirPerm = 0o755

type Service struct {
	client    hris.ClientInterface
	outputDir string
}

func NewService(client hris.ClientInterface, outputDir string) *Service {
	return &Service{client: client, outputDir: outputDir}
}

// ListForEmployee returns every payslip of the employee's user account.
func (s *Service) ListForEmployee(ctx context.Context, employeeID int) ([]hris.Payslip, error) {
	employee, err := s.client.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.client.GetPayslipsForUser(ctx, employee.UserID)
}

// GeneratePDF renders one payslip to a PDF file and returns its path.
func (s *Service) GeneratePDF(ctx context.Context, employeeID, payslipID int) (string, error) {
	ctxLogger := log.WithContext(ctx)

	employee, err := s.client.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}
	slip, err := s.findPayslip(ctx, employee.UserID, payslipID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, dirPerm); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.outputDir, fmt.Sprintf("payslip-%d.pdf", slip.ID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s", employee.FirstName, employee.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", employee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", slip.PeriodStart, slip.PeriodEnd))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", slip.GrossPay))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", slip.TotalDeductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", slip.NetPay))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", slip.Status))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		ctxLogger.WithError(err).Error("Failed to write payslip PDF")
		return "", err
	}
	return filePath, nil
}

// ExportWorkbook writes every payslip of the employee into one xlsx sheet and
// returns the file path.
func (s *Service) ExportWorkbook(ctx context.Context, employeeID int) (string, error) {
	ctxLogger := log.WithContext(ctx)

	employee, err := s.client.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}
	slips, err := s.client.GetPayslipsForUser(ctx, employee.UserID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, dirPerm); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.outputDir, fmt.Sprintf("payslips-%d.xlsx", employeeID))

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	_ = f.SetColWidth(sheet, "A", "F", 20)

	headers := []string{"Period Start", "Period End", "Gross Pay", "Total Deductions", "Net Pay", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			ctxLogger.WithError(err).Error("Unable to write workbook header")
			return "", err
		}
	}

	for rowIdx, slip := range slips {
		values := []interface{}{slip.PeriodStart, slip.PeriodEnd, slip.GrossPay, slip.TotalDeductions, slip.NetPay, slip.Status}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				ctxLogger.WithError(err).Error("Unable to write workbook row")
				return "", err
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		ctxLogger.WithError(err).Error("Failed to save payslip workbook")
		return "", err
	}
	return filePath, nil
}

func (s *Service) findPayslip(ctx context.Context, userID, payslipID int) (*hris.Payslip, error) {
	slips, err := s.client.GetPayslipsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range slips {
		if slips[i].ID == payslipID {
			return &slips[i], nil
		}
	}
	return nil, fmt.Errorf("payslip %d not found for user %d", payslipID, userID)
}
