// Package report emails a summary after a payroll save run. Delivery is best
// effort: a failed report never fails the save it describes.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"

	"github.com/iamsayeed/payroll-console/internal/payroll"
)

type Mailer struct {
	emailClient *ses.SES
	emailTo     string
	emailFrom   string
	tmpDir      string
}

func NewMailer(emailClient *ses.SES, emailTo, emailFrom, tmpDir string) *Mailer {
	return &Mailer{
		emailClient: emailClient,
		emailTo:     emailTo,
		emailFrom:   emailFrom,
		tmpDir:      tmpDir,
	}
}

// Enabled reports whether a recipient is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.emailTo != ""
}

// SendPayrollSaveReport emails the step outcomes and totals of one save run
// with a workbook attachment listing each step.
func (m *Mailer) SendPayrollSaveReport(ctx context.Context, employeeID int, outcome *payroll.Outcome) {
	contextLogger := log.WithContext(ctx)

	attachFileName := reportAttachmentPath(m.tmpDir, employeeID)
	if err := writeOutcomeToExcel(attachFileName, employeeID, outcome); err != nil {
		contextLogger.WithError(err).Error("Error writing the report attachment")
		return
	}
	defer func() {
		_ = os.Remove(attachFileName)
	}()

	var failures []string
	for _, step := range outcome.FailedSteps() {
		failures = append(failures, fmt.Sprintf("%s: %v", step.Step, step.Err))
	}
	body := fmt.Sprintf("Payroll save for employee %d\nGross: %s\nDeductions: %s\nNet: %s\n",
		employeeID, outcome.Totals.TotalGross, outcome.Totals.TotalDeductions, outcome.Totals.TotalSalaryCompensation)
	if len(failures) == 0 {
		body += "No errors found during the save. Please check the attached report for the audit trail."
	} else {
		body += "Failed steps:\n" + strings.Join(failures, "\n")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.emailFrom)
	msg.SetHeader("To", m.emailTo)
	msg.SetHeader("Subject", "Report: Payroll Save")
	msg.SetBody("text/plain", body)
	msg.Attach(attachFileName)

	var emailRaw bytes.Buffer
	if _, err := msg.WriteTo(&emailRaw); err != nil {
		contextLogger.WithError(err).Error("Error when writing email data")
		return
	}

	message := ses.RawMessage{Data: emailRaw.Bytes()}
	emailParams := ses.SendRawEmailInput{
		Source:     aws.String(m.emailFrom),
		RawMessage: &message,
	}
	emailParams.SetDestinations(populateEmailRecipients(m.emailTo))

	if _, err := m.emailClient.SendRawEmail(&emailParams); err != nil {
		contextLogger.WithError(err).Error("Error when sending email")
		return
	}
	contextLogger.Info("Payroll save report sent")
}

// reportAttachmentPath returns a per-run workbook path. Concurrent save
// reports must not share an attachment file.
func reportAttachmentPath(tmpDir string, employeeID int) string {
	return filepath.Join(tmpDir, fmt.Sprintf("payroll-save-report-%d-%s.xlsx", employeeID, uuid.NewString()))
}

func populateEmailRecipients(emailTo string) []*string {
	var emailRecipients []*string
	for _, recipient := range strings.Split(emailTo, ",") {
		emailRecipients = append(emailRecipients, aws.String(recipient))
	}
	return emailRecipients
}

func writeOutcomeToExcel(attachFileName string, employeeID int, outcome *payroll.Outcome) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	_ = f.SetColWidth(sheet, "A", "C", 30)

	if err := f.SetCellValue(sheet, "A1", "Step"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Result"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "C1", "Employee"); err != nil {
		return err
	}

	for i, step := range outcome.Steps {
		row := strconv.Itoa(i + 2)
		result := "ok"
		if step.Err != nil {
			result = step.Err.Error()
		}
		if err := f.SetCellValue(sheet, "A"+row, step.Step); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, "B"+row, result); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, "C"+row, employeeID); err != nil {
			return err
		}
	}

	return f.SaveAs(attachFileName)
}
