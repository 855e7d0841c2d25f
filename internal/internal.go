package internal

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/iamsayeed/payroll-console/internal/activitylog"
	"github.com/iamsayeed/payroll-console/internal/config"
	"github.com/iamsayeed/payroll-console/internal/hris"
	"github.com/iamsayeed/payroll-console/internal/middlewares"
	"github.com/iamsayeed/payroll-console/internal/payroll"
	"github.com/iamsayeed/payroll-console/internal/payslip"
	"github.com/iamsayeed/payroll-console/internal/report"
	"github.com/iamsayeed/payroll-console/internal/schedule"
)

//StatusRoute health check route
func StatusRoute() (route config.Route) {
	route = config.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Handler: middlewares.RuntimeHealthCheck(),
	}
	return route
}

type ServerConfig interface {
	Version() string
	HrisEndpoint() hris.ClientInterface
	ArtifactDir() string
	TmpDir() string
	EmailClient() *ses.SES
	EmailTo() string
	EmailFrom() string
	SyncPolicy() string
}

func SetupServer(cfg ServerConfig) *config.Server {
	basePath := fmt.Sprintf("/%v", cfg.Version())
	client := cfg.HrisEndpoint()

	policy := payroll.PolicyBestEffort
	if cfg.SyncPolicy() == "fail-fast" {
		policy = payroll.PolicyFailFast
	}

	synchronizer := payroll.NewSynchronizer(client, policy)
	generator := schedule.NewGenerator(client)
	payslips := payslip.NewService(client, cfg.ArtifactDir())
	logs := activitylog.NewService(client, cfg.ArtifactDir())
	mailer := report.NewMailer(cfg.EmailClient(), cfg.EmailTo(), cfg.EmailFrom(), cfg.TmpDir())

	server := config.NewServer().
		WithRoutes(
			"", StatusRoute(),
		).
		WithRoutes(
			basePath,
			Routes(client, synchronizer, generator, payslips, logs, mailer)...,
		)
	return server
}
