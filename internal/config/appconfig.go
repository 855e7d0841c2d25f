package config

import (
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/iamsayeed/payroll-console/internal/customhttp"
	"github.com/iamsayeed/payroll-console/internal/hris"
	sessionstore "github.com/iamsayeed/payroll-console/internal/session"
)

type ApplicationConfig struct {
	envValues    *envConfig
	hrisClient   hris.ClientInterface
	emailClient  *ses.SES
	sessionStore *sessionstore.Store
}

//Version returns application version
func (cfg *ApplicationConfig) Version() string {
	return cfg.envValues.Version
}

//ServerPort returns the port no to listen for requests
func (cfg *ApplicationConfig) ServerPort() int {
	return cfg.envValues.ServerPort
}

//HrisEndpoint returns the backend API client
func (cfg *ApplicationConfig) HrisEndpoint() hris.ClientInterface {
	return cfg.hrisClient
}

//SessionStore returns the typed session store
func (cfg *ApplicationConfig) SessionStore() *sessionstore.Store {
	return cfg.sessionStore
}

//ArtifactDir returns the directory for generated payslip and export files
func (cfg *ApplicationConfig) ArtifactDir() string {
	return cfg.envValues.ArtifactDir
}

//TmpDir returns the scratch directory for report attachments
func (cfg *ApplicationConfig) TmpDir() string {
	return cfg.envValues.TmpDir
}

//EmailClient returns the ses client with config
func (cfg *ApplicationConfig) EmailClient() *ses.SES {
	return cfg.emailClient
}

//EmailTo returns the to email address
func (cfg *ApplicationConfig) EmailTo() string {
	return cfg.envValues.EmailTo
}

//EmailFrom returns the From email address
func (cfg *ApplicationConfig) EmailFrom() string {
	return cfg.envValues.EmailFrom
}

//SyncPolicy returns the configured payroll save failure policy
func (cfg *ApplicationConfig) SyncPolicy() string {
	return cfg.envValues.SyncPolicy
}

//NewApplicationConfig loads config values from environment and initialises config
func NewApplicationConfig() (*ApplicationConfig, error) {
	envValues := NewEnvironmentConfig()
	if envValues.HrisEndpoint == "" {
		return nil, errors.New("HRIS_ENDPOINT is required")
	}

	sessionStore := sessionstore.NewStore(envValues.SessionFileLocation)
	httpCommand := NewHTTPCommand()
	hrisClient := hris.NewClient(envValues.HrisEndpoint, httpCommand, sessionStore)
	emailClient := ses.New(session.New(), aws.NewConfig().WithRegion(envValues.EmailRegion))
	return &ApplicationConfig{
		envValues:    envValues,
		hrisClient:   hrisClient,
		emailClient:  emailClient,
		sessionStore: sessionStore,
	}, nil
}

// NewHTTPCommand returns the HTTP client
func NewHTTPCommand() customhttp.HTTPCommand {
	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
		customhttp.WithRequestLogging(),
	).Build()

	return httpCommand
}
