package hris

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iamsayeed/payroll-console/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair and persists the resulting
// session through the store so subsequent calls carry the bearer token.
func (c *client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	contextLogger := log.WithContext(ctx)
	contextLogger.Info("Authenticating against the hris backend for user: ", email)

	response := &TokenResponse{}
	url := c.URL + "/auth/login"
	if err := c.do(ctx, "Login", http.MethodPost, url, loginRequest{Email: email, Password: password}, response); err != nil {
		return nil, err
	}

	sess := &session.Session{
		AccessToken:  response.AccessToken,
		RefreshToken: response.RefreshToken,
		UserID:       response.UserID,
		UserRole:     response.UserRole,
		UserEmail:    response.UserEmail,
		SessionStart: time.Now(),
	}
	if err := c.Session.Save(sess); err != nil {
		contextLogger.WithError(err).Error("Error writing token to the session store")
		return nil, err
	}
	return response, nil
}
