// Package transport wraps the HTTP client with the cross-cutting credential
// policy: attach the stored bearer token on the way out, and throw away the
// session when the backend answers 401. Individual operations never deal
// with authentication themselves.
package transport

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Credentials is the slice of the session store the transport needs: read
// the current token and drop the session when it is rejected.
type Credentials interface {
	Token() string
	Clear() error
}

// AuthTransport is an http.RoundTripper that attaches the persisted bearer
// credential to outgoing requests and reacts to authentication rejection.
type AuthTransport struct {
	Base        http.RoundTripper
	Credentials Credentials
	Logger      *logrus.Logger

	// OnAuthExpired is invoked after the session has been cleared in
	// response to a 401. The browser client redirected to the login page
	// here; a CLI or test hooks in whatever "go log in again" means for it.
	OnAuthExpired func()
}

// NewAuthTransport returns a transport wrapping base (http.DefaultTransport
// when nil).
func NewAuthTransport(base http.RoundTripper, creds Credentials, logger *logrus.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &AuthTransport{
		Base:        base,
		Credentials: creds,
		Logger:      logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.Credentials.Token(); token != "" && req.Header.Get("Authorization") == "" {
		// Clone before mutating: RoundTrippers must not modify the
		// caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.Logger.WithField("url", req.URL.Path).Warn("Credential rejected, clearing stored session")
		if err := t.Credentials.Clear(); err != nil {
			t.Logger.WithError(err).Error("Failed to clear stored session")
		}
		if t.OnAuthExpired != nil {
			t.OnAuthExpired()
		}
	}

	return resp, nil
}
