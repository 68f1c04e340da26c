package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCredentials is an in-memory Credentials implementation.
type fakeCredentials struct {
	token   string
	cleared bool
}

func (f *fakeCredentials) Token() string { return f.token }

func (f *fakeCredentials) Clear() error {
	f.token = ""
	f.cleared = true
	return nil
}

func newTestClient(creds Credentials, onExpired func()) *http.Client {
	gate := NewAuthTransport(nil, creds, logrus.New())
	gate.OnAuthExpired = onExpired
	return &http.Client{Transport: gate}
}

func TestAuthTransport_AttachesBearer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := newTestClient(&fakeCredentials{token: "tok-1"}, nil)
	resp, err := client.Get(server.URL + "/api/properties/user")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestAuthTransport_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := newTestClient(&fakeCredentials{}, nil)
	resp, err := client.Get(server.URL + "/api/properties")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "", gotAuth)
}

func TestAuthTransport_ClearsSessionOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	creds := &fakeCredentials{token: "expired"}
	expired := false
	client := newTestClient(creds, func() { expired = true })

	resp, err := client.Get(server.URL + "/api/properties/user")
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, creds.cleared)
	assert.Equal(t, "", creds.token)
	assert.True(t, expired)
}

func TestAuthTransport_OtherErrorsLeaveSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	creds := &fakeCredentials{token: "tok-1"}
	client := newTestClient(creds, nil)

	resp, err := client.Get(server.URL + "/api/properties")
	require.NoError(t, err)
	resp.Body.Close()

	assert.False(t, creds.cleared)
	assert.Equal(t, "tok-1", creds.token)
}
