//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/focloireacht-backend/internal/app"
	"github.com/heartmarshall/focloireacht-backend/internal/config"
	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	usersvc "github.com/heartmarshall/focloireacht-backend/internal/service/user"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	container *app.Container
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         60,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, Backend: config.RateLimitBackendMemory},
		Search:    config.SearchConfig{DefaultLimit: 20, MaxLimit: 100},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// setupTestServer wires the application with app.Build on top of the shared
// testcontainers database and serves it with httptest.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	c, err := app.Build(context.Background(), testConfig(), logger, pool)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	srv := httptest.NewServer(c.Handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:       srv.URL,
		Client:    srv.Client(),
		Pool:      pool,
		container: c,
	}
}

// ---------------------------------------------------------------------------
// Users and tokens
// ---------------------------------------------------------------------------

// createUser provisions a user with the given role and returns a bearer
// token and the user id.
func createUser(t *testing.T, ts *testServer, role domain.UserRole) (string, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	u, created, err := ts.container.Users.Provision(ctx, usersvc.ProvisionInput{
		Email: "e2e-" + uuid.NewString()[:12] + "@example.com",
		Name:  "E2E " + role.String(),
		Role:  role,
	})
	require.NoError(t, err)
	require.True(t, created)

	token, err := ts.container.Users.IssueToken(ctx, u.ID)
	require.NoError(t, err)
	return token, u.ID
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// restRequest sends a JSON request. body may be nil; token may be empty.
func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()
	return restRequestFrom(t, ts, "", method, path, token, body)
}

// restRequestFrom is restRequest with an X-Forwarded-For client address.
func restRequestFrom(t *testing.T, ts *testServer, ip, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeBody reads and decodes the JSON response body into a map and closes it.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), "response body should be valid JSON")
	return body
}

// expectStatus asserts the status code and returns the decoded body.
func expectStatus(t *testing.T, resp *http.Response, want int) map[string]any {
	t.Helper()
	body := decodeBody(t, resp)
	require.Equal(t, want, resp.StatusCode, "body: %v", body)
	return body
}
