package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"kazicare_backend/database"
	"kazicare_backend/internal/app"
	"kazicare_backend/internal/config"
	"kazicare_backend/internal/ratelimit"
	"kazicare_backend/internal/services"

	"gorm.io/gorm"
)

// TestServer runs the full HTTP stack against a real test database. The
// email provider is swapped for the in-memory mock.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Emails *app.MockEmailProvider
}

// NewTestServer connects to DATABASE_URL, migrates, and starts httptest.
// Tests that call it must have skipped already when the variable is unset.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	emails := app.NewMockEmailProvider()
	svc := services.NewServiceContainer(db, emails)
	router := app.SetupRouter(svc, ratelimit.NewMemoryLimiter())

	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Emails: emails,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables truncates everything between tests.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE users, refresh_tokens, jobs, applications, notifications RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
	ts.Emails.Sent = nil
}

// SendRequest issues an HTTP request against the test server. token, when
// non-empty, is sent as a Bearer credential. body is JSON-encoded.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(raw)
}

// RequireTestDatabase skips the test unless DATABASE_URL points at a test
// database.
func RequireTestDatabase(t *testing.T) {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
}
