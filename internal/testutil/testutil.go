// Package testutil provides testing utilities for the finance tracker.
package testutil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestServer wraps httptest.Server with convenience methods
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	t       *testing.T
}

// ProjectRoot returns the root directory of the project.
// It works by finding the go.mod file.
func ProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not get caller info")
	}

	// Start from this file's directory and walk up
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// SetTestEnv points the app at a temp data directory and returns a
// cleanup function restoring the previous environment
func SetTestEnv(t *testing.T) func() {
	t.Helper()

	cfg := map[string]string{
		"FINTRACK_DATA_DIR":    t.TempDir(),
		"FINTRACK_DEBUG":       "true",
		"FINTRACK_LISTEN_ADDR": ":0", // Random port
	}
	oldValues := make(map[string]string)

	for k, v := range cfg {
		oldValues[k] = os.Getenv(k)
		os.Setenv(k, v)
	}

	return func() {
		for k, v := range oldValues {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
}

// NewTestServer creates a new test server using the application's router
func NewTestServer(t *testing.T, router http.Handler) *TestServer {
	t.Helper()

	server := httptest.NewServer(router)

	return &TestServer{
		Server:  server,
		BaseURL: server.URL,
		t:       t,
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// GET performs a GET request to the given path
func (ts *TestServer) GET(path string) *http.Response {
	ts.t.Helper()

	resp, err := http.Get(ts.BaseURL + path)
	if err != nil {
		ts.t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

// PostJSON performs a POST request with a JSON body
func (ts *TestServer) PostJSON(path, body string) *http.Response {
	ts.t.Helper()

	resp, err := http.Post(ts.BaseURL+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		ts.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// PutJSON performs a PUT request with a JSON body
func (ts *TestServer) PutJSON(path, body string) *http.Response {
	ts.t.Helper()

	req, err := http.NewRequest(http.MethodPut, ts.BaseURL+path, bytes.NewBufferString(body))
	if err != nil {
		ts.t.Fatalf("building PUT %s failed: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ts.t.Fatalf("PUT %s failed: %v", path, err)
	}
	return resp
}

// DELETE performs a DELETE request to the given path
func (ts *TestServer) DELETE(path string) *http.Response {
	ts.t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.BaseURL+path, nil)
	if err != nil {
		ts.t.Fatalf("building DELETE %s failed: %v", path, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ts.t.Fatalf("DELETE %s failed: %v", path, err)
	}
	return resp
}
