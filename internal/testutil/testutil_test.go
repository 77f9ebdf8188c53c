package testutil

import (
	"net/http"
	"testing"
)

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodGet, "/charts/telemetry")
	if req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", req.Method)
	}
	if req.URL.Path != "/charts/telemetry" {
		t.Errorf("path = %q, want /charts/telemetry", req.URL.Path)
	}
}

func TestNewTestRecorder(t *testing.T) {
	rec := NewTestRecorder()
	rec.WriteHeader(http.StatusTeapot)
	if rec.Code != http.StatusTeapot {
		t.Errorf("recorded code = %d, want 418", rec.Code)
	}
}
