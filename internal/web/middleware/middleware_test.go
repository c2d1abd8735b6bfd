package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/menumanager/internal/config"
)

func echoRemoteAddr(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(r.RemoteAddr))
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:   "no trusted proxies ignores headers",
			remote: "10.0.0.5:4000",
			headers: map[string]string{
				"X-Real-IP": "203.0.113.9",
			},
			want: "10.0.0.5:4000",
		},
		{
			name:    "trusted proxy uses X-Real-IP",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.0.0.5:4000",
			headers: map[string]string{"X-Real-IP": "203.0.113.9"},
			want:    "203.0.113.9",
		},
		{
			name:    "trusted proxy uses first forwarded hop",
			trusted: []string{"10.0.0.5"},
			remote:  "10.0.0.5:4000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.5"},
			want:    "198.51.100.1",
		},
		{
			name:    "untrusted client cannot spoof",
			trusted: []string{"10.0.0.0/8"},
			remote:  "192.0.2.44:1234",
			headers: map[string]string{"X-Real-IP": "203.0.113.9"},
			want:    "192.0.2.44:1234",
		},
		{
			name:    "invalid header value is ignored",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:80",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			want:    "10.1.2.3:80",
		},
		{
			name:    "invalid cidr is skipped",
			trusted: []string{"bogus", " 10.0.0.0/8 "},
			remote:  "10.1.2.3:80",
			headers: map[string]string{"X-Real-IP": "203.0.113.1"},
			want:    "203.0.113.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(echoRemoteAddr))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	cfg := &config.SecurityConfig{RequireAPIKey: false}
	h := APIKeyAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestAPIKeyAuth_NoKeysConfigured(t *testing.T) {
	cfg := &config.SecurityConfig{RequireAPIKey: true}
	h := APIKeyAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "AUTH002" {
		t.Errorf("code = %q, want AUTH002", body["code"])
	}
}

func TestIsValidAPIKey(t *testing.T) {
	keys := []string{"alpha", "beta"}
	tests := map[string]bool{
		"alpha": true,
		"beta":  true,
		"gamma": false,
		"alph":  false,
		"":      false,
	}
	for key, want := range tests {
		if got := isValidAPIKey(key, keys); got != want {
			t.Errorf("isValidAPIKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v: %s", err, buf.String())
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["status"] != float64(404) || entry["bytes"] != float64(7) {
		t.Errorf("status/bytes = %v/%v", entry["status"], entry["bytes"])
	}
	if !strings.Contains(buf.String(), `"path":"/nope"`) {
		t.Errorf("missing path in %s", buf.String())
	}
}

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/items", 200, slog.LevelInfo},
		{"/static/app.css", 200, slog.LevelDebug},
		{"/healthz", 200, slog.LevelDebug},
		{"/healthz", 503, slog.LevelError},
		{"/import", 413, slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := requestLevel(tt.path, tt.status); got != tt.want {
			t.Errorf("requestLevel(%q, %d) = %v, want %v", tt.path, tt.status, got, tt.want)
		}
	}
}
