package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestStatusReportsUptime(t *testing.T) {
	svc := NewService("dev", nil)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.started = start
	svc.now = func() time.Time { return start.Add(90 * time.Second) }

	st := svc.Status()
	if st.Status != "OK" || st.Message != "Server is healthy" {
		t.Fatalf("unexpected status %+v", st)
	}
	if st.Uptime != 90 {
		t.Fatalf("expected 90s uptime, got %v", st.Uptime)
	}
	if st.Timestamp != "2024-05-01T12:01:30Z" {
		t.Fatalf("unexpected timestamp %q", st.Timestamp)
	}
}

func TestDetailedDatabaseProbe(t *testing.T) {
	ctx := context.Background()
	if got := NewService("dev", nil).Detailed(ctx).Database; got != "memory" {
		t.Fatalf("expected memory, got %q", got)
	}
	ok := NewService("production", pingFunc(func(context.Context) error { return nil })).Detailed(ctx)
	if ok.Database != "ok" || ok.Environment != "production" || ok.Version != Version {
		t.Fatalf("unexpected detailed %+v", ok)
	}
	down := NewService("dev", pingFunc(func(context.Context) error { return errors.New("refused") })).Detailed(ctx)
	if down.Database != "unreachable" {
		t.Fatalf("expected unreachable, got %q", down.Database)
	}
	if ok.Memory.Sys == 0 || ok.Memory.Goroutines == 0 {
		t.Fatalf("memory stats not populated: %+v", ok.Memory)
	}
}

func TestHandlerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService("dev", nil)).RegisterRoutes(router.Group("/api"))

	for _, path := range []string{"/api/health", "/api/health/detailed"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if body["status"] != "OK" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}
