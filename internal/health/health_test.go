package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-booking-reminder/internal/testutil"
)

func TestCheckWithoutProbes(t *testing.T) {
	checker := NewChecker("v1.2.3")

	status := checker.Check(context.Background())
	if status.Status != StatusHealthy {
		t.Errorf("status: got %q, want %q", status.Status, StatusHealthy)
	}
	if status.Version != "v1.2.3" {
		t.Errorf("version: got %q", status.Version)
	}
}

func TestCheckUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	checker := NewChecker("dev", RedisProbe(client))

	status := checker.Check(context.Background())
	if status.Status != StatusUnhealthy {
		t.Fatalf("status: got %q, want %q", status.Status, StatusUnhealthy)
	}
	if status.Checks["redis"].Error == "" {
		t.Error("redis check should carry an error")
	}

	resp, err := (&grpcChecker{checker: checker}).Check(context.Background(), &grpchealth.CheckRequest{})
	if err != nil {
		t.Fatalf("grpc Check() error = %v", err)
	}
	if resp.Status != grpchealth.StatusNotServing {
		t.Errorf("grpc status: got %v, want %v", resp.Status, grpchealth.StatusNotServing)
	}
}

func TestCheckReportsEveryProbe(t *testing.T) {
	checker := NewChecker("dev",
		Probe{Name: "ok", Check: func(context.Context) error { return nil }},
		Probe{Name: "down", Check: func(context.Context) error { return errors.New("connection refused") }},
	)

	status := checker.Check(context.Background())
	if status.Status != StatusUnhealthy {
		t.Fatalf("status: got %q, want %q", status.Status, StatusUnhealthy)
	}
	if status.Checks["ok"].Status != StatusHealthy {
		t.Errorf("ok probe: got %+v", status.Checks["ok"])
	}
	if got := status.Checks["down"]; got.Status != StatusUnhealthy || got.Error != "connection refused" {
		t.Errorf("down probe: got %+v", got)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health/ready", checker.ReadyHandler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness: got %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestCheckRedisContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	checker := NewChecker("dev", RedisProbe(client))

	status := checker.Check(ctx)
	if status.Status != StatusHealthy {
		t.Errorf("status: got %q, want %q", status.Status, StatusHealthy)
	}
	if status.Checks["redis"].Status != StatusHealthy {
		t.Errorf("redis check: got %+v", status.Checks["redis"])
	}
}

func TestHTTPHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	checker := NewChecker("dev")
	router := gin.New()
	router.GET("/health/live", checker.LiveHandler())
	router.GET("/health/ready", checker.ReadyHandler())

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: got %d, want %d", path, w.Code, http.StatusOK)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode readiness: %v", err)
	}
	if status.Status != StatusHealthy {
		t.Errorf("readiness status: got %q", status.Status)
	}
}

func TestGRPCHandlerPath(t *testing.T) {
	path, handler := NewChecker("dev").GRPCHandler()

	if path != "/grpc.health.v1.Health/" {
		t.Errorf("path: got %q", path)
	}
	if handler == nil {
		t.Error("handler should not be nil")
	}
}
