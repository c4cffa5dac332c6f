package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/marketplace-system/internal/infrastructure/http/handlers"
)

func get(t *testing.T, deps map[string]handlers.Pinger, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewRouter("customer_db", deps, zerolog.Nop())
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	rec := get(t, nil, "/health")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","service":"customer_db"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	up := handlers.PingFunc(func(context.Context) error { return nil })
	down := handlers.PingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := get(t, map[string]handlers.Pinger{"snapshot": up}, "/health/ready")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = get(t, map[string]handlers.Pinger{"customer_db": up, "product_db": down}, "/health/ready")
	require.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "ok", body.Dependencies["customer_db"].Status)
	require.Equal(t, "connection refused", body.Dependencies["product_db"].Error)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, nil, "/metrics")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}
