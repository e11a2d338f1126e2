package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskchain/internal/config"
	"github.com/mtlprog/taskchain/internal/telemetry"
)

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *telemetry.Metrics

	assert.NotPanics(t, func() {
		m.EventIngested("CREATED")
		m.EventMalformed("decode")
		m.SyncOutcome("issue_created", false)
		m.SetListening(true)
		m.Broadcast(2)
	})
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := telemetry.NewMetrics()
	m.EventIngested("CLAIMED")
	m.SyncOutcome("issue_moved", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `taskchain_events_ingested_total{kind="CLAIMED"} 1`)
	assert.Contains(t, body, `taskchain_shadow_sync_total{op="issue_moved",result="ok"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.NewMetrics()
		telemetry.NewMetrics()
	})
}

func TestSetupTracing_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), config.Telemetry{Enabled: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing_NoopWhenDisabled(t *testing.T) {
	shutdown, err := telemetry.SetupTracing(context.Background(), config.Telemetry{
		Endpoint: "http://192.0.2.1:4318",
		Enabled:  false,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
