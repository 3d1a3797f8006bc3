package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMetrics(t *testing.T) {
	m := getMetrics()
	opened := testutil.ToFloat64(m.sessionsOpened)
	active := testutil.ToFloat64(m.sessionsActive)
	failed := testutil.ToFloat64(m.sessionsClosed.WithLabelValues("error"))

	RecordSessionOpened()
	RecordSessionOpened()
	RecordSessionClosed(true)
	RecordSessionClosed(false)

	assert.Equal(t, opened+2, testutil.ToFloat64(m.sessionsOpened))
	assert.Equal(t, active, testutil.ToFloat64(m.sessionsActive))
	assert.Equal(t, failed+1, testutil.ToFloat64(m.sessionsClosed.WithLabelValues("error")))
}

func TestTempFileMetrics(t *testing.T) {
	m := getMetrics()
	inUse := testutil.ToFloat64(m.tempFilesInUse)
	released := testutil.ToFloat64(m.tempFilesReleased)

	RecordTempFileAllocated()
	RecordTempFileAllocated()
	RecordTempFileAllocated()
	RecordTempFilesReleased(2)
	RecordTempFilesReleased(0)

	assert.Equal(t, inUse+1, testutil.ToFloat64(m.tempFilesInUse))
	assert.Equal(t, released+2, testutil.ToFloat64(m.tempFilesReleased))

	exhausted := testutil.ToFloat64(m.allocationFailures.WithLabelValues("exhausted"))
	RecordAllocationFailure("exhausted")
	assert.Equal(t, exhausted+1, testutil.ToFloat64(m.allocationFailures.WithLabelValues("exhausted")))
}

func TestExportAndCommandMetrics(t *testing.T) {
	m := getMetrics()
	points := testutil.ToFloat64(m.exportPointsTotal.WithLabelValues("xy"))
	plots := testutil.ToFloat64(m.engineCommandsTotal.WithLabelValues("plot"))

	RecordExport("xy", 250, 3*time.Millisecond)
	RecordEngineCommand("plot")

	assert.Equal(t, points+250, testutil.ToFloat64(m.exportPointsTotal.WithLabelValues("xy")))
	assert.Equal(t, plots+1, testutil.ToFloat64(m.engineCommandsTotal.WithLabelValues("plot")))
}

func TestMetricsHandler(t *testing.T) {
	RecordEngineCommand("set")

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "plotpipe_engine_commands_total")
	assert.Contains(t, string(body), "plotpipe_sessions_active")
}
