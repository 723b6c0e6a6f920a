package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"push-attach/internal/domain/model"
)

func TestRecorderCountsByReason(t *testing.T) {
	recorder := NewRecorder()

	recorder.ObserveResolution(model.ReasonAttached, 20*time.Millisecond)
	recorder.ObserveResolution(model.ReasonAttached, 30*time.Millisecond)
	recorder.ObserveResolution(model.ReasonBadStatus, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.resolutions.WithLabelValues("attached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.resolutions.WithLabelValues("bad_status")))
}

func TestRecorderHandlerExposesMetrics(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveResolution(model.ReasonTimeout, time.Second)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `push_attach_resolutions_total{reason="timeout"} 1`)
}
