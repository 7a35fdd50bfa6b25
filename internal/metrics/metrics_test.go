package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordProgramTransition(t *testing.T) {
	before := testutil.ToFloat64(programTransitionsTotal.WithLabelValues("completed"))

	RecordProgramTransition("completed")

	after := testutil.ToFloat64(programTransitionsTotal.WithLabelValues("completed"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordGoalMutation("update")
	RecordHTTPRequest(http.MethodPut, "", http.StatusOK, 0.01)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mentorme_goal_mutations_total")
	assert.Contains(t, w.Body.String(), `route="unmatched"`)
}
