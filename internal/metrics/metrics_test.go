package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveRender(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRender(10, time.Millisecond)
	c.ObserveRender(3, time.Millisecond)
	c.ObserveMissingTarget()

	assert.InDelta(t, 2, testutil.ToFloat64(c.renders), 0)
	assert.InDelta(t, 13, testutil.ToFloat64(c.rows), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.missingTarget), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestServer_Handler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveRender(1, time.Microsecond)

	ts := httptest.NewServer(NewServer(":0", reg).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "leaderboard_renders_total 1")

	resp2, err := http.Get(ts.URL + "/invalid")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
