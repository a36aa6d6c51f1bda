package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/logging"
)

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}

func TestCollector_ObserveRender(t *testing.T) {
	logger := logging.New(logging.DefaultConfig())
	c := NewCollector(logger, time.Minute)
	r := Get()

	before := testutil.ToFloat64(r.RendersTotal.WithLabelValues(SourceCLI))
	c.ObserveRender(SourceCLI, 3, time.Millisecond)
	c.ObserveRender(SourceCLI, 1, time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(r.RendersTotal.WithLabelValues(SourceCLI)))

	stats := c.Snapshot()
	assert.Equal(t, uint64(2), stats.Renders[SourceCLI])
	assert.Zero(t, stats.Failures)
	assert.Zero(t, stats.LastUpdate)
}

func TestCollector_ObserveFailure(t *testing.T) {
	c := NewCollector(nil, 0)
	r := Get()

	before := testutil.ToFloat64(r.RenderFailures.WithLabelValues(SourceAPI, "missing_fields"))
	c.ObserveFailure(SourceAPI, "missing_fields")

	assert.Equal(t, before+1, testutil.ToFloat64(r.RenderFailures.WithLabelValues(SourceAPI, "missing_fields")))
	assert.Equal(t, uint64(1), c.Snapshot().Failures)
}

func TestCollector_SnapshotIsCopy(t *testing.T) {
	c := NewCollector(nil, time.Minute)
	c.ObserveRender(SourceForm, 1, time.Microsecond)

	s := c.Snapshot()
	s.Renders[SourceForm] = 99
	assert.Equal(t, uint64(1), c.Snapshot().Renders[SourceForm])
}

func TestCollector_RunUpdatesUptime(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	start := time.Unix(1000, 0)
	c.started = start
	c.now = func() time.Time { return start.Add(90 * time.Second) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return c.Snapshot().LastUpdate != 0
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 90.0, testutil.ToFloat64(Get().Uptime))
	assert.Equal(t, 90.0, c.Snapshot().UptimeSeconds)
}

func TestRecordAPIRequest(t *testing.T) {
	r := Get()
	before := testutil.ToFloat64(r.APIRequests.WithLabelValues("POST", "/api/render", "422"))
	r.RecordAPIRequest("POST", "/api/render", 422, 0.001)
	assert.Equal(t, before+1, testutil.ToFloat64(r.APIRequests.WithLabelValues("POST", "/api/render", "422")))
}
