package metrics

import (
	"context"
	"sync"
	"time"

	"grimm.is/spagen/internal/logging"
)

// Collector keeps the uptime gauge current and caches counters for the
// stats endpoint.
type Collector struct {
	registry *Registry
	logger   *logging.Logger
	interval time.Duration
	started  time.Time
	now      func() time.Time

	mu         sync.RWMutex
	lastUpdate time.Time
	renders    map[string]uint64
	failures   uint64
}

// Stats is a point-in-time view of the collector.
type Stats struct {
	UptimeSeconds float64           `json:"uptime_seconds"`
	Renders       map[string]uint64 `json:"renders"`
	Failures      uint64            `json:"failures"`
	LastUpdate    int64             `json:"last_update_unix,omitempty"`
}

// NewCollector creates a collector that refreshes every interval.
func NewCollector(logger *logging.Logger, interval time.Duration) *Collector {
	if logger == nil {
		logger = logging.WithComponent("metrics")
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Collector{
		registry: Get(),
		logger:   logger,
		interval: interval,
		started:  time.Now(),
		now:      time.Now,
		renders:  make(map[string]uint64),
	}
}

// Run refreshes gauges until ctx is done.
func (c *Collector) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.update()
	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("metrics collector stopped")
			return
		case <-ticker.C:
			c.update()
		}
	}
}

func (c *Collector) update() {
	now := c.now()
	c.registry.Uptime.Set(now.Sub(c.started).Seconds())

	c.mu.Lock()
	c.lastUpdate = now
	c.mu.Unlock()
}

// ObserveRender records a successful render in both the registry and the
// cached stats.
func (c *Collector) ObserveRender(source string, statements int, d time.Duration) {
	c.registry.RecordRender(source, statements, d.Seconds())

	c.mu.Lock()
	c.renders[source]++
	c.mu.Unlock()
}

// ObserveFailure records a rejected render.
func (c *Collector) ObserveFailure(source, reason string) {
	c.registry.RecordRenderFailure(source, reason)

	c.mu.Lock()
	c.failures++
	c.mu.Unlock()
}

// Snapshot returns the cached stats.
func (c *Collector) Snapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	renders := make(map[string]uint64, len(c.renders))
	for k, v := range c.renders {
		renders[k] = v
	}
	s := Stats{
		UptimeSeconds: c.now().Sub(c.started).Seconds(),
		Renders:       renders,
		Failures:      c.failures,
	}
	if !c.lastUpdate.IsZero() {
		s.LastUpdate = c.lastUpdate.Unix()
	}
	return s
}
