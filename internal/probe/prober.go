// Package probe runs the periodic connectivity check against the remote
// khata API and exposes the latest result to the status widget.
package probe

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/api/metrics"
)

const (
	defaultInterval = 30 * time.Second
	checkTimeout    = 5 * time.Second
)

// HealthFunc performs one connectivity check.
type HealthFunc func(ctx context.Context) error

// Status is a snapshot of the latest check. Checked is false until the
// first probe has resolved.
type Status struct {
	Connected bool      `json:"connected"`
	Checked   bool      `json:"checked"`
	CheckedAt time.Time `json:"checked_at"`
}

// Prober checks connectivity once at startup and then on a fixed interval.
type Prober struct {
	check    HealthFunc
	interval time.Duration
	log      zerolog.Logger

	mu     sync.RWMutex
	status Status
}

// New creates a Prober. If interval <= 0, defaultInterval is used.
func New(check HealthFunc, interval time.Duration, log zerolog.Logger) *Prober {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Prober{check: check, interval: interval, log: log}
}

// Start launches the probe loop. The loop runs an immediate first check,
// then ticks until ctx is cancelled; cancellation releases the ticker so no
// timer outlives the caller.
func (p *Prober) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Prober) run(ctx context.Context) {
	p.runCheck(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runCheck(ctx)
		}
	}
}

func (p *Prober) runCheck(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	err := p.check(checkCtx)
	connected := err == nil

	result := "up"
	if !connected {
		result = "down"
		p.log.Debug().Err(err).Msg("connectivity probe failed")
	}
	metrics.ProbeChecksTotal.WithLabelValues(result).Inc()

	p.mu.Lock()
	p.status = Status{Connected: connected, Checked: true, CheckedAt: time.Now()}
	p.mu.Unlock()
}

// Snapshot returns the latest probe result.
func (p *Prober) Snapshot() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}
