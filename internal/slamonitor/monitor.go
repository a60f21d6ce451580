// Package slamonitor runs the background worker that periodically scans
// open tickets for SLA breach risk and pushes alerts to subscribers.
package slamonitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/opsdesk/helpdesk-engine/internal/models"
	"github.com/opsdesk/helpdesk-engine/internal/workflow"
)

// Sink receives the alerts produced by a scan. The websocket hub
// implements this; a nil sink drops alerts after they are recorded.
type Sink interface {
	Publish(alert models.SLAAlert)
}

// Monitor periodically runs the SLA risk scan
type Monitor struct {
	engine   workflow.Engine
	sink     Sink
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates an SLA monitor
func New(engine workflow.Engine, sink Sink, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Monitor{
		engine:   engine,
		sink:     sink,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic scan loop
func (m *Monitor) Start() {
	m.wg.Add(1)
	go m.run()
	slog.Info("sla monitor started", "interval", m.interval)
}

// Stop signals the loop to exit and waits for the current scan
func (m *Monitor) Stop() {
	close(m.stopCh)
	m.wg.Wait()
	slog.Info("sla monitor stopped")
}

func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// First scan right away so a restart doesn't wait a full interval.
	m.scan()

	for {
		select {
		case <-ticker.C:
			m.scan()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alerts, err := m.engine.ScanSLARisk(ctx)
	if err != nil {
		slog.Error("sla scan failed", "error", err)
		return
	}

	if len(alerts) > 0 {
		slog.Info("sla scan found tickets at risk", "count", len(alerts))
	}

	if m.sink == nil {
		return
	}
	for _, alert := range alerts {
		m.sink.Publish(alert)
	}
}
