// Package usage aggregates live counters from activity events. The collector
// feeds the `stats` command and the admin dashboard; the same increments are
// mirrored to Prometheus counters for scraping.
package usage

import (
	"sync"
	"time"

	"portfolio-terminal/internal/dto"
	"portfolio-terminal/pkg/events"
)

// Collector tracks process-lifetime usage counters. All counters move
// together under one lock so snapshots are consistent.
type Collector struct {
	mu              sync.Mutex
	startedAt       time.Time
	commandsServed  int64
	commandCounts   map[string]int64
	chatMessages    int64
	chatRejections  int64
	sessionsStarted int64
}

// NewCollector creates a collector with the uptime clock started now.
func NewCollector() *Collector {
	return &Collector{
		startedAt:     time.Now(),
		commandCounts: make(map[string]int64),
	}
}

// Record folds one activity event into the counters.
func (c *Collector) Record(evt events.BaseEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch evt.Type {
	case events.EventCommandExecuted:
		c.commandsServed++
		name, _ := evt.Data["command"].(string)
		if name == "" {
			name = "unknown"
		}
		c.commandCounts[name]++
		metricCommands.WithLabelValues(name).Inc()
	case events.EventChatMessage:
		c.chatMessages++
		metricChatMessages.Inc()
	case events.EventChatRejected:
		c.chatRejections++
		metricChatRejections.Inc()
	case events.EventSessionStarted:
		c.sessionsStarted++
		metricSessionsStarted.Inc()
	}
}

// Snapshot copies the current counters into a stats response. ActiveSessions
// comes from the session store, not the event stream; callers fill it in.
func (c *Collector) Snapshot() *dto.UsageStatsResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make(map[string]int64, len(c.commandCounts))
	for name, n := range c.commandCounts {
		counts[name] = n
	}

	return &dto.UsageStatsResponse{
		CommandsServed:  c.commandsServed,
		CommandCounts:   counts,
		ChatMessages:    c.chatMessages,
		ChatRejections:  c.chatRejections,
		SessionsStarted: c.sessionsStarted,
		UptimeSeconds:   int64(time.Since(c.startedAt).Seconds()),
	}
}
