package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

// engineConfig holds the optional collaborators of an engine.
type engineConfig struct {
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	pace     time.Duration // Default: no pause between phases
}

// WithLogger sets the logger used by the engine and its dealer.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes table events on bus instead of a private bus.
func WithEventBus(bus EventBus) EngineOption {
	return func(c *engineConfig) {
		c.eventBus = bus
	}
}

// WithClock injects the clock used for event timestamps and pacing.
//
//	clock := quartz.NewMock(t)
//	engine, _ := NewEngine(rules, dealer, players, WithClock(clock))
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithPace pauses for d between phases so a watching human can follow the table.
func WithPace(d time.Duration) EngineOption {
	return func(c *engineConfig) {
		c.pace = d
	}
}
