package engine

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
)

// Observer is notified of the outcome of every command and of the book size
// after a restore.
type Observer interface {
	ObserveCommand(commandType string, status orderbookv1.Status)
	SetResting(n int)
}

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval    time.Duration
	SnapshotOffsetDelta int64
	// ReadBackoff is the pause after a failed read from the command stream.
	ReadBackoff time.Duration

	// Listeners receive the events of each command after it has been
	// applied and the engine lock released. They run on the command
	// goroutine, so a slow listener delays the next command, and they must
	// not apply commands themselves.
	Listeners []orderbookv1.Listener
	Observer  Observer

	Clock func() time.Time
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:    5 * time.Second,
		SnapshotOffsetDelta: 1000,
		ReadBackoff:         100 * time.Millisecond,
		Clock:               time.Now,
	}
}

// OptionsFromConfig returns the default options overridden by cfg.
func OptionsFromConfig(cfg config.EngineConfig) *Options {
	opts := DefaultEngineOptions()
	if cfg.SnapshotInterval > 0 {
		opts.SnapshotInterval = cfg.SnapshotInterval
	}
	if cfg.SnapshotOffsetDelta > 0 {
		opts.SnapshotOffsetDelta = cfg.SnapshotOffsetDelta
	}
	return opts
}
