package engine

import (
	"context"
	"sync"
	"time"

	commandv1 "github.com/muhammadchandra19/matchbook/internal/domain/command/v1"
	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/matchbook/internal/usecase/listener"
	"github.com/muhammadchandra19/matchbook/internal/usecase/orderbook"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/segmentio/kafka-go"
)

// Engine drives one order book from the command stream. A single goroutine
// applies commands; readers go through View.
type Engine struct {
	// Core components
	orderbook     *orderbook.Orderbook
	commandReader commandv1.Reader
	snapshotStore snapshotv1.Store
	publisher     eventv1.Publisher
	logger        *logger.Logger
	config        *config.Config

	collector *orderbookv1.EventBuffer
	listeners listener.Multi
	observer  Observer
	clock     func() time.Time

	// commandMu is held from applying a command until its events are
	// published, so a snapshot never records an offset whose events are
	// still in flight.
	commandMu sync.Mutex

	// mu guards the book and everything below it.
	mu                 sync.RWMutex
	orderOffset        int64
	lastSnapshotOffset int64
	sequence           int64
	processedCommands  int64
	totalMatches       int64

	// baseCtx carries the pair for logs written outside a command.
	baseCtx context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	snapshotInterval    time.Duration
	snapshotOffsetDelta int64
	readBackoff         time.Duration
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	book *orderbook.Orderbook,
	commandReader commandv1.Reader,
	snapshotStore snapshotv1.Store,
	publisher eventv1.Publisher,
	logger *logger.Logger,
	config *config.Config,
) (*Engine, error) {
	return NewEngineWithOptions(book, commandReader, snapshotStore, publisher, logger, config, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options and restores
// the book from the latest snapshot, if any.
func NewEngineWithOptions(
	book *orderbook.Orderbook,
	commandReader commandv1.Reader,
	snapshotStore snapshotv1.Store,
	publisher eventv1.Publisher,
	log *logger.Logger,
	config *config.Config,
	options *Options,
) (*Engine, error) {
	e := &Engine{
		orderbook:     book,
		commandReader: commandReader,
		snapshotStore: snapshotStore,
		publisher:     publisher,
		logger:        log,
		baseCtx:       util.WithPair(context.Background(), config.Pair),
		config:        config,

		collector: orderbookv1.NewEventBuffer(),
		listeners: listener.NewMulti(options.Listeners...),
		observer:  options.Observer,
		clock:     options.Clock,

		orderOffset:        -1,
		lastSnapshotOffset: -1,

		snapshotInterval:    options.SnapshotInterval,
		snapshotOffsetDelta: options.SnapshotOffsetDelta,
		readBackoff:         options.ReadBackoff,
	}
	if e.clock == nil {
		e.clock = time.Now
	}

	book.SetListener(e.collector)

	if err := e.loadSnapshot(e.baseCtx); err != nil {
		return nil, err
	}

	return e, nil
}

// Start seeks the command reader past the restored offset and starts the
// processing routines.
func (e *Engine) Start(ctx context.Context) error {
	startOffset := int64(kafka.FirstOffset)
	if offset := e.GetOrderOffset(); offset >= 0 {
		startOffset = offset + 1
	}
	if err := e.commandReader.SetOffset(startOffset); err != nil {
		return errors.NewTracer("set_command_offset").Wrap(err)
	}

	e.ctx, e.cancel = context.WithCancel(util.WithPair(ctx, e.config.Pair))

	e.wg.Add(2)
	go e.runCommandProcessor()
	go e.runSnapshotManager()

	e.logger.InfoContext(e.baseCtx, "Engine started", logger.NewField("startOffset", startOffset))

	return nil
}

// Stop waits for the processing routines to finish and stores a final
// snapshot when commands were applied since the last one.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		e.logger.WarnContext(e.baseCtx, "Engine stop timeout exceeded")
		return ctx.Err()
	}

	if e.GetOrderOffset() > e.GetLastSnapshotOffset() {
		if err := e.createAndStoreSnapshot(ctx); err != nil {
			return err
		}
	}

	e.logger.InfoContext(e.baseCtx, "Engine stopped gracefully")
	return nil
}

// runCommandProcessor reads and applies commands in a single goroutine.
func (e *Engine) runCommandProcessor() {
	defer e.wg.Done()
	defer func() {
		_ = e.commandReader.Close()
	}()

	e.logger.InfoContext(e.baseCtx, "Starting command processor")

	for {
		if e.ctx.Err() != nil {
			e.logger.InfoContext(e.baseCtx, "Command processor shutting down")
			return
		}

		msg, cmd, err := e.commandReader.ReadMessage(e.ctx)
		if err != nil {
			if e.ctx.Err() != nil {
				continue
			}
			if errors.ErrorCodeEquals(err, errors.CommandDecodeError) {
				// Undecodable commands are skipped for good.
				e.logger.WarnContext(util.WithCommandOffset(e.ctx, msg.Offset), "Skipping undecodable command", logger.NewField("error", err.Error()))
				e.setOrderOffset(msg.Offset)
				continue
			}

			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "read_command_message"))
			select {
			case <-e.ctx.Done():
			case <-time.After(e.readBackoff):
			}
			continue
		}

		e.processCommand(e.ctx, cmd)

		if err := e.commandReader.CommitMessages(e.ctx, msg); err != nil {
			e.logger.ErrorContext(e.ctx, err, logger.NewField("action", "commit_command_message"))
		}
	}
}

// runSnapshotManager handles periodic snapshots.
func (e *Engine) runSnapshotManager() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.snapshotInterval)
	defer ticker.Stop()

	e.logger.InfoContext(e.baseCtx, "Starting snapshot manager")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.InfoContext(e.baseCtx, "Snapshot manager shutting down")
			return
		case <-ticker.C:
			if e.shouldCreateSnapshot() {
				_ = e.createAndStoreSnapshot(e.ctx)
			}
		}
	}
}

// processCommand applies one command and publishes the events it produced.
// The offset advances even for rejected commands so they are not replayed.
func (e *Engine) processCommand(ctx context.Context, cmd commandv1.Command) orderbookv1.Status {
	e.commandMu.Lock()
	defer e.commandMu.Unlock()

	ctx = util.WithRequestID(util.WithCommandOffset(ctx, cmd.Offset), "")

	if err := cmd.Validate(); err != nil {
		e.logger.WarnContext(ctx, "Rejected invalid command",
			logger.NewField("type", cmd.Type),
			logger.NewField("orderID", cmd.OrderID),
			logger.NewField("error", err.Error()),
		)
		e.observe(cmd.Type, orderbookv1.StatusRejected)
		e.setOrderOffset(cmd.Offset)
		return orderbookv1.StatusRejected
	}

	now := e.clock()

	e.mu.Lock()
	status := cmd.Apply(e.orderbook)
	events := e.collector.Events()
	e.collector.Reset()

	payloads := make([]*eventv1.Payload, 0, len(events))
	for _, event := range events {
		e.sequence++
		if event.Type == orderbookv1.EventTypeMatch {
			e.totalMatches++
		}
		payloads = append(payloads, eventv1.CreateFromEvent(e.config.Pair, e.sequence, cmd.Offset, event, now))
	}
	e.orderOffset = cmd.Offset
	e.processedCommands++
	e.mu.Unlock()

	// Listeners run outside mu and may read the engine.
	for _, event := range events {
		event.Deliver(e.listeners)
	}
	e.observe(cmd.Type, status)

	e.logger.DebugContext(ctx, "Command applied",
		logger.NewField("type", cmd.Type),
		logger.NewField("orderID", cmd.OrderID),
		logger.NewField("status", status),
		logger.NewField("events", len(payloads)),
	)

	// The offset already covers this command; commandMu keeps snapshots out
	// until the publish below has been attempted.
	if len(payloads) > 0 && e.publisher != nil {
		if err := e.publisher.PublishEvents(ctx, payloads); err != nil {
			e.logger.ErrorContext(ctx, err, logger.NewField("action", "publish_events"))
		}
	}

	return status
}

func (e *Engine) observe(commandType commandv1.Type, status orderbookv1.Status) {
	if e.observer != nil {
		e.observer.ObserveCommand(string(commandType), status)
	}
}

// shouldCreateSnapshot checks if a snapshot should be created
func (e *Engine) shouldCreateSnapshot() bool {
	e.mu.RLock()
	currentOffset := e.orderOffset
	lastSnapshotOffset := e.lastSnapshotOffset
	e.mu.RUnlock()

	if currentOffset < 0 {
		return false
	}

	return currentOffset-lastSnapshotOffset >= e.snapshotOffsetDelta
}

// createAndStoreSnapshot captures the book between commands and stores it.
func (e *Engine) createAndStoreSnapshot(ctx context.Context) error {
	e.commandMu.Lock()
	e.mu.RLock()
	snapshot := e.orderbook.CreateSnapshot()
	snapshot.OrderOffset = e.orderOffset
	snapshot.OrderBookSnapshot.EventSequence = e.sequence
	e.mu.RUnlock()
	e.commandMu.Unlock()

	e.logger.InfoContext(e.baseCtx, "Creating snapshot",
		logger.NewField("currentOffset", snapshot.OrderOffset),
		logger.NewField("orders", len(snapshot.OrderBookSnapshot.Orders)),
	)

	if err := e.snapshotStore.Store(ctx, snapshot); err != nil {
		e.logger.ErrorContext(ctx, err, logger.NewField("action", "store_snapshot"))
		return err
	}

	e.setLastSnapshotOffset(snapshot.OrderOffset)
	e.logger.InfoContext(e.baseCtx, "Snapshot stored successfully", logger.NewField("offset", snapshot.OrderOffset))
	return nil
}

// loadSnapshot loads and restores the orderbook from snapshot
func (e *Engine) loadSnapshot(ctx context.Context) error {
	snapshot, err := e.snapshotStore.LoadStore(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		e.logger.InfoContext(e.baseCtx, "No snapshot found, starting from an empty book")
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.orderbook.RestoreOrderbook(snapshot); err != nil {
		return err
	}
	e.orderOffset = snapshot.OrderOffset
	e.lastSnapshotOffset = snapshot.OrderOffset
	e.sequence = snapshot.OrderBookSnapshot.EventSequence

	if e.observer != nil {
		e.observer.SetResting(e.orderbook.Len())
	}

	e.logger.InfoContext(e.baseCtx, "Orderbook restored from snapshot",
		logger.NewField("orderOffset", snapshot.OrderOffset),
		logger.NewField("orders", e.orderbook.Len()),
	)

	return nil
}

// View runs fn with read access to the book, together with the offset of
// the last applied command and the last event sequence. All three are read
// under the same lock. fn must not keep references to the book after it
// returns.
func (e *Engine) View(fn func(book orderbookv1.Orderbook, offset, sequence int64)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.orderbook, e.orderOffset, e.sequence)
}

// Thread-safe getters and setters
func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

func (e *Engine) setLastSnapshotOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSnapshotOffset = offset
}

// GetOrderOffset returns the offset of the last applied command.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetLastSnapshotOffset returns the last snapshot offset
func (e *Engine) GetLastSnapshotOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSnapshotOffset
}

// GetSequence returns the sequence of the last emitted event.
func (e *Engine) GetSequence() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sequence
}

// GetProcessedCommands returns the number of commands applied to the book.
func (e *Engine) GetProcessedCommands() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.processedCommands
}

// GetTotalMatches returns the total number of matches processed
func (e *Engine) GetTotalMatches() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalMatches
}
