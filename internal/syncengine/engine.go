// Package syncengine keeps the in-memory seating snapshot in step with its
// persisted copy.
//
// The engine picks a backend once per session. With a remote configured it
// subscribes to the shared record and adopts every push; without one, or
// after the subscription fails, it reads and writes the local cache for the
// rest of the session. Every operation is applied to memory first and then
// written out as a whole document in the background. There is no merge and
// no version check: the last writer wins.
package syncengine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/seating"
	"github.com/mmynk/seatsync/internal/storage"
)

const (
	// DefaultRemoteKey identifies the shared record.
	DefaultRemoteKey = "wedding/seating_chart"

	// DefaultLocalKey identifies the local cache entry.
	DefaultLocalKey = "wedding_seating_data"

	// SaveFailedMessage is sent to the Notifier when a remote write fails.
	SaveFailedMessage = "Save failed, please check your network connection"
)

var (
	ErrNoLocalStore = errors.New("local store required")
	ErrStarted      = errors.New("engine already started")
	ErrNotReady     = errors.New("seating data not loaded yet")
)

// Mode is the backend the session is writing to.
type Mode int

const (
	ModeLocal Mode = iota
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}

// Operation is a snapshot transition, typically a closure over one of the
// seating package functions.
type Operation func(models.Snapshot) models.Snapshot

// Notifier shows a blocking notification to the user.
type Notifier interface {
	Alert(message string)
}

type discardNotifier struct{}

func (discardNotifier) Alert(string) {}

// Options configures an Engine.
type Options struct {
	// Local is the local persisted cache. Required.
	Local storage.Local

	// Remote is the shared record. Nil means no remote is configured.
	Remote storage.Remote

	// Defaults is adopted, and written back, when no persisted record exists.
	Defaults models.Snapshot

	RemoteKey string // default DefaultRemoteKey
	LocalKey  string // default DefaultLocalKey

	Notifier Notifier
	Logger   *slog.Logger
	Metrics  *Metrics
}

// Engine owns the live snapshot. It is safe for concurrent use.
type Engine struct {
	local     storage.Local
	remote    storage.Remote
	defaults  models.Snapshot
	remoteKey string
	localKey  string
	notifier  Notifier
	logger    *slog.Logger
	metrics   *Metrics

	mu       sync.RWMutex
	snapshot models.Snapshot
	mode     Mode
	adopted  bool
	seq      uint64

	listenMu     sync.Mutex
	listeners    map[int]func(models.Snapshot)
	nextListener int

	writeMu sync.Mutex
	written uint64
	writes  sync.WaitGroup

	started     atomic.Bool
	ready       chan struct{}
	readyOnce   sync.Once
	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

// New creates an Engine. Call Start before applying operations.
func New(opts Options) (*Engine, error) {
	if opts.Local == nil {
		return nil, ErrNoLocalStore
	}
	e := &Engine{
		local:     opts.Local,
		remote:    opts.Remote,
		defaults:  opts.Defaults.Clone(),
		remoteKey: opts.RemoteKey,
		localKey:  opts.LocalKey,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		listeners: make(map[int]func(models.Snapshot)),
		ready:     make(chan struct{}),
	}
	if e.remoteKey == "" {
		e.remoteKey = DefaultRemoteKey
	}
	if e.localKey == "" {
		e.localKey = DefaultLocalKey
	}
	if e.notifier == nil {
		e.notifier = discardNotifier{}
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(nil)
	}
	return e, nil
}

// Start chooses the backend and loads the first snapshot. With a remote it
// blocks until the first push has been adopted, the subscription has failed
// over to local mode, or ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrStarted
	}

	if e.remote == nil {
		e.logger.Info("No remote configured, using local cache", "key", e.localKey)
		e.loadLocal(ctx)
		return nil
	}

	e.mu.Lock()
	e.mode = ModeRemote
	e.mu.Unlock()
	e.metrics.setMode(ModeRemote)
	e.logger.Info("Subscribing to remote record", "key", e.remoteKey)

	watchCtx, cancel := context.WithCancel(context.Background())
	e.cancelWatch = cancel
	e.watchDone = make(chan struct{})
	go e.watch(watchCtx)

	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready is closed once the first snapshot has been adopted.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Mode returns the backend currently written to.
func (e *Engine) Mode() Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// Snapshot returns the live snapshot. Callers must treat it as read-only.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Apply runs op against the live snapshot, makes the result live at once,
// notifies listeners and writes the result out in the background.
func (e *Engine) Apply(name string, op Operation) (models.Snapshot, error) {
	e.mu.Lock()
	if !e.adopted {
		e.mu.Unlock()
		return models.Snapshot{}, ErrNotReady
	}
	next := op(e.snapshot)
	e.snapshot = next
	e.seq++
	seq, mode := e.seq, e.mode
	e.mu.Unlock()

	e.metrics.Operations.WithLabelValues(name).Inc()
	e.logger.Debug("Operation applied", "operation", name, "mode", mode.String(), "seq", seq)
	e.publish()
	e.persist(next, mode, seq, true)
	return next, nil
}

// OnChange registers fn to be called with the live snapshot after every
// change. fn must not call OnChange or the returned function.
func (e *Engine) OnChange(fn func(models.Snapshot)) func() {
	e.listenMu.Lock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	e.listenMu.Unlock()

	return func() {
		e.listenMu.Lock()
		delete(e.listeners, id)
		e.listenMu.Unlock()
	}
}

// Flush waits for every pending write to finish.
func (e *Engine) Flush() {
	e.writes.Wait()
}

// Close stops the remote subscription and waits for pending writes, or for
// ctx to be done. It does not close the stores.
func (e *Engine) Close(ctx context.Context) error {
	if e.cancelWatch != nil {
		e.cancelWatch()
		select {
		case <-e.watchDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	flushed := make(chan struct{})
	go func() {
		e.writes.Wait()
		close(flushed)
	}()
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) watch(ctx context.Context) {
	defer close(e.watchDone)

	err := e.remote.Watch(ctx, e.remoteKey, e.handlePush)
	if ctx.Err() != nil {
		return
	}
	if err == nil {
		err = errors.New("remote subscription ended")
	}
	e.downgrade(err)
}

func (e *Engine) handlePush(p storage.Push) {
	e.mu.Lock()
	if e.mode != ModeRemote {
		e.mu.Unlock()
		return
	}
	if p.Exists {
		e.snapshot = p.Snapshot
	} else {
		e.snapshot = e.defaults.Clone()
	}
	e.adopted = true
	e.seq++
	snap, seq := e.snapshot, e.seq
	e.mu.Unlock()

	if p.Exists {
		e.metrics.Pushes.WithLabelValues("true").Inc()
		if err := seating.Validate(snap); err != nil {
			e.logger.Warn("Remote snapshot violates invariants", "error", err)
		}
		e.logger.Debug("Remote snapshot adopted", "tables", len(snap.Tables), "guests", snap.GuestCount())
	} else {
		e.metrics.Pushes.WithLabelValues("false").Inc()
		e.logger.Info("Remote record missing, seeding defaults", "key", e.remoteKey)
		e.persist(snap, ModeRemote, seq, false)
	}

	e.publish()
	e.markReady()
}

// downgrade switches the session to local mode for good. A snapshot that is
// already live is kept and copied to the local cache; otherwise the cache is
// loaded as if no remote had been configured.
func (e *Engine) downgrade(cause error) {
	e.logger.Warn("Remote subscription failed, using local cache for this session", "error", cause)
	e.metrics.Downgrades.Inc()

	e.mu.Lock()
	e.mode = ModeLocal
	adopted := e.adopted
	var snap models.Snapshot
	var seq uint64
	if adopted {
		e.seq++
		snap, seq = e.snapshot, e.seq
	}
	e.mu.Unlock()
	e.metrics.setMode(ModeLocal)

	if !adopted {
		e.loadLocal(context.Background())
		return
	}
	e.persist(snap, ModeLocal, seq, false)
	e.publish()
}

func (e *Engine) loadLocal(ctx context.Context) {
	snap, ok, err := e.local.Load(ctx, e.localKey)
	if err != nil {
		// An unreadable cache may still hold data; only a missing or
		// malformed entry is replaced with defaults.
		e.logger.Warn("Failed to read local cache, using defaults", "key", e.localKey, "error", err)
		ok = false
	}
	if ok {
		if err := seating.Validate(snap); err != nil {
			e.logger.Warn("Cached snapshot violates invariants", "error", err)
		}
	} else {
		snap = e.defaults.Clone()
	}

	e.mu.Lock()
	e.mode = ModeLocal
	e.snapshot = snap
	e.adopted = true
	e.seq++
	seq := e.seq
	e.mu.Unlock()
	e.metrics.setMode(ModeLocal)

	if !ok && err == nil {
		e.logger.Info("Local cache empty, writing defaults", "key", e.localKey)
		e.persist(snap, ModeLocal, seq, false)
	}
	e.publish()
	e.markReady()
}

// persist writes snap in the background. Writes run one at a time; a write
// that finds a newer one already done is skipped.
func (e *Engine) persist(snap models.Snapshot, mode Mode, seq uint64, alert bool) {
	e.writes.Add(1)
	go func() {
		defer e.writes.Done()

		e.writeMu.Lock()
		defer e.writeMu.Unlock()
		if seq <= e.written {
			return
		}
		e.written = seq

		ctx := context.Background()
		backend := mode.String()
		var err error
		if mode == ModeRemote {
			err = e.remote.Save(ctx, e.remoteKey, snap)
		} else {
			err = e.local.Save(ctx, e.localKey, snap)
		}
		if err == nil {
			e.metrics.Writes.WithLabelValues(backend, "ok").Inc()
			return
		}

		e.metrics.Writes.WithLabelValues(backend, "error").Inc()
		if mode == ModeLocal {
			e.logger.Debug("Local save failed", "key", e.localKey, "error", err)
			return
		}
		e.logger.Error("Remote save failed", "key", e.remoteKey, "error", err)
		if alert {
			e.notifier.Alert(SaveFailedMessage)
		}
	}()
}

func (e *Engine) publish() {
	e.listenMu.Lock()
	defer e.listenMu.Unlock()
	snap := e.Snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}
}

func (e *Engine) markReady() {
	e.readyOnce.Do(func() { close(e.ready) })
}
