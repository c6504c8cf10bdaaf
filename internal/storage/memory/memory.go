// Package memory provides an in-process store that satisfies both
// storage.Local and storage.Remote. It backs ephemeral sessions and tests,
// and can simulate other devices writing to the shared record.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/storage"
)

var (
	_ storage.Local  = (*Store)(nil)
	_ storage.Remote = (*Store)(nil)
)

// Store keeps encoded documents in memory, keyed like every other backend.
type Store struct {
	mu       sync.Mutex
	docs     map[string][]byte
	watchers map[*watcher]struct{}
	loadErr  error
	saveErr  error
	watchErr error
	saves    int
}

type watcher struct {
	key     string
	changed chan struct{}
	failed  chan error
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		docs:     make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
}

// Load returns the snapshot stored under key.
func (s *Store) Load(_ context.Context, key string) (models.Snapshot, bool, error) {
	s.mu.Lock()
	err := s.loadErr
	s.mu.Unlock()
	if err != nil {
		return models.Snapshot{}, false, err
	}
	return s.decoded(key)
}

func (s *Store) decoded(key string) (models.Snapshot, bool, error) {
	s.mu.Lock()
	data, ok := s.docs[key]
	s.mu.Unlock()
	if !ok {
		return models.Snapshot{}, false, nil
	}
	snapshot, ok := storage.Decode(data)
	return snapshot, ok, nil
}

// Save stores snapshot under key and notifies watchers of that key.
func (s *Store) Save(_ context.Context, key string, snapshot models.Snapshot) error {
	s.mu.Lock()
	err := s.saveErr
	s.mu.Unlock()
	if err != nil {
		return err
	}

	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	s.put(key, data, true)
	return nil
}

// Put writes snapshot under key as another device would.
func (s *Store) Put(key string, snapshot models.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	s.put(key, data, false)
	return nil
}

// PutRaw writes raw bytes under key, for exercising malformed documents.
func (s *Store) PutRaw(key string, data []byte) {
	s.put(key, append([]byte(nil), data...), false)
}

func (s *Store) put(key string, data []byte, counted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = data
	if counted {
		s.saves++
	}
	for w := range s.watchers {
		if w.key != key {
			continue
		}
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}
}

// Get returns the snapshot stored under key.
func (s *Store) Get(key string) (models.Snapshot, bool) {
	snapshot, ok, _ := s.decoded(key)
	return snapshot, ok
}

// Saves returns how many times Save has succeeded.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// FailLoads makes every later Load return err. A nil err restores loading.
func (s *Store) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSaves makes every later Save return err. A nil err restores saving.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailWatch ends every active Watch with err and makes later Watch calls
// fail immediately.
func (s *Store) FailWatch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchErr = err
	for w := range s.watchers {
		select {
		case w.failed <- err:
		default:
		}
	}
}

// Watch delivers the current document under key, then one push per change.
func (s *Store) Watch(ctx context.Context, key string, fn func(storage.Push)) error {
	w := &watcher{
		key:     key,
		changed: make(chan struct{}, 1),
		failed:  make(chan error, 1),
	}

	s.mu.Lock()
	if s.watchErr != nil {
		err := s.watchErr
		s.mu.Unlock()
		return err
	}
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.watchers, w)
		s.mu.Unlock()
	}()

	fn(s.current(key))
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.failed:
			return err
		case <-w.changed:
			fn(s.current(key))
		}
	}
}

func (s *Store) current(key string) storage.Push {
	snapshot, ok := s.Get(key)
	return storage.Push{Snapshot: snapshot, Exists: ok}
}

// Close is a no-op; the documents stay readable.
func (s *Store) Close() error {
	return nil
}
