// Package inmemory provides functionality for dumping/retrieving audit entries to/from local
// storage implemented as a slice.
package inmemory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.AuditStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu  sync.RWMutex
	DB  []modelstorage.AuditEntry
	IDs map[string]struct{}
	log *zap.Logger
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage(log *zap.Logger) *Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storage{
		DB:  make([]modelstorage.AuditEntry, 0),
		IDs: make(map[string]struct{}),
		log: log,
	}
}

// Dump appends an entry to the journal.
func (s *Storage) Dump(ctx context.Context, entry modelstorage.AuditEntry) error {
	// create channels for listening to the go routine result
	dumpDone := make(chan struct{}, 1)
	dumpError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.IDs[entry.ID]; ok {
			dumpError <- errors.StorageAlreadyExistsError{ID: entry.ID}
			return
		}
		s.IDs[entry.ID] = struct{}{}
		s.DB = append(s.DB, entry)
		dumpDone <- struct{}{}
	}()

	// wait for the first channel to retrieve a value
	select {
	case <-ctx.Done():
		s.log.Warn("dumping audit entry", zap.Error(ctx.Err()))
		return errors.ContextTimeoutExceededError{}
	case err := <-dumpError:
		s.log.Warn("dumping audit entry", zap.Error(err))
		return err
	case <-dumpDone:
		s.log.Debug("dumped audit entry", zap.String("id", entry.ID), zap.String("action", string(entry.Action)))
		return nil
	}
}

// Retrieve returns a page of entries, newest first.
func (s *Storage) Retrieve(ctx context.Context, limit, offset int) ([]modelstorage.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ContextTimeoutExceededError{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return modelstorage.Page(s.DB, limit, offset), nil
}

// Count returns the number of journaled entries.
func (s *Storage) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.ContextTimeoutExceededError{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.DB), nil
}

// PingDB is a mock for PSQL DB pinger for inmemory DB handling.
func (s *Storage) PingDB(ctx context.Context) error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for inmemory DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
