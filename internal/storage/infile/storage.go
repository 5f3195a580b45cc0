// Package infile provides functionality for dumping/retrieving audit entries to/from a JSON lines file.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
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
	mu      sync.RWMutex
	path    string
	DB      []modelstorage.AuditEntry
	IDs     map[string]struct{}
	file    *os.File
	Encoder *json.Encoder
	log     *zap.Logger
}

// InitStorage initializes a Storage object, restores the journal from file and starts a listener closing
// the file on ctx cancellation.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	st := &Storage{
		path: cfg.FileStoragePath,
		DB:   make([]modelstorage.AuditEntry, 0),
		IDs:  make(map[string]struct{}),
		log:  log,
	}
	if err := st.restore(); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(st.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	st.file = file
	st.Encoder = json.NewEncoder(file)
	// listen for ctx cancellation followed by file storage closure,
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			log.Error("closing journal file", zap.Error(err))
			return
		}
		log.Info("journal file closed successfully")
	}()
	return st, nil
}

// Dump appends an entry to the journal and to the file.
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
		if err := s.Encoder.Encode(entry); err != nil {
			dumpError <- errors.StorageFileWriteError{Err: err}
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

// restore fills the in-memory journal with entries from file storage.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	reader := bufio.NewScanner(file)
	line := 0
	for reader.Scan() {
		line++
		if len(reader.Bytes()) == 0 {
			continue
		}
		var entry modelstorage.AuditEntry
		if err := json.Unmarshal(reader.Bytes(), &entry); err != nil {
			return errors.StorageRestoreError{Line: line, Err: err}
		}
		if _, ok := s.IDs[entry.ID]; ok {
			continue
		}
		s.IDs[entry.ID] = struct{}{}
		s.DB = append(s.DB, entry)
	}
	if err := reader.Err(); err != nil {
		return err
	}
	s.log.Info("journal was restored", zap.String("path", s.path), zap.Int("entries", len(s.DB)))
	return nil
}

// PingDB is a mock for PSQL DB pinger for infile DB handling.
func (s *Storage) PingDB(ctx context.Context) error {
	return nil
}

// CloseDB closes the journal file, subsequent calls are no-ops.
func (s *Storage) CloseDB() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
