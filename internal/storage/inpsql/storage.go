// Package inpsql provides functionality for dumping/retrieving audit entries to/from a PostgreSQL database.
package inpsql

import (
	"context"
	"embed"
	stdErrors "errors"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Check interface implementation explicitly
var (
	_ storage.AuditStorage = (*Storage)(nil)
)

const (
	insertEntry = `INSERT INTO audit_entries (id, action, short_url, long_url, user_name, browser, platform, remote_addr, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	selectEntries = `SELECT id, action, short_url, long_url, user_name, browser, platform, remote_addr, at
		FROM audit_entries ORDER BY at DESC, seq DESC LIMIT $1 OFFSET $2`
	countEntries = `SELECT count(*) FROM audit_entries`
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	DB  *pgxpool.Pool
	log *zap.Logger
}

// InitStorage initializes a Storage object, applies migrations and starts a listener closing the pool
// on ctx cancellation.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := pgxpool.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := &Storage{DB: db, log: log}
	if err = st.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		_ = st.CloseDB()
		log.Info("PSQL DB connection closed successfully")
	}()
	return st, nil
}

// migrate brings the schema up to date.
func (s *Storage) migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDB(*s.DB.Config().ConnConfig)
	defer sqlDB.Close()
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return errors.StatementPSQLError{Msg: "migrations", Err: err}
	}
	return nil
}

// Dump inserts an entry into the journal table.
func (s *Storage) Dump(ctx context.Context, entry modelstorage.AuditEntry) error {
	_, err := s.DB.Exec(ctx, insertEntry,
		entry.ID, string(entry.Action), entry.Short, entry.Long, entry.User,
		entry.Browser, entry.Platform, entry.RemoteAddr, entry.At)
	if err != nil {
		var pgErr *pgconn.PgError
		if stdErrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errors.StorageAlreadyExistsError{ID: entry.ID}
		}
		if ctx.Err() != nil {
			return errors.ContextTimeoutExceededError{}
		}
		s.log.Error("dumping audit entry", zap.Error(err))
		return errors.StatementPSQLError{Msg: "insert", Err: err}
	}
	return nil
}

// Retrieve returns a page of entries, newest first.
func (s *Storage) Retrieve(ctx context.Context, limit, offset int) ([]modelstorage.AuditEntry, error) {
	entries := make([]modelstorage.AuditEntry, 0)
	if limit <= 0 || offset < 0 {
		return entries, nil
	}
	rows, err := s.DB.Query(ctx, selectEntries, limit, offset)
	if err != nil {
		return nil, s.wrap(ctx, "select", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			entry  modelstorage.AuditEntry
			action string
		)
		err = rows.Scan(&entry.ID, &action, &entry.Short, &entry.Long, &entry.User,
			&entry.Browser, &entry.Platform, &entry.RemoteAddr, &entry.At)
		if err != nil {
			return nil, s.wrap(ctx, "scan", err)
		}
		entry.Action = modelstorage.Action(action)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, s.wrap(ctx, "select", err)
	}
	return entries, nil
}

// Count returns the number of journaled entries.
func (s *Storage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, countEntries).Scan(&count); err != nil {
		return 0, s.wrap(ctx, "count", err)
	}
	return count, nil
}

// PingDB checks the database connection.
func (s *Storage) PingDB(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

// CloseDB closes the connection pool.
func (s *Storage) CloseDB() error {
	s.DB.Close()
	return nil
}

func (s *Storage) wrap(ctx context.Context, msg string, err error) error {
	if ctx.Err() != nil {
		return errors.ContextTimeoutExceededError{}
	}
	s.log.Error("querying audit entries", zap.String("statement", msg), zap.Error(err))
	return errors.StatementPSQLError{Msg: msg, Err: err}
}
