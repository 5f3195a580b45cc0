// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

// AuditWriter defines a set of methods for types implementing AuditWriter.
type AuditWriter interface {
	Dump(ctx context.Context, entry modelstorage.AuditEntry) error
}

// AuditReader defines a set of methods for types implementing AuditReader.
type AuditReader interface {
	Retrieve(ctx context.Context, limit, offset int) ([]modelstorage.AuditEntry, error)
	Count(ctx context.Context) (int, error)
}

// AuditStorage defines a set of embedded interfaces for types implementing AuditStorage.
type AuditStorage interface {
	AuditWriter
	AuditReader
	PingDB(ctx context.Context) error
	CloseDB() error
}
