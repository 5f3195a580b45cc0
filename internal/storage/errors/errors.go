// Package errors provides custom errors for types implementing AuditWriter, AuditReader and AuditStorage interfaces.
package errors

import (
	"fmt"
)

type (
	StorageAlreadyExistsError struct {
		ID string
	}
	ContextTimeoutExceededError struct {
	}
	StatementPSQLError struct {
		Msg string
		Err error
	}
	StorageFileWriteError struct {
		Err error
	}
	StorageRestoreError struct {
		Line int
		Err  error
	}
)

func (e StorageAlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.ID)
}

func (e ContextTimeoutExceededError) Error() string {
	return "context timeout exceeded"
}

func (e StorageFileWriteError) Error() string {
	return fmt.Sprintf("add to file error: %s", e.Err)
}

func (e StorageFileWriteError) Unwrap() error {
	return e.Err
}

func (e StatementPSQLError) Error() string {
	return fmt.Sprintf("%s could not execute: %s", e.Msg, e.Err)
}

func (e StatementPSQLError) Unwrap() error {
	return e.Err
}

func (e StorageRestoreError) Error() string {
	return fmt.Sprintf("could not restore line %d: %s", e.Line, e.Err)
}

func (e StorageRestoreError) Unwrap() error {
	return e.Err
}
