// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import "time"

// Action names a journaled dashboard mutation.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// AuditEntry is one record of the dashboard journal.
type AuditEntry struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	Short      string    `json:"short"`
	Long       string    `json:"long,omitempty"`
	User       string    `json:"user"`
	Browser    string    `json:"browser,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	RemoteAddr string    `json:"remoteAddr,omitempty"`
	At         time.Time `json:"at"`
}

// Page returns a window of entries stored in insertion order, newest first.
func Page(entries []AuditEntry, limit, offset int) []AuditEntry {
	res := make([]AuditEntry, 0)
	if limit <= 0 || offset < 0 {
		return res
	}
	for i := len(entries) - 1 - offset; i >= 0 && len(res) < limit; i-- {
		res = append(res, entries[i])
	}
	return res
}
