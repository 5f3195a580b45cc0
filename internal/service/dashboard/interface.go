// Package dashboard provides interfaces and view models of the administration dashboard.
package dashboard

import (
	"context"
	"time"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/charts"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/pager"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

// PendingGrace bounds how long a mutation may wait for the backend list to reflect it.
const PendingGrace = 2 * time.Minute

// MaxPending limits the number of unreconciled mutations kept per session.
const MaxPending = 10

// Actor describes who performs a mutation.
type Actor struct {
	Name       string
	UserAgent  string
	RemoteAddr string
}

// LinkView is a link together with its full short URL.
type LinkView struct {
	modellink.Link
	ShortURL string
}

// ListView is one page of the link list.
type ListView struct {
	Links  []LinkView
	Pager  *pager.Pager
	Prefix string
}

// StatsView holds the statistics of one link and the charts built from them.
type StatsView struct {
	Stats    *modellink.Statistics
	Charts   *charts.Set
	ShortURL string
}

// Pending is a mutation made through the dashboard that the backend list may not reflect yet.
type Pending struct {
	Link modellink.Link
	At   time.Time
}

// Expired reports whether the grace period of the mutation is over.
func (p Pending) Expired(now time.Time) bool {
	return now.Sub(p.At) > PendingGrace
}

// JournalView is one page of the audit journal.
type JournalView struct {
	Entries []modelstorage.AuditEntry
	Pager   *pager.Pager
}

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	CurrentUser(ctx context.Context) (*modellink.User, error)
	Page(ctx context.Context, offset int, prefix string) (*ListView, error)
	Create(ctx context.Context, actor Actor, long string) (*modellink.Link, error)
	Delete(ctx context.Context, actor Actor, short string) error
	Stats(ctx context.Context, short string, prefix string) (*StatsView, error)
	Journal(ctx context.Context, offset int) (*JournalView, error)
	Ping(ctx context.Context) error
}

// Contains reports whether the page lists short.
func (v *ListView) Contains(short string) bool {
	for _, l := range v.Links {
		if l.Short == short {
			return true
		}
	}
	return false
}

// Added prepends a freshly created link unless the page already lists it.
// It returns false once the page lists the link, meaning nothing is left to reconcile.
func (v *ListView) Added(link modellink.Link) bool {
	if v.Contains(link.Short) {
		return false
	}
	if v.Pager.Offset != 0 {
		return true
	}
	v.Links = append([]LinkView{{Link: link, ShortURL: v.Prefix + link.Short}}, v.Links...)
	v.Pager.Added()
	return true
}

// Removed drops a deleted link the page still lists.
// It returns false when the page does not list the link, meaning nothing is left to reconcile.
func (v *ListView) Removed(short string) bool {
	for i, l := range v.Links {
		if l.Short == short {
			v.Links = append(v.Links[:i], v.Links[i+1:]...)
			v.Pager.Removed()
			return true
		}
	}
	return false
}

// Reconcile applies mutations the backend may not reflect yet and returns those still pending.
// Mutations older than PendingGrace are dropped unapplied: a created link the backend still
// does not list by then is gone, and so is a deleted link it keeps listing.
func (v *ListView) Reconcile(created, deleted []Pending, now time.Time) ([]Pending, []Pending) {
	keptCreated := make([]Pending, 0, len(created))
	// apply the oldest first so that the newest ends up on top
	for i := len(created) - 1; i >= 0; i-- {
		if created[i].Expired(now) {
			continue
		}
		if v.Added(created[i].Link) {
			keptCreated = append([]Pending{created[i]}, keptCreated...)
		}
	}
	keptDeleted := make([]Pending, 0, len(deleted))
	for _, p := range deleted {
		if p.Expired(now) {
			continue
		}
		if v.Removed(p.Link.Short) {
			keptDeleted = append(keptDeleted, p)
		}
	}
	return keptCreated, keptDeleted
}
