package dashboard

import (
	"sync"
	"time"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

// pendingSet holds the unreconciled mutations of one session.
type pendingSet struct {
	created []Pending
	deleted []Pending
}

// PendingStore keeps unreconciled mutations in memory keyed by session ID, so that sessions
// sealed into cookies stay small regardless of the length of created URLs.
type PendingStore struct {
	mu       sync.Mutex
	sessions map[string]*pendingSet
	now      func() time.Time
}

// NewPendingStore initializes a PendingStore object and sets its attributes.
func NewPendingStore(now func() time.Time) *PendingStore {
	if now == nil {
		now = time.Now
	}
	return &PendingStore{
		sessions: make(map[string]*pendingSet),
		now:      now,
	}
}

// Created remembers a link created within a session until the backend lists it.
func (s *PendingStore) Created(session string, link modellink.Link) {
	if session == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	set := s.set(session)
	set.created = append([]Pending{{Link: link, At: now}}, set.created...)
	if len(set.created) > MaxPending {
		set.created = set.created[:MaxPending]
	}
}

// Deleted remembers a link deleted within a session until the backend stops listing it.
func (s *PendingStore) Deleted(session, short string) {
	if session == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	set := s.set(session)
	for i, c := range set.created {
		if c.Link.Short == short {
			set.created = append(set.created[:i], set.created[i+1:]...)
			break
		}
	}
	set.deleted = append([]Pending{{Link: modellink.Link{Short: short}, At: now}}, set.deleted...)
	if len(set.deleted) > MaxPending {
		set.deleted = set.deleted[:MaxPending]
	}
}

// Reconcile applies the pending mutations of a session to a freshly fetched page.
func (s *PendingStore) Reconcile(session string, v *ListView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sessions[session]
	if !ok {
		return
	}
	set.created, set.deleted = v.Reconcile(set.created, set.deleted, s.now())
	if len(set.created) == 0 && len(set.deleted) == 0 {
		delete(s.sessions, session)
	}
}

// Forget drops every pending mutation of a session.
func (s *PendingStore) Forget(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

// Len returns the number of sessions having pending mutations.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *PendingStore) set(session string) *pendingSet {
	set, ok := s.sessions[session]
	if !ok {
		set = &pendingSet{}
		s.sessions[session] = set
	}
	return set
}

// sweep drops sessions whose mutations are all past their grace period.
func (s *PendingStore) sweep(now time.Time) {
	for id, set := range s.sessions {
		if allExpired(set.created, now) && allExpired(set.deleted, now) {
			delete(s.sessions, id)
		}
	}
}

func allExpired(pending []Pending, now time.Time) bool {
	for _, p := range pending {
		if !p.Expired(now) {
			return false
		}
	}
	return true
}
