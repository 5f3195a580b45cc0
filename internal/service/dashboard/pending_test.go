package dashboard

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func TestPendingStore_Created(t *testing.T) {
	c := &clock{t: now}
	s := NewPendingStore(c.now)
	for i := 0; i < MaxPending+2; i++ {
		s.Created("sid", modellink.Link{Short: "s" + strconv.Itoa(i)})
	}
	s.Created("", modellink.Link{Short: "ignored"})
	assert.Equal(t, 1, s.Len())

	v := newView(0, "b", "a")
	s.Reconcile("sid", v)
	assert.Len(t, v.Links, MaxPending+2)
	assert.Equal(t, "s11", v.Links[0].Short)
	assert.Equal(t, "s2", v.Links[MaxPending-1].Short)

	v = newView(0, "b", "a")
	s.Reconcile("other", v)
	assert.Equal(t, []string{"b", "a"}, shorts(v))
}

func TestPendingStore_Deleted(t *testing.T) {
	s := NewPendingStore((&clock{t: now}).now)
	s.Created("sid", modellink.Link{Short: "c"})
	s.Deleted("sid", "c")
	s.Deleted("sid", "a")

	v := newView(0, "b", "a")
	s.Reconcile("sid", v)
	assert.Equal(t, []string{"b"}, shorts(v))
	assert.Equal(t, 1, v.Pager.Count)

	// the backend stopped listing the deleted link, nothing is left to reconcile
	s.Reconcile("sid", newView(0, "b"))
	assert.Equal(t, 0, s.Len())
}

func TestPendingStore_Expiry(t *testing.T) {
	c := &clock{t: now}
	s := NewPendingStore(c.now)
	s.Created("stale", modellink.Link{Short: "gone"})

	c.t = now.Add(PendingGrace + time.Second)
	v := newView(0, "b", "a")
	s.Reconcile("stale", v)
	assert.Equal(t, []string{"b", "a"}, shorts(v))
	assert.Equal(t, 0, s.Len())

	s.Created("stale", modellink.Link{Short: "gone"})
	c.t = c.t.Add(PendingGrace + time.Second)
	s.Created("fresh", modellink.Link{Short: "new"})
	assert.Equal(t, 1, s.Len())

	s.Forget("fresh")
	assert.Equal(t, 0, s.Len())
}
