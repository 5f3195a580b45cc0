package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name                  string
		count, limit, offset  int
		wantLimit, wantOffset int
		wantLow, wantHigh     int
		wantPrev, wantNext    bool
	}{
		{"first page", 45, 20, 0, 20, 0, 0, 20, false, true},
		{"middle page", 45, 20, 20, 20, 20, 20, 40, true, true},
		{"last page", 45, 20, 40, 20, 40, 40, 45, true, false},
		{"default limit", 45, 0, 0, 20, 0, 0, 20, false, true},
		{"limit cut", 500, 1000, 0, 100, 0, 0, 100, false, true},
		{"negative offset", 45, 20, -5, 20, 0, 0, 20, false, true},
		{"offset past the end", 45, 20, 90, 20, 40, 40, 45, true, false},
		{"exact multiple past the end", 40, 20, 40, 20, 20, 20, 40, true, false},
		{"empty", 0, 20, 10, 20, 0, 0, 0, false, false},
		{"single page", 5, 20, 0, 20, 0, 0, 5, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.count, tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
			assert.Equal(t, tt.wantLow, p.Low())
			assert.Equal(t, tt.wantHigh, p.High())
			assert.Equal(t, tt.wantPrev, p.HasPrev())
			assert.Equal(t, tt.wantNext, p.HasNext())
		})
	}
}

func TestPager_NextPrev(t *testing.T) {
	p := New(45, 20, 0)
	p.Prev()
	assert.Equal(t, 0, p.Offset)
	p.Next()
	assert.Equal(t, 20, p.Offset)
	p.Next()
	assert.Equal(t, 40, p.Offset)
	p.Next()
	assert.Equal(t, 40, p.Offset)
	p.Prev()
	p.Prev()
	assert.Equal(t, 0, p.Offset)
}

func TestPager_Offsets(t *testing.T) {
	p := New(45, 20, 20)
	assert.Equal(t, 40, p.NextOffset())
	assert.Equal(t, 0, p.PrevOffset())
	p = New(45, 20, 40)
	assert.Equal(t, 40, p.NextOffset())
	p = &Pager{Count: 45, Limit: 20, Offset: 5}
	assert.Equal(t, 0, p.PrevOffset())
}

func TestPager_AddedRemoved(t *testing.T) {
	p := New(20, 20, 0)
	assert.False(t, p.HasNext())
	p.Added()
	assert.Equal(t, 21, p.Count)
	assert.True(t, p.HasNext())
	p.Removed()
	p.Removed()
	assert.Equal(t, 19, p.Count)
	assert.Equal(t, 19, p.High())

	empty := New(0, 20, 0)
	empty.Removed()
	assert.Equal(t, 0, empty.Count)
}

func TestPager_First(t *testing.T) {
	assert.Equal(t, 0, New(0, 20, 0).First())
	assert.Equal(t, 1, New(5, 20, 0).First())
	assert.Equal(t, 21, New(45, 20, 20).First())
}
