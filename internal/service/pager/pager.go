// Package pager provides offset based pagination over a counted collection.
package pager

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pager defines the paging window of a collection holding Count items.
type Pager struct {
	Count  int
	Limit  int
	Offset int
}

// New initializes a Pager and normalizes its attributes.
//
// A non-positive limit falls back to DefaultLimit and a limit above MaxLimit is cut to MaxLimit.
// A negative offset becomes 0, an offset past the end moves to the start of the last page.
func New(count, limit, offset int) *Pager {
	if count < 0 {
		count = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= count && count > 0 {
		offset = ((count - 1) / limit) * limit
	}
	if count == 0 {
		offset = 0
	}
	return &Pager{Count: count, Limit: limit, Offset: offset}
}

// Low returns the zero-based index of the first item on the page.
func (p *Pager) Low() int {
	return p.Offset
}

// High returns the exclusive upper bound of the page.
func (p *Pager) High() int {
	high := p.Low() + p.Limit
	if high > p.Count {
		return p.Count
	}
	return high
}

// First returns the one-based index of the first item on the page, 0 when the page is empty.
func (p *Pager) First() int {
	if p.High() == 0 {
		return 0
	}
	return p.Low() + 1
}

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool {
	return p.Low() != 0
}

// HasNext reports whether a next page exists.
func (p *Pager) HasNext() bool {
	return p.High() != p.Count
}

// Next moves the window one page forward.
func (p *Pager) Next() {
	if !p.HasNext() {
		return
	}
	p.Offset += p.Limit
}

// Prev moves the window one page back.
func (p *Pager) Prev() {
	if !p.HasPrev() {
		return
	}
	p.Offset -= p.Limit
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// NextOffset returns the offset of the following page.
func (p *Pager) NextOffset() int {
	if !p.HasNext() {
		return p.Offset
	}
	return p.Offset + p.Limit
}

// PrevOffset returns the offset of the preceding page.
func (p *Pager) PrevOffset() int {
	off := p.Offset - p.Limit
	if off < 0 {
		return 0
	}
	return off
}

// Added accounts for an item created outside of the fetched window.
func (p *Pager) Added() {
	p.Count++
}

// Removed accounts for an item deleted from the collection.
func (p *Pager) Removed() {
	if p.Count > 0 {
		p.Count--
	}
}
