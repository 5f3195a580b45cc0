// Package backend provides interfaces for types to be in compliance with.
package backend

import (
	"context"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

// UserGetter defines a set of methods for types implementing UserGetter.
type UserGetter interface {
	User(ctx context.Context) (*modellink.User, error)
}

// LinkLister defines a set of methods for types implementing LinkLister.
type LinkLister interface {
	ListLinks(ctx context.Context, limit, offset int) ([]modellink.Link, error)
	CountLinks(ctx context.Context) (int, error)
}

// LinkEditor defines a set of methods for types implementing LinkEditor.
type LinkEditor interface {
	CreateLink(ctx context.Context, long string) (*modellink.Link, error)
	DeleteLink(ctx context.Context, short string) error
}

// StatsGetter defines a set of methods for types implementing StatsGetter.
type StatsGetter interface {
	Stats(ctx context.Context, short string) (*modellink.Statistics, error)
}

// API defines a set of embedded interfaces for types implementing API.
type API interface {
	UserGetter
	LinkLister
	LinkEditor
	StatsGetter
}
