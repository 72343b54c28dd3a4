package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/rs/zerolog"
)

// DefaultMaxPages bounds pagination against an upstream that never returns an empty page.
const DefaultMaxPages = 1000

// Page is a single upstream page.
// Children are nested items returned inline with Items (e.g. comment replies),
// they are collected separately and never advance the cursor.
type Page[T any] struct {
	Items    []T
	Children []T
}

// PageFetcher fetches the page older than cursor. An empty cursor requests the first page.
type PageFetcher[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Paginator walks a descending, "older than last seen ID" cursor until an empty page.
type Paginator[T any] struct {
	Fetch PageFetcher[T]
	// CursorOf returns the cursor value of an item, usually its ID.
	CursorOf func(item T) string
	// MaxPages caps the number of non-empty pages, 0 means DefaultMaxPages.
	// The empty page ending the walk is not counted.
	MaxPages int
	Logger   *zerolog.Logger
	// Op names the fetched resource in errors and logs.
	Op string
}

// FetchAll returns all items followed by all children, in fetch order.
// Any page failure aborts the walk with an *lib.UpstreamError and no partial result.
func (p *Paginator[T]) FetchAll(ctx context.Context) ([]T, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var items, children []T
	cursor := ""

	for pages := 0; ; pages++ {
		if err := ctx.Err(); err != nil {
			return nil, &lib.UpstreamError{Op: p.Op, Err: err}
		}

		page, err := p.Fetch(ctx, cursor)
		if err != nil {
			var upstreamErr *lib.UpstreamError
			if errors.As(err, &upstreamErr) {
				return nil, err
			}
			return nil, &lib.UpstreamError{Op: p.Op, Err: err}
		}

		p.logger().Debug().
			Str("op", p.Op).
			Int("page", pages+1).
			Str("cursor", cursor).
			Int("items", len(page.Items)).
			Int("children", len(page.Children)).
			Msg("Fetched page")

		if len(page.Items) == 0 {
			break
		}

		if pages >= maxPages {
			return nil, &lib.UpstreamError{
				Op:  p.Op,
				Err: fmt.Errorf("%w: more than %d non-empty pages", lib.ErrPageLimit, maxPages),
			}
		}

		items = append(items, page.Items...)
		children = append(children, page.Children...)
		cursor = p.CursorOf(items[len(items)-1])
	}

	out := make([]T, 0, len(items)+len(children))
	out = append(out, items...)
	out = append(out, children...)
	return out, nil
}

func (p *Paginator[T]) logger() *zerolog.Logger {
	if p.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return p.Logger
}
