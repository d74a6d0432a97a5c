// Package pagination normalizes page and limit inputs, from tool arguments
// or URL query strings, and calculates offsets. Defaults can be adjusted
// with functional options.
package pagination

import (
	"net/url"
	"strconv"
)

// Params represents normalized pagination parameters.
type Params struct {
	Page   int // Current page number (1-based)
	Limit  int // Number of items per page
	Offset int // Offset of the first item on the page
}

const (
	// MaxLimit is the maximum number of items allowed per page
	MaxLimit = 100
	// DefaultPage is the default page number when not specified
	DefaultPage = 1
	// DefaultLimit is the default number of items per page when not specified
	DefaultLimit = 20
)

// calculateOffset computes the offset for a given page and limit.
// It ensures page is at least 1 to avoid negative offsets.
func calculateOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

type config struct {
	defaultLimit int
	maxLimit     int
}

// Option configures how parameters are normalized.
type Option func(*config)

// WithDefaultLimit sets the limit used when none is given.
// The limit is only applied if it's greater than 0.
func WithDefaultLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.defaultLimit = limit
		}
	}
}

// WithMaxLimit lowers or raises the cap on the limit.
func WithMaxLimit(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxLimit = limit
		}
	}
}

// New normalizes a page and limit. Non-positive values fall back to the
// defaults and the limit is capped.
func New(page, limit int, opts ...Option) Params {
	cfg := config{defaultLimit: DefaultLimit, maxLimit: MaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.defaultLimit > cfg.maxLimit {
		cfg.defaultLimit = cfg.maxLimit
	}

	params := Params{Page: DefaultPage, Limit: cfg.defaultLimit}
	if page > 0 {
		params.Page = page
	}
	if limit > 0 {
		params.Limit = limit
	}

	// enforce max limit
	if params.Limit > cfg.maxLimit {
		params.Limit = cfg.maxLimit
	}

	params.Offset = calculateOffset(params.Page, params.Limit)
	return params
}

// Limit normalizes a bare limit, for operations without pages.
func Limit(limit int, opts ...Option) int {
	return New(DefaultPage, limit, opts...).Limit
}

// FromQuery extracts pagination parameters from URL query values.
// Unparseable values are ignored.
func FromQuery(q url.Values, opts ...Option) Params {
	var page, limit int
	if pageStr := q.Get("page"); pageStr != "" {
		if val, err := strconv.Atoi(pageStr); err == nil {
			page = val
		}
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil {
			limit = val
		}
	}
	return New(page, limit, opts...)
}

// HasNext determines if there are more items available after the current page.
// It returns true when the offset plus limit is less than the total count.
func HasNext(offset, limit, count int) bool {
	return (offset + limit) < count
}
