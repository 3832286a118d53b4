// Package pagination provides offset pagination for history listings.
package pagination

const (
	// DefaultLimit is used when the caller does not send a limit
	DefaultLimit = 50
	// MaxLimit caps the page size
	MaxLimit = 500
)

// Params holds the requested window
type Params struct {
	Limit  int
	Offset int
}

// Normalize clamps the window to sane values
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// FetchLimit is the number of rows to read: one more than the page so the
// caller can tell whether another page exists.
func (p Params) FetchLimit() uint64 {
	return uint64(p.Limit + 1)
}

// Page is one window of a listing
type Page[T any] struct {
	Items   []T  `json:"items"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// NewPage trims rows read with FetchLimit into a page
func NewPage[T any](rows []T, p Params) *Page[T] {
	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{
		Items:   rows,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: hasMore,
	}
}
