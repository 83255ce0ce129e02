package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irbrowse/core/internal/pkg/apperr"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Params holds a single windowing request.
type Params struct {
	Filter  string
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// Paginated is one window of an ordered collection.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Offset     int   `json:"offset"`
}

// Source is the capability a collection must provide to be paginated.
// orderBy is a resolved column expression, not a client-supplied name.
type Source[T any] interface {
	Count(filter string) (int64, error)
	FetchSlice(filter, orderBy string, desc bool, limit, offset int) ([]T, error)
}

// SortSpec maps client-facing sort field names onto column expressions.
// Default is used when no field is requested.
type SortSpec struct {
	Default string
	Fields  map[string]string
}

// Resolve validates a client-supplied sort field against the allow-list.
func (s SortSpec) Resolve(field string) (string, error) {
	if field == "" {
		return s.Default, nil
	}
	col, ok := s.Fields[field]
	if !ok {
		return "", apperr.E(apperr.KindInvalidSortField, fmt.Sprintf("unknown sort field %q", field))
	}
	return col, nil
}

// Page windows src according to p. An offset past the end of the collection
// yields empty items with the correct total, never an error.
func Page[T any](src Source[T], sort SortSpec, p Params) (Paginated[T], error) {
	orderBy, err := sort.Resolve(p.OrderBy)
	if err != nil {
		return Paginated[T]{}, err
	}

	if p.Limit < 1 {
		p.Limit = DefaultSize
	}
	if p.Limit > MaxSize {
		p.Limit = MaxSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	total, err := src.Count(p.Filter)
	if err != nil {
		return Paginated[T]{}, err
	}

	items := []T{}
	if int64(p.Offset) < total {
		items, err = src.FetchSlice(p.Filter, orderBy, p.Desc, p.Limit, p.Offset)
		if err != nil {
			return Paginated[T]{}, err
		}
	}

	return Paginated[T]{Items: items, TotalCount: total, Offset: p.Offset}, nil
}

// FromContext extracts windowing parameters from the request query string.
// Values are not clamped here; Page normalizes them.
func FromContext(c *gin.Context) Params {
	limit := parseIntOr(c.DefaultQuery("num_results", strconv.Itoa(DefaultSize)), DefaultSize)
	offset := parseIntOr(c.DefaultQuery("offset", "0"), 0)

	return Params{
		Filter:  c.Query("match"),
		OrderBy: c.Query("order_by"),
		Desc:    c.Query("desc") == "true" || c.Query("desc") == "1",
		Limit:   limit,
		Offset:  offset,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
