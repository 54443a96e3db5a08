// Package pagination parses the list parameters of the catalog API.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params holds list parameters extracted from query strings. A zero Limit
// means no limit.
type Params struct {
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
}

// DefaultParams returns the full list in catalog order.
func DefaultParams() Params {
	return Params{Sort: SortAsc}
}

// FromRequest extracts list parameters from an HTTP request. Malformed values
// are returned as errors.
func FromRequest(r *http.Request) (Params, error) {
	p := DefaultParams()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 1 {
			return p, fmt.Errorf("limit must be a positive integer")
		}
		p.Limit = v
	}

	switch sort := r.URL.Query().Get("sort"); sort {
	case "", SortAsc:
	case SortDesc:
		p.Sort = SortDesc
	default:
		return p, fmt.Errorf("sort must be %q or %q", SortAsc, SortDesc)
	}

	return p, nil
}

// Apply returns items ordered and truncated per p. The input is not modified.
func Apply[T any](items []T, p Params) []T {
	out := make([]T, len(items))
	copy(out, items)

	if p.Sort == SortDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	if p.Limit > 0 && p.Limit < len(out) {
		out = out[:p.Limit]
	}
	return out
}
