package catalog

import (
	"context"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
)

// Status is the state of a catalog query as rendered by the UI.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Query tracks one catalog load: it starts loading and settles once into
// success or error. Refetch starts a new load.
type Query struct {
	Status   Status
	Products []domain.Product
	Err      error
}

// NewQuery returns a query in the loading state.
func NewQuery() Query {
	return Query{Status: StatusLoading}
}

// Run performs the fetch and returns the settled query.
func Run(ctx context.Context, f Fetcher) Query {
	products, err := f.FetchProducts(ctx)
	if err != nil {
		return Query{Status: StatusError, Err: err}
	}
	return Query{Status: StatusSuccess, Products: products}
}

// Settled reports whether the query left the loading state.
func (q Query) Settled() bool {
	return q.Status != StatusLoading
}
