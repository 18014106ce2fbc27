// Package search resolves a free-text query to character records, first by
// exact API search and then by substring fallback over the name index.
package search

import (
	"context"
	"fmt"

	"github.com/mwiater/holonet/internal/index"
	"github.com/mwiater/holonet/internal/logging"
	"github.com/mwiater/holonet/internal/swapi"
	"go.uber.org/zap"
)

// Searcher runs an exact people search. *swapi.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]swapi.Character, error)
}

// Resolution is the outcome of resolving one query.
type Resolution struct {
	Query      string
	Characters []swapi.Character
	// Fallback is true when the exact search was empty and the name index was used.
	Fallback bool
	// Matched lists the index names the fallback searched for.
	Matched []string
}

// Empty reports whether nothing resolved.
func (r Resolution) Empty() bool { return len(r.Characters) == 0 }

// Resolver combines the remote exact search with a prebuilt name index.
type Resolver struct {
	searcher Searcher
	names    *index.NameIndex
}

// NewResolver returns a Resolver. names must be fully built; it is only read.
func NewResolver(searcher Searcher, names *index.NameIndex) *Resolver {
	return &Resolver{searcher: searcher, names: names}
}

// Resolve looks query up by exact search. When that returns nothing, every
// index name containing query (case-insensitively) is searched for exactly and
// all returned records are collected. Remote errors abort the resolution.
func (r *Resolver) Resolve(ctx context.Context, query string) (Resolution, error) {
	res := Resolution{Query: query}

	exact, err := r.searcher.Search(ctx, query)
	if err != nil {
		return res, fmt.Errorf("resolve %q: %w", query, err)
	}
	if len(exact) > 0 {
		res.Characters = exact
		return res, nil
	}

	res.Fallback = true
	if r.names == nil {
		return res, nil
	}
	res.Matched = r.names.Match(query)
	logging.Debug("substring fallback",
		zap.String("query", query),
		zap.Strings("matched", res.Matched))

	for _, name := range res.Matched {
		found, err := r.searcher.Search(ctx, name)
		if err != nil {
			return res, fmt.Errorf("resolve %q via %q: %w", query, name, err)
		}
		res.Characters = append(res.Characters, found...)
	}
	return res, nil
}
