package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/holonet/internal/enrich"
	"github.com/mwiater/holonet/internal/swapi"
)

// ErrAllFailed is returned when characters resolved but none could be enriched.
var ErrAllFailed = errors.New("every resolved character failed enrichment")

// Outcome is the sorted, enriched answer to one query.
type Outcome struct {
	Query    string
	Fallback bool
	Raw      []swapi.Character
	Results  []enrich.Result
	Failures []enrich.Failure
}

// NotFound reports the "no results" outcome: nothing resolved at all.
func (o Outcome) NotFound() bool {
	return len(o.Results) == 0 && len(o.Failures) == 0
}

// Pipeline runs resolve, enrich and sort for a query.
type Pipeline struct {
	resolver *Resolver
	enricher *enrich.Enricher
}

// NewPipeline returns a Pipeline over resolver and enricher.
func NewPipeline(resolver *Resolver, enricher *enrich.Enricher) *Pipeline {
	return &Pipeline{resolver: resolver, enricher: enricher}
}

// Run resolves query, enriches every character (skipping ones that fail) and
// returns the results sorted by name. A resolution error, or a resolution
// whose every character failed enrichment, is returned as an error.
func (p *Pipeline) Run(ctx context.Context, query string) (Outcome, error) {
	res, err := p.resolver.Resolve(ctx, query)
	out := Outcome{Query: query, Fallback: res.Fallback}
	if err != nil {
		return out, err
	}
	out.Raw = res.Characters

	results, failures := p.enricher.EnrichAll(ctx, res.Characters)
	out.Results = enrich.SortAlphabetically(results)
	out.Failures = failures
	if len(results) == 0 && len(failures) > 0 {
		return out, fmt.Errorf("%w: %w", ErrAllFailed, failures[0])
	}
	return out, nil
}
