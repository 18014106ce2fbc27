// Package enrich resolves a character's starship, homeworld and species
// references into the flattened records holonet renders.
package enrich

import (
	"context"
	"fmt"

	"github.com/mwiater/holonet/internal/logging"
	"github.com/mwiater/holonet/internal/swapi"
	"go.uber.org/zap"
)

// Fetcher retrieves sub-resources by absolute URL. *swapi.Client satisfies it.
type Fetcher interface {
	Starship(ctx context.Context, url string) (swapi.Starship, error)
	Planet(ctx context.Context, url string) (swapi.Planet, error)
	Species(ctx context.Context, url string) (swapi.Species, error)
}

// Starship is the displayed projection of a swapi starship.
type Starship struct {
	Name     string `json:"name"`
	Capacity string `json:"capacity"`
	Class    string `json:"class"`
}

// Homeworld is the displayed projection of a swapi planet.
type Homeworld struct {
	Name       string `json:"name"`
	Population string `json:"population"`
	Climate    string `json:"climate"`
}

// Species is the displayed projection of a swapi species.
type Species struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Lifespan string `json:"lifespan"`
}

// Attributes bundles every resolved sub-resource of one character.
type Attributes struct {
	Starships []Starship `json:"starships"`
	Homeworld Homeworld  `json:"homeworld"`
	Species   []Species  `json:"species"`
}

// Result is one enriched character.
type Result struct {
	CharacterName string     `json:"character_name"`
	Attributes    Attributes `json:"attributes"`
}

// Failure records a character dropped from the results and why.
type Failure struct {
	CharacterName string
	Err           error
}

func (f Failure) Error() string {
	return fmt.Sprintf("enrich %q: %v", f.CharacterName, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Enricher fetches sub-resources one at a time through a Fetcher.
type Enricher struct {
	fetcher Fetcher
}

// New returns an Enricher reading through fetcher.
func New(fetcher Fetcher) *Enricher {
	return &Enricher{fetcher: fetcher}
}

// Enrich resolves every reference of c. Any failed fetch fails the whole
// character.
func (e *Enricher) Enrich(ctx context.Context, c swapi.Character) (Result, error) {
	res := Result{
		CharacterName: c.Name,
		Attributes: Attributes{
			Starships: make([]Starship, 0, len(c.Starships)),
			Species:   make([]Species, 0, len(c.Species)),
		},
	}

	for _, u := range c.Starships {
		s, err := e.fetcher.Starship(ctx, u)
		if err != nil {
			return Result{}, err
		}
		res.Attributes.Starships = append(res.Attributes.Starships, Starship{
			Name:     s.Name,
			Capacity: s.CargoCapacity,
			Class:    s.StarshipClass,
		})
	}

	if c.Homeworld != "" {
		p, err := e.fetcher.Planet(ctx, c.Homeworld)
		if err != nil {
			return Result{}, err
		}
		res.Attributes.Homeworld = Homeworld{Name: p.Name, Population: p.Population, Climate: p.Climate}
	}

	for _, u := range c.Species {
		s, err := e.fetcher.Species(ctx, u)
		if err != nil {
			return Result{}, err
		}
		res.Attributes.Species = append(res.Attributes.Species, Species{
			Name:     s.Name,
			Language: s.Language,
			Lifespan: s.AverageLifespan,
		})
	}
	return res, nil
}

// EnrichAll enriches chars in order. A character that fails is skipped with a
// logged warning and reported in the returned failures; the rest still
// complete. Once ctx is done the remaining characters are reported as failed
// without further requests.
func (e *Enricher) EnrichAll(ctx context.Context, chars []swapi.Character) ([]Result, []Failure) {
	results := make([]Result, 0, len(chars))
	var failures []Failure
	for _, c := range chars {
		if err := ctx.Err(); err != nil {
			failures = append(failures, Failure{CharacterName: c.Name, Err: err})
			continue
		}
		r, err := e.Enrich(ctx, c)
		if err != nil {
			logging.Warn("enrichment failed, skipping character",
				zap.String("character", c.Name),
				zap.Error(err))
			failures = append(failures, Failure{CharacterName: c.Name, Err: err})
			continue
		}
		results = append(results, r)
	}
	return results, failures
}
