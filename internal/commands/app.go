package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/holonet/internal/appconfig"
	"github.com/mwiater/holonet/internal/enrich"
	"github.com/mwiater/holonet/internal/index"
	"github.com/mwiater/holonet/internal/search"
	"github.com/mwiater/holonet/internal/swapi"
)

// app is the wired search stack. The name index is built once here and only
// read afterwards.
type app struct {
	client   *swapi.Client
	names    *index.NameIndex
	pipeline *search.Pipeline
}

// buildApp builds the name index and wires the pipeline. Index failures are
// fatal for the caller: an incomplete index would hand out wrong offsets.
// progress may be nil.
func buildApp(ctx context.Context, cfg *appconfig.Config, progress index.Progress) (*app, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	client := swapi.New(cfg.APIBase(), cfg.RequestTimeout(), cfg.AgentString())
	names, err := index.BuildWithProgress(ctx, client, cfg.Pages, progress)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("startup: %w", err)
	}
	resolver := search.NewResolver(client, names)
	return &app{
		client:   client,
		names:    names,
		pipeline: search.NewPipeline(resolver, enrich.New(client)),
	}, nil
}

// Close releases the client's idle connections.
func (a *app) Close() {
	a.client.Close()
}
