package values

import (
	"context"
	"fmt"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/retry"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// MultiLoader loads every source concurrently and merges them in order:
// a later source overrides an earlier one for the same item. Any failing
// source fails the whole load.
type MultiLoader struct {
	Loaders []Loader
}

func (m MultiLoader) Load(ctx context.Context) (barter.Table, error) {
	results := make([]barter.Table, len(m.Loaders))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range m.Loaders {
		g.Go(func() error {
			table, err := l.Load(gctx)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			results[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := barter.Table{}
	for _, table := range results {
		for name, value := range table {
			merged[name] = value
		}
	}
	log.Debug().Int("sources", len(m.Loaders)).Int("items", len(merged)).Msg("Merged value tables")
	return merged, nil
}

// RetryLoader retries a flaky source according to Config.
type RetryLoader struct {
	Name   string
	Loader Loader
	Config retry.Config
}

func (r RetryLoader) Load(ctx context.Context) (barter.Table, error) {
	table, err := retry.WithRetry(ctx, r.Config, r.Loader.Load)
	if err != nil {
		log.Warn().Err(err).Str("source", r.Name).Msg("Failed to load value table")
		return nil, fmt.Errorf("failed to load values from %s: %w", r.Name, err)
	}
	return table, nil
}
