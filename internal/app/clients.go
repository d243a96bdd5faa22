package app

import (
	"context"
	"fmt"

	"torn_trade_values/internal/barter"
	"torn_trade_values/internal/config"
	"torn_trade_values/internal/notifications"
	"torn_trade_values/internal/providers"
	"torn_trade_values/internal/sheets"
	"torn_trade_values/internal/torn"
	"torn_trade_values/internal/values"

	"github.com/rs/zerolog/log"
)

// InitializeLoader builds the value-table loader for the configured sources.
// Every source is wrapped with retry; several sources are merged in order.
func InitializeLoader(ctx context.Context, cfg *Config) (values.Loader, error) {
	log.Debug().Strs("sources", cfg.Sources).Msg("Initializing value loaders")

	var loaders []values.Loader
	for _, source := range cfg.Sources {
		loader, err := newSourceLoader(ctx, cfg, source)
		if err != nil {
			return nil, err
		}
		loaders = append(loaders, loader)
	}

	if len(loaders) == 1 {
		return loaders[0], nil
	}
	return values.MultiLoader{Loaders: loaders}, nil
}

func newSourceLoader(ctx context.Context, cfg *Config, source string) (values.Loader, error) {
	resilience := config.DefaultResilienceConfig

	switch source {
	case SourceFile:
		return values.RetryLoader{
			Name:   cfg.ValuesFile,
			Loader: values.FileLoader{Path: cfg.ValuesFile},
			Config: resilience.ValueLoad,
		}, nil

	case SourceSQLite:
		return values.RetryLoader{
			Name:   cfg.ValuesDB,
			Loader: values.SQLiteLoader{Path: cfg.ValuesDB, Query: cfg.ValuesDBQuery},
			Config: resilience.ValueLoad,
		}, nil

	case SourceSheets:
		sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return values.RetryLoader{
			Name: "sheets",
			Loader: values.SheetsLoader{
				Reader:        sheetsClient,
				SpreadsheetID: cfg.SpreadsheetID,
				Range:         cfg.SpreadsheetRange,
			},
			Config: resilience.APIRequest,
		}, nil

	case SourceTorn:
		log.Debug().Str("api_key", cfg.MaskedTornKey()).Dur("cache_ttl", cfg.TornCacheTTL).Msg("Initializing Torn client")
		pool := providers.NewPool(providers.LoadProviders(cfg.TornAPIKeys(), torn.WithCacheTTL(cfg.TornCacheTTL)))
		log.Info().Int("keys", pool.Len()).Msg("Initialized Torn key pool")
		return values.RetryLoader{
			Name:   "torn",
			Loader: tornPoolLoader(pool),
			Config: resilience.APIRequest,
		}, nil

	default:
		return nil, fmt.Errorf("unknown value source %q", source)
	}
}

// tornPoolLoader prices items from the pool and reports how many API calls
// the pool has spent so far; cached loads leave the count unchanged.
func tornPoolLoader(pool *providers.Pool) values.Loader {
	loader := values.TornLoader{Source: pool}
	return values.LoaderFunc(func(ctx context.Context) (barter.Table, error) {
		table, err := loader.Load(ctx)
		log.Debug().Int64("api_calls", pool.APICallCount()).Msg("Torn API usage")
		return table, err
	})
}

// InitializeNotificationClient creates and returns the notification client
func InitializeNotificationClient(cfg *Config) *notifications.Client {
	log.Debug().
		Bool("enabled", cfg.NtfyEnabled).
		Str("base_url", cfg.NtfyURL).
		Str("topic", cfg.NtfyTopic).
		Msg("Initializing notification client")

	client := notifications.NewClient(cfg.NtfyURL, cfg.NtfyTopic, cfg.NtfyEnabled, cfg.NtfyPriority, config.DefaultResilienceConfig.Notify)

	if cfg.NtfyEnabled {
		log.Info().Str("topic", cfg.NtfyTopic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return client
}
