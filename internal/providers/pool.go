package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"torn_trade_values/internal/torn"

	"github.com/rs/zerolog/log"
)

// Provider is one Torn API key and the client that spends it.
type Provider struct {
	Name   string
	Client *torn.Client
}

// LoadProviders builds a client for every non-blank key, in order. Providers
// are named by their masked key so the name is safe to log.
func LoadProviders(keys []string, opts ...torn.Option) []Provider {
	var providers []Provider
	for _, raw := range keys {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}

		name := MaskKey(key)
		providers = append(providers, Provider{Name: name, Client: torn.NewClient(key, opts...)})
		log.Debug().Str("provider", name).Msg("Loaded provider API key")
	}
	return providers
}

// MaskKey hides all but the first and last four characters of an API key.
func MaskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "****" + key[len(key)-4:]
	}
}

// Pool serves the Torn item list from the first provider that answers, so a
// rate-limited or revoked key falls through to the next one.
type Pool struct {
	providers []Provider
}

func NewPool(providers []Provider) *Pool {
	return &Pool{providers: providers}
}

func (p *Pool) Len() int {
	return len(p.providers)
}

func (p *Pool) GetItems(ctx context.Context) (map[string]torn.Item, error) {
	if len(p.providers) == 0 {
		return nil, errors.New("no torn providers configured")
	}

	var errs []error
	for _, prov := range p.providers {
		items, err := prov.Client.GetItems(ctx)
		if err == nil {
			log.Debug().
				Str("provider", prov.Name).
				Int("items", len(items)).
				Msg("Fetched items from provider")
			return items, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn().Err(err).Str("provider", prov.Name).Msg("Failed to fetch items for provider; trying next")
		errs = append(errs, fmt.Errorf("provider %s: %w", prov.Name, err))
	}
	return nil, errors.Join(errs...)
}

// APICallCount sums the calls made through every provider's client.
func (p *Pool) APICallCount() int64 {
	var total int64
	for _, prov := range p.providers {
		total += prov.Client.GetAPICallCount()
	}
	return total
}
