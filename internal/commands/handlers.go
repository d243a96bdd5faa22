package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"torn_trade_values/internal/barter"

	"github.com/rs/zerolog"
)

const (
	loadFailedReply = "Could not load item values right now. Try again later."
	tradeUsage      = "Invalid format. Use `%st item1, item2 for item3, item4`"
)

// numeric matches anything a user might have meant as a range, valid or not.
var numeric = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

func (r *Router) handlePing(ctx context.Context, logger zerolog.Logger, args string) string {
	return "pong"
}

func (r *Router) handleHelp(ctx context.Context, logger zerolog.Logger, args string) string {
	p := r.prefix
	return strings.Join([]string{
		"**Commands:**",
		fmt.Sprintf("`%st item1, 2 item2 for item3` - check whether a trade is fair", p),
		fmt.Sprintf("`%snear item [range]` - items with a similar value (range defaults to %d)", p, r.defaultRadius),
		fmt.Sprintf("`%svalue item` - value of a single item", p),
		fmt.Sprintf("`%sping` - check the bot is alive", p),
	}, "\n")
}

func (r *Router) handleTrade(ctx context.Context, logger zerolog.Logger, args string) string {
	table, err := r.loadTable(ctx, logger)
	if err != nil {
		return loadFailedReply
	}

	outcome, err := barter.EvaluateTrade(args, table)
	if err != nil {
		logger.Debug().Err(err).Msg("Rejected trade input")
		var fe *barter.FormatError
		if errors.As(err, &fe) {
			return fmt.Sprintf(tradeUsage, r.prefix)
		}
		return loadFailedReply
	}

	logger.Info().
		Int64("mine_total", outcome.Mine.Total).
		Int64("theirs_total", outcome.Theirs.Total).
		Int64("difference", outcome.Difference).
		Str("verdict", outcome.Verdict.String()).
		Int("unknown", len(outcome.Unknown())).
		Msg("Evaluated trade")

	return RenderOutcome(outcome)
}

func (r *Router) handleNear(ctx context.Context, logger zerolog.Logger, args string) string {
	item, rawRadius := splitRadius(args)
	if item == "" {
		return fmt.Sprintf("Usage: `%snear item [range]`", r.prefix)
	}

	radius := r.defaultRadius
	if rawRadius != "" {
		parsed, err := barter.ParseRadius(rawRadius)
		if err != nil {
			logger.Debug().Err(err).Msg("Rejected range")
			return fmt.Sprintf("Range must be a whole number of 0 or more, got `%s`.", rawRadius)
		}
		radius = parsed
	}

	table, err := r.loadTable(ctx, logger)
	if err != nil {
		return loadFailedReply
	}

	window, err := barter.FindNear(table, item, radius)
	if err != nil {
		var le *barter.LookupError
		if errors.As(err, &le) {
			return fmt.Sprintf("No value known for `%s`.", le.Name)
		}
		logger.Warn().Err(err).Msg("Proximity lookup failed")
		return loadFailedReply
	}

	logger.Info().Str("item", barter.Normalize(item)).Int("radius", radius).Int("entries", len(window)).Msg("Found nearby items")
	return RenderWindow(window)
}

func (r *Router) handleValue(ctx context.Context, logger zerolog.Logger, args string) string {
	if strings.TrimSpace(args) == "" {
		return fmt.Sprintf("Usage: `%svalue item`", r.prefix)
	}

	table, err := r.loadTable(ctx, logger)
	if err != nil {
		return loadFailedReply
	}

	name := barter.Normalize(args)
	value, ok := table.Lookup(name)
	if !ok {
		return fmt.Sprintf("No value known for `%s`.", name)
	}
	return fmt.Sprintf("**%s:** %s", name, formatValue(value))
}

func (r *Router) loadTable(ctx context.Context, logger zerolog.Logger) (barter.Table, error) {
	if r.loader == nil {
		logger.Error().Msg("No value loader configured")
		return nil, barter.ErrNoTable
	}
	table, err := r.loader.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load value table")
		return nil, err
	}
	if table == nil {
		return nil, barter.ErrNoTable
	}
	return table, nil
}

// splitRadius peels a trailing numeric token off "golden sword 2". A lone
// token is always the item name, so "!near 5" looks up the item "5".
func splitRadius(args string) (string, string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return strings.TrimSpace(args), ""
	}
	last := fields[len(fields)-1]
	if !numeric.MatchString(last) {
		return strings.TrimSpace(args), ""
	}
	item := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(args), last))
	return item, last
}
