package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"torn_trade_values/internal/app"
	"torn_trade_values/internal/commands"
	"torn_trade_values/internal/notifications"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// maxLineBytes caps a single chat line; longer lines are dropped.
const maxLineBytes = 64 * 1024

// bot bundles what every subcommand needs, built once from the environment.
type bot struct {
	router   *commands.Router
	notifier *notifications.Client
}

func setupBot(ctx context.Context) (*bot, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}

	loader, err := app.InitializeLoader(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize value loader: %w", err)
	}

	router := commands.NewRouter(loader,
		commands.WithPrefix(cfg.CommandPrefix),
		commands.WithDefaultRadius(cfg.DefaultRadius),
	)

	log.Debug().
		Strs("sources", cfg.Sources).
		Str("prefix", cfg.CommandPrefix).
		Int("default_radius", cfg.DefaultRadius).
		Msg("Bot initialized")

	return &bot{router: router, notifier: app.InitializeNotificationClient(cfg)}, nil
}

// shutdown waits for relayed replies and reports how the relay fared.
func (b *bot) shutdown() {
	if !b.notifier.Enabled() {
		return
	}
	b.notifier.Wait()
	sent, failed := b.notifier.GetMetrics()
	log.Info().Int64("sent", sent).Int64("failed", failed).Msg("Notification relay finished")
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "torn_trade_values",
		Short:         "Check barter trades and item values for the Torn economy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTradeCommand(),
		newNearCommand(),
		newValueCommand(),
		newServeCommand(),
	)
	return root
}

func newTradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "trade <mine> for <theirs>",
		Aliases: []string{"t"},
		Short:   "Evaluate whether a trade is fair",
		Example: `  torn_trade_values trade "dragon, 2 golden sword for phoenix"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnce(cmd, "t", func(*bot) string { return strings.Join(args, " ") })
		},
	}
}

func newNearCommand() *cobra.Command {
	var radius int
	cmd := &cobra.Command{
		Use:     "near <item>",
		Short:   "List items valued close to an item",
		Example: `  torn_trade_values near "ak 47" --radius 2`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnce(cmd, "near", func(b *bot) string {
				if !cmd.Flags().Changed("radius") {
					radius = b.router.DefaultRadius()
				}
				return nearQuery(args, radius)
			})
		},
	}
	cmd.Flags().IntVarP(&radius, "radius", "r", 3, "number of neighbours on each side (default NEAR_DEFAULT_RADIUS)")
	return cmd
}

// nearQuery always ends with the radius, so a trailing number in the item
// name ("ak 47") stays part of the name.
func nearQuery(item []string, radius int) string {
	return strings.Join(item, " ") + " " + strconv.Itoa(radius)
}

func newValueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "value <item>",
		Short: "Show the value of a single item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatchOnce(cmd, "value", func(*bot) string { return strings.Join(args, " ") })
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer chat commands read line by line from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			b, err := setupBot(ctx)
			if err != nil {
				return err
			}
			defer b.shutdown()

			log.Info().Str("prefix", b.router.Prefix()).Msg("Listening for commands on stdin")
			return b.serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func dispatchOnce(cmd *cobra.Command, name string, buildArgs func(b *bot) string) error {
	b, err := setupBot(cmd.Context())
	if err != nil {
		return err
	}
	defer b.shutdown()

	reply, _ := b.router.Dispatch(cmd.Context(), name, buildArgs(b))
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	b.notifier.RelayReply(cmd.Context(), reply.Command, reply.Text)
	return nil
}

// serve treats every input line as a chat message and writes replies for the
// ones addressed to the bot. It returns when the input ends or ctx is done,
// even if the reader is still blocked.
func (b *bot) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		readErr <- readLines(ctx, in, lines)
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Interrupted, shutting down")
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				log.Info().Msg("Input closed, shutting down")
				return nil
			}

			reply, handled := b.router.Handle(ctx, line)
			if !handled {
				continue
			}
			fmt.Fprintln(out, reply.Text)
			b.notifier.RelayReply(ctx, reply.Command, reply.Text)
		}
	}
}

// readLines sends each line of in to lines until EOF or ctx is done. Lines
// longer than maxLineBytes are skipped.
func readLines(ctx context.Context, in io.Reader, lines chan<- string) error {
	r := bufio.NewReader(in)
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineBytes {
				tooLong = true
				buf = buf[:0]
			}
		}
		if isPrefix {
			continue
		}
		if tooLong {
			log.Warn().Int("limit_bytes", maxLineBytes).Msg("Skipping oversized input line")
			tooLong = false
			continue
		}

		line := string(buf)
		buf = buf[:0]
		select {
		case lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
}
