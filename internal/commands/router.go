// Package commands routes prefixed chat messages such as "!t gem for sword"
// to the trade evaluator and renders the replies.
package commands

import (
	"context"
	"strings"
	"unicode"

	"torn_trade_values/internal/values"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultPrefix = "!"

// Reply is the text answer to one routed message.
type Reply struct {
	RequestID string
	Command   string
	Text      string
}

type handlerFunc func(ctx context.Context, logger zerolog.Logger, args string) string

type Router struct {
	prefix        string
	loader        values.Loader
	defaultRadius int
	handlers      map[string]handlerFunc
}

type Option func(*Router)

func WithPrefix(prefix string) Option {
	return func(r *Router) { r.prefix = prefix }
}

// WithDefaultRadius sets the !near radius used when the message gives none.
func WithDefaultRadius(radius int) Option {
	return func(r *Router) { r.defaultRadius = radius }
}

func NewRouter(loader values.Loader, opts ...Option) *Router {
	r := &Router{
		prefix:        DefaultPrefix,
		loader:        loader,
		defaultRadius: 3,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.handlers = map[string]handlerFunc{
		"ping":  r.handlePing,
		"help":  r.handleHelp,
		"t":     r.handleTrade,
		"trade": r.handleTrade,
		"near":  r.handleNear,
		"value": r.handleValue,
		"v":     r.handleValue,
	}
	return r
}

// Handle routes one chat message. The boolean is false for messages that are
// not addressed to the bot (no prefix, or an unknown command).
func (r *Router) Handle(ctx context.Context, message string) (Reply, bool) {
	name, args, ok := r.split(message)
	if !ok {
		return Reply{}, false
	}
	return r.Dispatch(ctx, name, args)
}

// Dispatch runs the named command with args, bypassing prefix parsing.
func (r *Router) Dispatch(ctx context.Context, name, args string) (Reply, bool) {
	name = strings.ToLower(name)
	handler, ok := r.handlers[name]
	if !ok {
		log.Debug().Str("command", name).Msg("Ignoring unknown command")
		return Reply{}, false
	}

	requestID := uuid.NewString()
	logger := log.With().
		Str("request_id", requestID).
		Str("command", name).
		Logger()
	logger.Debug().Str("args", args).Msg("Handling command")

	return Reply{
		RequestID: requestID,
		Command:   name,
		Text:      handler(ctx, logger, strings.TrimSpace(args)),
	}, true
}

// Prefix returns the command prefix the router listens for.
func (r *Router) Prefix() string {
	return r.prefix
}

// DefaultRadius returns the !near radius used when the message gives none.
func (r *Router) DefaultRadius() int {
	return r.defaultRadius
}

// split separates "!name rest of message" into a lower-cased name and the
// trimmed remainder.
func (r *Router) split(message string) (string, string, bool) {
	trimmed := strings.TrimSpace(message)
	if !strings.HasPrefix(trimmed, r.prefix) {
		return "", "", false
	}
	body := strings.TrimPrefix(trimmed, r.prefix)
	if body == "" || unicode.IsSpace(rune(body[0])) {
		return "", "", false
	}

	end := strings.IndexFunc(body, unicode.IsSpace)
	if end < 0 {
		return strings.ToLower(body), "", true
	}
	return strings.ToLower(body[:end]), strings.TrimSpace(body[end:]), true
}
