package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ctchen222/bitboard-tic-tac-toe/internal/bot"

var _ player.Mover = (*Engine)(nil)

// Engine is the computer player. It runs the full search for every move and
// reports what it did through traces, metrics and the logger.
type Engine struct {
	opts     Options
	logger   *slog.Logger
	tracer   trace.Tracer
	nodes    metric.Int64Counter
	duration metric.Float64Histogram
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithLogger sets the engine's logger. The default logger is used otherwise.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *engineConfig) { c.logger = l }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(c *engineConfig) { c.tracerProvider = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) EngineOption {
	return func(c *engineConfig) { c.meterProvider = mp }
}

// NewEngine creates an engine searching with opts.
func NewEngine(opts Options, options ...EngineOption) *Engine {
	cfg := engineConfig{
		logger:         slog.Default(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, o := range options {
		o(&cfg)
	}

	e := &Engine{
		opts:   opts,
		logger: cfg.logger.With("component", "bot"),
		tracer: cfg.tracerProvider.Tracer(instrumentationName),
	}

	meter := cfg.meterProvider.Meter(instrumentationName)
	var err error
	e.nodes, err = meter.Int64Counter("bot.search.nodes",
		metric.WithDescription("Positions visited by the game-tree search"),
	)
	if err != nil {
		e.logger.Warn("failed to create node counter", "error", err)
		e.nodes = noop.Int64Counter{}
	}
	e.duration, err = meter.Float64Histogram("bot.search.duration",
		metric.WithDescription("Wall time of one full search"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		e.logger.Warn("failed to create duration histogram", "error", err)
		e.duration = noop.Float64Histogram{}
	}
	return e
}

// Options returns the search options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// NextMove implements player.Mover.
func (e *Engine) NextMove(ctx context.Context, b game.Board) (game.Cell, error) {
	res, err := e.Analyze(ctx, b)
	if err != nil {
		return game.Cell{}, err
	}
	return res.Move, nil
}

// Analyze runs the search on b and returns the full result. A board without
// legal moves is reported as ErrNoMoves instead of reaching the search.
func (e *Engine) Analyze(ctx context.Context, b game.Board) (Result, error) {
	ctx, span := e.tracer.Start(ctx, "bot.ChooseMove", trace.WithAttributes(
		attribute.String("board", b.String()),
		attribute.Bool("search.pruning", e.opts.Pruning),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if b.IsFull() || b.Winner() != game.None {
		span.RecordError(ErrNoMoves)
		return Result{}, fmt.Errorf("%w on %s", ErrNoMoves, b)
	}

	start := time.Now()
	res := Search(b, e.opts)
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("player.mark", string(b.Turn())))
	e.nodes.Add(ctx, int64(res.Nodes), attrs)
	e.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)

	span.SetAttributes(
		attribute.String("move", res.Move.String()),
		attribute.Int("move.score", res.Score),
		attribute.Int("search.nodes", res.Nodes),
		attribute.Int("search.cutoffs", res.Cutoffs),
	)
	e.logger.DebugContext(ctx, "search finished",
		"mark", b.Turn(),
		"move", res.Move.String(),
		"score", res.Score,
		"nodes", res.Nodes,
		"cutoffs", res.Cutoffs,
		"elapsed", elapsed,
	)
	return res, nil
}
