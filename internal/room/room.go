package room

//go:generate mockgen -source=room.go -destination=../mocks/mock_room.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// A seat may hand back this many illegal moves in a row before the room gives up.
const maxRejectedMoves = 3

var tracer = otel.Tracer("room")

var ErrTooManyRejectedMoves = errors.New("too many rejected moves")

// View shows the game to the people playing it.
type View interface {
	Render(g *game.Game) error
	Announce(g *game.Game) error
}

// Result describes how a room's game ended.
type Result struct {
	RoomID    string
	Status    game.Status
	Winner    game.PlayerMark
	Moves     []game.Cell
	Abandoned bool
	QuitBy    game.PlayerMark
}

// Room runs one game between two seated players.
type Room struct {
	ID      string
	Game    *game.Game
	Players map[game.PlayerMark]*player.Player
	view    View
	logger  *slog.Logger
}

// NewRoom seats x and o and prepares a game with first to move. A nil view
// plays the game without showing it.
func NewRoom(x, o *player.Player, first game.PlayerMark, view View, logger *slog.Logger) *Room {
	if view == nil {
		view = nopView{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	x.Mark = game.PlayerX
	o.Mark = game.PlayerO

	id := uuid.New().String()
	return &Room{
		ID:   id,
		Game: game.NewGame(first),
		Players: map[game.PlayerMark]*player.Player{
			game.PlayerX: x,
			game.PlayerO: o,
		},
		view:   view,
		logger: logger.With("component", "room", "room.id", id),
	}
}

// Run is the main game loop for the room. It returns once the game is won,
// drawn or abandoned, or when ctx is canceled.
func (r *Room) Run(ctx context.Context) (Result, error) {
	x, o := r.Players[game.PlayerX], r.Players[game.PlayerO]
	ctx, span := tracer.Start(ctx, "room.Run", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("player.x", x.ID),
		attribute.String("player.o", o.ID),
		attribute.Bool("player.x.bot", x.IsBot),
		attribute.Bool("player.o.bot", o.IsBot),
	))
	defer span.End()

	r.logger.InfoContext(ctx, "game started",
		"first", r.Game.Turn(),
		slog.Group("x", "id", x.ID, "name", x.Name, "bot", x.IsBot),
		slog.Group("o", "id", o.ID, "name", o.Name, "bot", o.IsBot),
	)

	rejected := 0
	for {
		if err := ctx.Err(); err != nil {
			return r.fail(span, r.result(), err)
		}

		if err := r.view.Render(r.Game); err != nil {
			return r.fail(span, r.result(), fmt.Errorf("failed to render board: %w", err))
		}

		if r.Game.IsFinished() {
			if err := r.view.Announce(r.Game); err != nil {
				return r.fail(span, r.result(), fmt.Errorf("failed to announce result: %w", err))
			}
			res := r.result()
			span.SetAttributes(
				attribute.String("game.status", res.Status.String()),
				attribute.String("game.winner", string(res.Winner)),
				attribute.Int("game.moves", len(res.Moves)),
			)
			r.logger.InfoContext(ctx, "game finished", "status", res.Status, "winner", res.Winner, "moves", len(res.Moves))
			return res, nil
		}

		mark := r.Game.Turn()
		current := r.Players[mark]

		c, err := current.Mover.NextMove(ctx, r.Game.Board())
		if errors.Is(err, player.ErrQuit) {
			res := r.result()
			res.Abandoned = true
			res.QuitBy = mark
			span.SetAttributes(attribute.Bool("game.abandoned", true))
			r.logger.InfoContext(ctx, "player quit", "player.id", current.ID, "player.name", current.Name, "mark", mark)
			return res, nil
		}
		if err != nil {
			return r.fail(span, r.result(), fmt.Errorf("player %s failed to move: %w", current.ID, err))
		}

		if err := r.Game.Move(c); err != nil {
			rejected++
			r.logger.WarnContext(ctx, "rejected move", "player.id", current.ID, "mark", mark, "cell", c.String(), "error", err)
			if rejected >= maxRejectedMoves {
				return r.fail(span, r.result(), fmt.Errorf("%w: player %s: %w", ErrTooManyRejectedMoves, current.ID, err))
			}
			continue
		}
		rejected = 0

		r.logger.DebugContext(ctx, "move played", "player.id", current.ID, "mark", mark, "cell", c.String())
	}
}

func (r *Room) result() Result {
	return Result{
		RoomID: r.ID,
		Status: r.Game.Status(),
		Winner: r.Game.Winner(),
		Moves:  r.Game.History(),
	}
}

func (r *Room) fail(span trace.Span, res Result, err error) (Result, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.logger.Error("room stopped", "error", err)
	return res, err
}

type nopView struct{}

func (nopView) Render(*game.Game) error   { return nil }
func (nopView) Announce(*game.Game) error { return nil }
