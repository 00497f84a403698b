package bot

import (
	"errors"
	"math"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
)

// ErrNoMoves is the panic value when the search is asked to move on a board
// without empty cells or with a completed line.
var ErrNoMoves = errors.New("bot: no legal moves")

// winScore is the value of a win on the move that completes it. Each ply of
// delay costs one point, so faster wins and slower losses score higher.
const winScore = 10

const (
	minScore = math.MinInt
	maxScore = math.MaxInt
)

// Options tunes the search.
type Options struct {
	// Pruning enables alpha-beta cutoffs. Without it the search is plain
	// minimax; both pick the same move.
	Pruning bool
}

// DefaultOptions is alpha-beta search.
func DefaultOptions() Options {
	return Options{Pruning: true}
}

// CellScore is the searched value of playing Cell from the root.
type CellScore struct {
	Cell  game.Cell
	Score int
}

// Result is the outcome of a full search from one position.
type Result struct {
	Move    game.Cell
	Score   int
	Scores  []CellScore // every legal root move, row-major
	Nodes   int
	Cutoffs int
}

// ChooseMove returns the best cell for the side to move on b, searching the
// whole game tree with alpha-beta pruning. It panics with ErrNoMoves if b has
// no empty cell or a completed line.
func ChooseMove(b game.Board) game.Cell {
	return Search(b, DefaultOptions()).Move
}

// Search scores every legal move for the side to move and picks the highest.
// Ties go to the first cell in row-major order.
func Search(b game.Board, opts Options) Result {
	if b.IsFull() || b.Winner() != game.None {
		panic(ErrNoMoves)
	}

	s := &searcher{opts: opts}
	res := Result{Score: minScore}
	found := false

	for _, c := range b.EmptyCells() {
		child := b
		child.Place(c)
		s.nodes++

		score := s.minimax(child, minScore, maxScore, false, 1)
		res.Scores = append(res.Scores, CellScore{Cell: c, Score: score})

		if !found || score > res.Score {
			res.Move, res.Score = c, score
			found = true
		}
	}

	if !found {
		panic(ErrNoMoves)
	}

	res.Nodes = s.nodes
	res.Cutoffs = s.cutoffs
	return res
}

type searcher struct {
	opts    Options
	nodes   int
	cutoffs int
}

// minimax scores b from the root player's point of view. b.Turn() is the side
// that just moved; maximizing says whether the root player moves next.
func (s *searcher) minimax(b game.Board, alpha, beta int, maximizing bool, depth int) int {
	if b.HasWinner() {
		if maximizing {
			return -(winScore - depth)
		}
		return winScore - depth
	}
	if b.IsFull() {
		return 0
	}

	best := maxScore
	if maximizing {
		best = minScore
	}

	for _, c := range b.EmptyCells() {
		child := b
		child.SwitchTurn()
		child.Place(c)
		s.nodes++

		v := s.minimax(child, alpha, beta, !maximizing, depth+1)

		if maximizing {
			best = max(best, v)
			alpha = max(alpha, v)
		} else {
			best = min(best, v)
			beta = min(beta, v)
		}

		if s.opts.Pruning && alpha >= beta {
			s.cutoffs++
			break
		}
	}
	return best
}
