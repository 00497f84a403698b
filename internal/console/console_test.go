package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"ctchen222/bitboard-tic-tac-toe/internal/game"
	"ctchen222/bitboard-tic-tac-toe/internal/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Frame(t *testing.T) {
	// Given: a board with an X in the corner and an O in the centre
	g := game.NewGame(game.PlayerX)
	require.NoError(t, g.Move(game.Cell{Col: 0, Row: 0}))
	require.NoError(t, g.Move(game.Cell{Col: 1, Row: 1}))

	// When: the frame is drawn without colour
	frame := NewRenderer(&bytes.Buffer{}, false).Frame(g.Board())

	// Then: it matches the console layout
	want := "TicTacToe\n" +
		"  | A | B | C |\n" +
		"1 | X |   |   |\n" +
		"2 |   | O |   |\n" +
		"3 |   |   |   |\n"
	assert.Equal(t, want, frame)
}

func TestRenderer_Render(t *testing.T) {
	t.Run("Clears the screen before the board", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, false)

		require.NoError(t, r.Render(game.NewGame(game.PlayerX)))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "\x1b[2J"), "output %q does not start with a clear", out)
		assert.Contains(t, out, "  | A | B | C |")
	})

	t.Run("WithoutClear writes only the board", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(&buf, false).WithoutClear()

		require.NoError(t, r.Render(game.NewGame(game.PlayerX)))

		assert.True(t, strings.HasPrefix(buf.String(), title))
	})

	t.Run("Colour on a non-terminal stays plain", func(t *testing.T) {
		var buf bytes.Buffer
		g := game.NewGame(game.PlayerX)
		require.NoError(t, g.Move(game.Cell{Col: 2, Row: 2}))

		require.NoError(t, NewRenderer(&buf, true).WithoutClear().Render(g))

		assert.Contains(t, buf.String(), "3 |   |   | X |")
	})
}

func TestRenderer_Announce(t *testing.T) {
	tests := []struct {
		name  string
		moves []game.Cell
		want  string
	}{
		{
			name:  "X wins",
			moves: []game.Cell{{Col: 0, Row: 0}, {Col: 0, Row: 1}, {Col: 1, Row: 0}, {Col: 1, Row: 1}, {Col: 2, Row: 0}},
			want:  "Player X wins!\n",
		},
		{
			name: "Draw",
			moves: []game.Cell{
				{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0},
				{Col: 1, Row: 1}, {Col: 1, Row: 2}, {Col: 0, Row: 2},
				{Col: 0, Row: 1}, {Col: 2, Row: 1}, {Col: 2, Row: 2},
			},
			want: "Board is full\n",
		},
		{
			name:  "In progress says nothing",
			moves: []game.Cell{{Col: 1, Row: 1}},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := game.NewGame(game.PlayerX)
			for _, c := range tt.moves {
				require.NoError(t, g.Move(c))
			}
			var buf bytes.Buffer

			require.NoError(t, NewRenderer(&buf, false).Announce(g))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrompt_NextMove(t *testing.T) {
	occupied, err := game.FromRows(game.PlayerO, "...", ".X.", "...")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		board    game.Board
		want     game.Cell
		wantErr  error
		wantHint []string
	}{
		{
			name:  "Valid move",
			input: "A2\n",
			board: game.NewBoard(),
			want:  game.Cell{Col: 0, Row: 1},
		},
		{
			name:  "Lowercase with spaces",
			input: "  c3  \n",
			board: game.NewBoard(),
			want:  game.Cell{Col: 2, Row: 2},
		},
		{
			name:     "Invalid then valid",
			input:    "Z9\nA\nB1\n",
			board:    game.NewBoard(),
			want:     game.Cell{Col: 1, Row: 0},
			wantHint: []string{"Invalid position Z9", "Invalid position A"},
		},
		{
			name:     "Occupied then valid",
			input:    "B2\nC1\n",
			board:    occupied,
			want:     game.Cell{Col: 2, Row: 0},
			wantHint: []string{"Position B2 has already been played"},
		},
		{
			name:    "Quit",
			input:   "q\n",
			board:   game.NewBoard(),
			wantErr: player.ErrQuit,
		},
		{
			name:    "End of input",
			input:   "Z9\n",
			board:   game.NewBoard(),
			wantErr: player.ErrQuit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompt(strings.NewReader(tt.input), &out)

			got, err := p.NextMove(context.Background(), tt.board)

			assert.Contains(t, out.String(), `Input positions like this "A2"`)
			for _, hint := range tt.wantHint {
				assert.Contains(t, out.String(), hint)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompt_ReadsSuccessiveMoves(t *testing.T) {
	p := NewPrompt(strings.NewReader("A1\nB2\n"), &bytes.Buffer{})
	b := game.NewBoard()

	first, err := p.NextMove(context.Background(), b)
	require.NoError(t, err)
	b.Place(first)
	b.SwitchTurn()

	second, err := p.NextMove(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, "A1", first.String())
	assert.Equal(t, "B2", second.String())
}

func TestPrompt_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompt(strings.NewReader("A1\n"), &bytes.Buffer{}).NextMove(ctx, game.NewBoard())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompt_CanceledWhileWaitingForInput(t *testing.T) {
	// Given: a prompt whose input has nothing to read yet
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })
	p := NewPrompt(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.NextMove(ctx, game.NewBoard())
		done <- err
	}()

	// When: the context is canceled mid-read
	time.Sleep(20 * time.Millisecond)
	cancel()

	// Then: NextMove returns promptly with the cancellation
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("NextMove still blocked after the context was canceled")
	}

	// And: input typed afterwards is still read by the next call
	go func() { _, _ = io.WriteString(w, "B2\n") }()
	got, err := p.NextMove(context.Background(), game.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, "B2", got.String())
}
