package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetCountsMatchPlacement(t *testing.T) {
	s, err := New(DefaultConfiguration)
	require.NoError(t, err)
	for _, c := range Configurations {
		require.NoError(t, s.Configure(string(c)))
		assert.Equal(t, s.StartingPegCount(), s.RemainingPegCount(), "%s", c)
		assert.Equal(t, StartingPegs(c), s.StartingPegCount(), "%s", c)
		assert.Equal(t, c, s.Configuration())
	}
}

func TestCrossLayout(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)
	assert.Equal(t, 6, s.RemainingPegCount())
	for _, p := range []Position{pos(1, 1), pos(2, 2), pos(2, 3), pos(2, 4), pos(3, 3), pos(4, 3)} {
		assert.True(t, s.IsOccupied(p.Row, p.Col), "%v", p)
	}
}

func TestParseConfiguration(t *testing.T) {
	c, err := ParseConfiguration("Double Arrow")
	require.NoError(t, err)
	assert.Equal(t, DoubleArrow, c)

	c, err = ParseConfiguration("pyramid")
	require.NoError(t, err)
	assert.Equal(t, Pyramid, c)

	_, err = ParseConfiguration("Triangle")
	assert.ErrorIs(t, err, ErrUnknownConfiguration)
}

func TestConfigureUnknownKeepsState(t *testing.T) {
	calls := 0
	s, err := New(Solitaire)
	require.NoError(t, err)
	s.OnChange(func(*Session) { calls++ })
	_, err = s.SelectPeg(3, 1)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	err = s.Configure("Hexagon")
	assert.ErrorIs(t, err, ErrUnknownConfiguration)
	assert.Equal(t, 1, calls)
	assert.Equal(t, Solitaire, s.Configuration())
	assert.Equal(t, 31, s.RemainingPegCount())
}

func TestSolitaireFirstMove(t *testing.T) {
	s, err := New(Solitaire)
	require.NoError(t, err)
	require.Equal(t, 32, s.RemainingPegCount())

	out, err := s.SelectPeg(3, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeJumped, out)
	assert.False(t, s.IsOccupied(3, 1))
	assert.False(t, s.IsOccupied(3, 2))
	assert.True(t, s.IsOccupied(3, 3))
	assert.Equal(t, 31, s.RemainingPegCount())
	assert.Equal(t, 1, s.Moves())
	assert.Equal(t, "peg 4, 2 jumped", s.StatusText())
	assert.Equal(t, "playing", s.State())
}

func TestAmbiguousSelectionNeedsDestination(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)

	out, err := s.SelectPeg(2, 3)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, out)
	assert.Equal(t, 6, s.RemainingPegCount())
	assert.True(t, s.Ambiguous())
	assert.Equal(t, []Position{pos(0, 1), pos(2, 5), pos(2, 1)}, s.PossibleJumpTargets())
	assert.Equal(t, "peg 3, 4 has multiple jumps", s.StatusText())

	out, err = s.SelectPeg(2, 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeJumped, out)
	assert.Equal(t, 5, s.RemainingPegCount())
	assert.True(t, s.IsOccupied(2, 1))
	assert.False(t, s.IsOccupied(2, 2))
	assert.False(t, s.IsOccupied(2, 3))
	assert.Empty(t, s.PossibleJumpTargets())
	assert.Equal(t, "you chose 3, 2", s.StatusText())
}

func TestResolveReportsLandingCell(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)
	_, err = s.SelectPeg(2, 3)
	require.NoError(t, err)

	// far right of the row: only the direction counts
	out, err := s.SelectPeg(2, 6)
	require.NoError(t, err)
	assert.Equal(t, OutcomeJumped, out)
	assert.True(t, s.IsOccupied(2, 5))
	assert.False(t, s.IsOccupied(2, 6))
	assert.Equal(t, "you chose 3, 6", s.StatusText())
}

func TestCrossPerfectWin(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)

	steps := []struct {
		tap  Position
		want Outcome
	}{
		{pos(2, 3), OutcomeAmbiguous},
		{pos(2, 5), OutcomeJumped},
		{pos(4, 3), OutcomeJumped},
		{pos(2, 2), OutcomeJumped},
		{pos(2, 5), OutcomeJumped},
		{pos(1, 1), OutcomeJumped},
	}
	for i, st := range steps {
		out, err := s.SelectPeg(st.tap.Row, st.tap.Col)
		require.NoError(t, err, "step %d", i)
		require.Equal(t, st.want, out, "step %d", i)
	}

	assert.Equal(t, 1, s.RemainingPegCount())
	assert.True(t, s.IsOccupied(3, 3))
	assert.True(t, s.IsWonIdeal())
	assert.False(t, s.IsWon())
	assert.False(t, s.IsLost())
	assert.Equal(t, MessageWonPerfect, s.StatusText())
	assert.Equal(t, "perfect", s.State())
	assert.Equal(t, 5, s.Moves())
}

func TestCrossPlainWin(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)
	for _, p := range []Position{pos(2, 3), pos(2, 5), pos(4, 3), pos(2, 2), pos(2, 5)} {
		_, err := s.SelectPeg(p.Row, p.Col)
		require.NoError(t, err)
	}
	// (1,1) and (2,3) remain; jump the lower one up out of the center band
	out, err := s.SelectPeg(2, 3)
	require.NoError(t, err)
	require.Equal(t, OutcomeJumped, out)

	assert.True(t, s.IsOccupied(0, 1))
	assert.True(t, s.IsWon())
	assert.False(t, s.IsWonIdeal())
	assert.Equal(t, MessageWon, s.StatusText())
	assert.True(t, s.Finished())
}

func TestCrossLoss(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)
	for _, p := range []Position{pos(2, 3), pos(2, 5), pos(4, 3), pos(1, 1)} {
		_, err := s.SelectPeg(p.Row, p.Col)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.RemainingPegCount())
	assert.True(t, s.IsLost())
	assert.False(t, s.IsWon())
	assert.False(t, s.IsWonIdeal())
	assert.Equal(t, MessageLost, s.StatusText())
	assert.Equal(t, "lost", s.State())
}

func TestIsLostFalseWhileJumpsRemain(t *testing.T) {
	for _, c := range Configurations {
		s, err := New(c)
		require.NoError(t, err)
		canJump := false
		for _, p := range s.board.Occupied() {
			if s.engine.HasAnyJump(p.Row, p.Col) {
				canJump = true
			}
		}
		if canJump {
			assert.False(t, s.IsLost(), "%s", c)
		}
	}
}

func TestObserversNotifiedOncePerCall(t *testing.T) {
	var seen []string
	s, err := New(Cross, func(s *Session) { seen = append(seen, s.StatusText()) })
	require.NoError(t, err)
	require.Len(t, seen, 1, "initial configuration notifies")

	_, _ = s.SelectPeg(2, 3)
	assert.Len(t, seen, 2)
	_, _ = s.SelectPeg(2, 5)
	assert.Len(t, seen, 3)
	s.Reset()
	assert.Len(t, seen, 4)
	require.NoError(t, s.Configure("Plus"))
	assert.Len(t, seen, 5)
	_, err = s.ResolveDestination(3, 3)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Len(t, seen, 6)
	assert.Equal(t, "select a peg first", seen[5])
}

func TestResetRestoresConfiguration(t *testing.T) {
	s, err := New(Solitaire)
	require.NoError(t, err)
	_, _ = s.SelectPeg(3, 1)
	require.Equal(t, 31, s.RemainingPegCount())

	s.Reset()
	assert.Equal(t, 32, s.RemainingPegCount())
	assert.Equal(t, 0, s.Moves())
	_, selected := s.Selection()
	assert.False(t, selected)
	assert.Equal(t, "Solitaire Checkers in Solitaire configuration", s.StatusText())
}

func TestConfigureDiscardsSelection(t *testing.T) {
	s, err := New(Cross)
	require.NoError(t, err)
	_, _ = s.SelectPeg(2, 3)
	require.NotEmpty(t, s.PossibleJumpTargets())

	require.NoError(t, s.Configure("Cross"))
	assert.Empty(t, s.PossibleJumpTargets())
	_, err = s.SelectPeg(2, 1)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestShape(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	rows, widths := s.Shape()
	assert.Equal(t, 7, rows)
	assert.Equal(t, []int{3, 3, 7, 7, 7, 3, 3}, widths)
	assert.Equal(t, Solitaire, s.Configuration())
	assert.NotEmpty(t, s.ID)
}

func TestSelectPegOffBoardNotifies(t *testing.T) {
	calls := 0
	s, err := New(Solitaire)
	require.NoError(t, err)
	s.OnChange(func(*Session) { calls++ })
	out, err := s.SelectPeg(0, 6)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, out)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 32, s.RemainingPegCount())
}
