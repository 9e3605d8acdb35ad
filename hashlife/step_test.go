package hashlife

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lu4/hashislife/bigint"
	"github.com/lu4/hashislife/pattern"
)

func gridOf(rows ...string) *pattern.Grid {
	g := pattern.NewGrid(len(rows), len(rows[0]))
	for i, r := range rows {
		for j := 0; j < len(r); j++ {
			if r[j] == '#' {
				g.Set(i, j, 1)
			}
		}
	}
	return g
}

// destinyWindow advances g by gens generations and reads back a window of the same size
// anchored at the input plane's origin.
func destinyWindow(t *testing.T, s *Store, g *pattern.Grid, gens bigint.Int) *pattern.Grid {
	t.Helper()
	res, off := s.Destiny(s.FromGrid(g), gens)
	out := pattern.NewGrid(g.Rows, g.Cols)
	s.ToGrid(out, 0, 0, off, off, g.Rows, g.Cols, res)
	return out
}

func TestStepMemoized(t *testing.T) {
	s := NewStore(Conway())
	q := s.FromGrid(gridOf(
		".#...",
		"..#..",
		"###..",
		".....",
		".....",
	))
	require.Equal(t, 2, q.Depth())
	first := s.Step(q)
	require.Same(t, first, s.Step(q))
	require.Equal(t, 1, first.Depth())
}

func TestStepDead(t *testing.T) {
	s := NewStore(Conway())
	require.Same(t, s.Dead(2), s.Step(s.Dead(3)))
}

func TestBlinker(t *testing.T) {
	s := NewStore(Conway())
	horizontal := gridOf(
		".....",
		".....",
		".###.",
		".....",
		".....",
	)
	vertical := gridOf(
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)
	out := destinyWindow(t, s, horizontal, bigint.FromInt(1))
	require.True(t, vertical.Equal(out), "got:\n%v", out.Bits)

	out = destinyWindow(t, s, horizontal, bigint.FromInt(2))
	require.True(t, horizontal.Equal(out), "got:\n%v", out.Bits)
}

func TestBlock(t *testing.T) {
	s := NewStore(Conway())
	block := gridOf(
		"....",
		".##.",
		".##.",
		"....",
	)
	out := destinyWindow(t, s, block, bigint.FromInt(1))
	require.True(t, block.Equal(out), "got:\n%v", out.Bits)
}

func TestGliderFourSteps(t *testing.T) {
	s := NewStore(Conway())
	glider := gridOf(
		".#...",
		"..#..",
		"###..",
		".....",
		".....",
	)
	shifted := gridOf(
		".....",
		"..#..",
		"...#.",
		".###.",
		".....",
	)
	out := destinyWindow(t, s, glider, bigint.FromInt(4))
	require.True(t, shifted.Equal(out), "got:\n%v", out.Bits)
}

// An odd generation count mixes a partial skip with full steps.
func TestGliderOddSteps(t *testing.T) {
	s := NewStore(Conway())
	glider := gridOf(
		".#....",
		"..#...",
		"###...",
		"......",
		"......",
		"......",
	)
	// The glider after 5 generations: one past its (+1,+1) period.
	after5 := gridOf(
		"......",
		"......",
		".#.#..",
		"..##..",
		"..#...",
		"......",
	)
	out := destinyWindow(t, s, glider, bigint.FromInt(5))
	require.True(t, after5.Equal(out), "got:\n%v", out.Bits)
}

func TestDestinyZero(t *testing.T) {
	s := NewStore(Conway())
	q := s.FromGrid(gridOf("##", "##"))
	res, off := s.Destiny(q, bigint.Zero())
	require.Same(t, q, res)
	require.True(t, off.IsZero())
}

func TestDestinyEmpty(t *testing.T) {
	s := NewStore(Conway())
	res, off := s.Destiny(s.Dead(3), bigint.PowerOf2(10))
	require.Same(t, s.Dead(3), res)
	require.True(t, off.IsZero())

	out := pattern.NewGrid(4, 4)
	s.ToGrid(out, 0, 0, off, off, 4, 4, res)
	require.True(t, pattern.NewGrid(4, 4).Equal(out))
}

func TestDestinyBigSkip(t *testing.T) {
	s := NewStore(Conway())
	glider := gridOf(
		".#...",
		"..#..",
		"###..",
		".....",
		".....",
	)
	res, off := s.Destiny(s.FromGrid(glider), bigint.PowerOf2(20))

	// After 2^20 generations the glider has travelled 2^18 cells down-right.
	shift := bigint.PowerOf2(18)
	out := pattern.NewGrid(5, 5)
	s.ToGrid(out, 0, 0, off.Add(shift), off.Add(shift), 5, 5, res)
	require.True(t, glider.Equal(out), "got:\n%v", out.Bits)

	// Nothing lives at the original origin anymore.
	near := pattern.NewGrid(5, 5)
	s.ToGrid(near, 0, 0, off, off, 5, 5, res)
	require.True(t, pattern.NewGrid(5, 5).Equal(near))
}
