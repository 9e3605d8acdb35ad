package rle

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lu4/hashislife/hashlife"
	"github.com/lu4/hashislife/pattern"
)

func TestPairStream(t *testing.T) {
	// 1 dead, 3 alive: pairs (0,1), (1,1), then exhausted.
	line := Line{Tokens: []Token{{Value: byte(0), Repeat: 1}, {Value: byte(1), Repeat: 3}}}
	ps := newPairStream(line, byte(0))

	require.False(t, ps.empty)
	require.Equal(t, 1, ps.repeat)
	require.Equal(t, [2]Value{byte(0), byte(1)}, ps.pair)

	ps.next()
	require.Equal(t, 1, ps.repeat)
	require.Equal(t, [2]Value{byte(1), byte(1)}, ps.pair)
}

func TestPairStreamEvenRuns(t *testing.T) {
	// A run of 6 yields 3 repeated pairs at once.
	line := Line{Tokens: []Token{{Value: byte(1), Repeat: 6}}}
	ps := newPairStream(line, byte(0))
	require.Equal(t, 3, ps.repeat)
	require.Equal(t, [2]Value{byte(1), byte(1)}, ps.pair)
}

func TestPairStreamOddRunPadsWithDefault(t *testing.T) {
	line := Line{Tokens: []Token{{Value: byte(1), Repeat: 3}}}
	ps := newPairStream(line, byte(0))
	require.Equal(t, 1, ps.repeat)
	require.Equal(t, [2]Value{byte(1), byte(1)}, ps.pair)
	// The third cell has no partner left in the line: it pairs with the default.
	ps.next()
	require.False(t, ps.empty)
	require.Equal(t, 1, ps.repeat)
	require.Equal(t, [2]Value{byte(1), byte(0)}, ps.pair)
	ps.next()
	require.True(t, ps.empty)
}

func TestZipLinesLeaf(t *testing.T) {
	s := hashlife.NewStore(hashlife.Conway())
	top := Line{Tokens: []Token{{Value: byte(1), Repeat: 2}}}
	bottom := Line{Tokens: []Token{{Value: byte(0), Repeat: 1}, {Value: byte(1), Repeat: 1}}}
	l, err := ZipLines(top, bottom, LeafZipper{Store: s})
	require.NoError(t, err)
	require.NotEmpty(t, l.Tokens)
	// {1 1 / 0 1} packs to leaf 0b1101.
	require.Same(t, s.Leaf(0b1101), l.Tokens[0].Value)
	require.Equal(t, 1, l.Tokens[0].Repeat)
}

func TestZipRejectsForeignValues(t *testing.T) {
	s := hashlife.NewStore(hashlife.Conway())
	bad := Line{Tokens: []Token{{Value: "what", Repeat: 1}}}
	_, err := ZipLines(bad, Line{}, LeafZipper{Store: s})
	require.Error(t, err)

	_, err = ZipLines(bad, Line{}, ConsZipper{Store: s, ChildDepth: 0})
	require.Error(t, err)
}

func TestZipAdjacentLinesPairing(t *testing.T) {
	s := hashlife.NewStore(hashlife.Conway())
	// Lines 1, 2, 3: line 1 pairs with the implicit line 0, lines 2 and 3
	// pair together.
	m := &Map{X: 2, Y: 4, Lines: []Line{
		{LineNum: 1, Tokens: []Token{{Value: byte(1), Repeat: 2}}},
		{LineNum: 2, Tokens: []Token{{Value: byte(1), Repeat: 1}}},
		{LineNum: 3, Tokens: []Token{{Value: byte(0), Repeat: 1}, {Value: byte(1), Repeat: 1}}},
	}}
	out, err := ZipAdjacentLines(m, LeafZipper{Store: s})
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)
	require.Equal(t, 0, out.Lines[0].LineNum)
	require.Equal(t, 1, out.Lines[1].LineNum)
	// Line 0: {0 0 / 1 1} = leaf 0b0011.
	require.Same(t, s.Leaf(0b0011), out.Lines[0].Tokens[0].Value)
	// Line 1: {1 0 / 0 1} = leaf 0b1001.
	require.Same(t, s.Leaf(0b1001), out.Lines[1].Tokens[0].Value)
}

// Property: building the quadtree by zipping the run-length encoding gives
// the same canonical node as packing the dense matrix.
func TestToQuadMatchesFromGrid(t *testing.T) {
	s := hashlife.NewStore(hashlife.Conway())
	rnd := rand.New(rand.NewSource(42))
	grids := []*pattern.Grid{
		gridOf("#.", ".#"),
		gridOf(
			".#...",
			"..#..",
			"###..",
			".....",
			".....",
		),
	}
	for i := 0; i < 8; i++ {
		g := pattern.NewGrid(8, 8)
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				g.Set(r, c, byte(rnd.Intn(2)))
			}
		}
		grids = append(grids, g)
	}
	grids = append(grids, pattern.NewGrid(16, 16)) // empty
	for i, g := range grids {
		q, err := ToQuad(s, GridToMap(g))
		require.NoError(t, err, "grid %d", i)
		require.Same(t, s.FromGrid(g), q, "grid %d", i)
	}
}

func TestToQuadFromFile(t *testing.T) {
	s := hashlife.NewStore(hashlife.Conway())
	m, err := NewDecoder(strings.NewReader(gliderRLE)).ReadMap()
	require.NoError(t, err)
	q, err := ToQuad(s, m)
	require.NoError(t, err)
	require.Same(t, s.FromGrid(MapToGrid(m)), q)
}

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
