package cells

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lu4/hashislife/pattern"
)

func TestReadGrid(t *testing.T) {
	in := "3 4 B3/S23\n.#..\n..#.\n###.\n"
	r := pattern.FormatByName("cells").Reader(strings.NewReader(in))
	g, err := r.ReadGrid()
	require.NoError(t, err)
	require.Equal(t, 3, g.Rows)
	require.Equal(t, 4, g.Cols)
	require.Equal(t, "B3/S23", g.Rule)
	require.Equal(t, byte(1), g.Get(0, 1))
	require.Equal(t, byte(0), g.Get(0, 0))
	require.Equal(t, byte(1), g.Get(2, 2))
}

func TestReadGridAlternateGlyphs(t *testing.T) {
	in := "2 2 B3/S23\n10\n01\n"
	r := pattern.FormatByName("cells").Reader(strings.NewReader(in))
	g, err := r.ReadGrid()
	require.NoError(t, err)
	require.Equal(t, byte(1), g.Get(0, 0))
	require.Equal(t, byte(0), g.Get(0, 1))
	require.Equal(t, byte(1), g.Get(1, 1))
}

func TestReadGridErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"2 B3/S23\n..\n..\n",
		"2 2 B3/S23\n..\n",
		"2 2 B3/S23\n.z\n..\n",
	} {
		r := pattern.FormatByName("cells").Reader(strings.NewReader(in))
		_, err := r.ReadGrid()
		require.Error(t, err, "input %q", in)
	}
}

func TestRoundTrip(t *testing.T) {
	g := pattern.NewGrid(3, 5)
	g.Rule = "B36/S23"
	g.Set(0, 0, 1)
	g.Set(1, 4, 1)
	g.Set(2, 2, 1)

	var buf bytes.Buffer
	f := pattern.FormatByName("cells")
	w := f.Writer(&buf)
	require.NoError(t, w.WriteGrid(g))
	require.NoError(t, w.Close())

	r := f.Reader(bytes.NewReader(buf.Bytes()))
	back, err := r.ReadGrid()
	require.NoError(t, err)
	require.True(t, g.Equal(back))
	require.Equal(t, "B36/S23", back.Rule)
}
