// Copyright 2018 The Hashislife Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashlife

import (
	"github.com/lu4/hashislife/bigint"
	"github.com/lu4/hashislife/pattern"
)

// FromGrid packs a dense grid into the canonical quadtree of the smallest
// depth whose side covers both dimensions. Cells outside the grid pad to
// dead.
func (s *Store) FromGrid(g *pattern.Grid) *Node {
	side, d := 2, 0
	for side < g.Rows || side < g.Cols {
		side <<= 1
		d++
	}
	return s.gridWindow(g, 0, 0, d)
}

func (s *Store) gridWindow(g *pattern.Grid, rmin, cmin, d int) *Node {
	if rmin >= g.Rows || cmin >= g.Cols {
		return s.Dead(d)
	}
	if d == 0 {
		return s.Leaf(leafBits(
			g.Get(rmin, cmin), g.Get(rmin, cmin+1),
			g.Get(rmin+1, cmin), g.Get(rmin+1, cmin+1)))
	}
	half := 1 << uint(d)
	var quad [4]*Node
	for i := 0; i < 4; i++ {
		quad[i] = s.gridWindow(g, rmin+half*(i>>1), cmin+half*(i&1), d-1)
	}
	return s.Cons(quad)
}

// ToGrid writes the window [rowMin, rowMin+rowLen) x [colMin, colMin+colLen)
// of q's plane into g starting at (dstRow, dstCol). The window minima are
// arbitrary precision; output positions are accumulated as small integers
// during the descent. Parts of the window beyond q's side are not written,
// so callers pre-zero g if they want dead fill.
func (s *Store) ToGrid(g *pattern.Grid, dstRow, dstCol int, rowMin, colMin bigint.Int, rowLen, colLen int, q *Node) {
	side := bigint.PowerOf2(q.depth + 1)
	rowLen = clampLen(rowMin, rowLen, side)
	colLen = clampLen(colMin, colLen, side)
	s.quadWindow(g, dstRow, dstCol, axisWin{rowMin, rowLen}, axisWin{colMin, colLen}, q)
}

// axisWin is the projection of the extraction window on one axis: the
// half-open interval [min, min+length).
type axisWin struct {
	min    bigint.Int
	length int
}

func clampLen(min bigint.Int, length int, side bigint.Int) int {
	if length < 0 || min.Cmp(side) >= 0 {
		return 0
	}
	if min.PlusInt(length).Cmp(side) <= 0 {
		return length
	}
	lo, hi := 0, length
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if min.PlusInt(mid).Cmp(side) <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *Store) quadWindow(g *pattern.Grid, m, n int, row, col axisWin, q *Node) {
	if row.length <= 0 || col.length <= 0 {
		return
	}
	if q.depth == 0 {
		r0, c0 := int(row.min.Int64()), int(col.min.Int64())
		for i := 0; i < row.length; i++ {
			for j := 0; j < col.length; j++ {
				g.Set(m+i, n+j, q.Cell(r0+i, c0+j))
			}
		}
		return
	}
	rows := splitAxis(row, q.depth)
	cols := splitAxis(col, q.depth)
	dstRow := [2]int{m, m + rows[0].length}
	dstCol := [2]int{n, n + cols[0].length}
	for i := 0; i < 4; i++ {
		x, y := i>>1, i&1
		s.quadWindow(g, dstRow[x], dstCol[y], rows[x], cols[y], q.child[i])
	}
}

// splitAxis projects a window [min, min+length) within [0, 2^(e+1)) onto
// the two child halves split at 2^e: index 0 is the low half, index 1 the
// high half with coordinates truncated by 2^e. An empty half has length 0.
func splitAxis(w axisWin, e int) [2]axisWin {
	if w.min.Log2() >= e {
		// Entirely in the high half; min < 2^(e+1), so bit e is set.
		return [2]axisWin{{bigint.Zero(), 0}, {w.min.MinusPow2(e), w.length}}
	}
	max := w.min.PlusInt(w.length)
	if max.Log2() >= e {
		hiLen := int(minusBoundary(max, e).Int64())
		if hiLen > 0 {
			return [2]axisWin{{w.min, w.length - hiLen}, {bigint.Zero(), hiLen}}
		}
	}
	return [2]axisWin{{w.min, w.length}, {bigint.Zero(), 0}}
}

// minusBoundary returns max-2^e for 2^e <= max <= 2^(e+1).
func minusBoundary(max bigint.Int, e int) bigint.Int {
	if max.Bit(e) == 1 {
		return max.MinusPow2(e)
	}
	// Bit e clear with max >= 2^e forces max == 2^(e+1).
	return bigint.PowerOf2(e)
}
