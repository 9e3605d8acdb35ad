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
	"github.com/lu4/hashislife/clog"
)

// Step returns the centre sub-square of q advanced by 2^(q.Depth()-1)
// generations, as a node one depth down. The result is memoized on q, so
// each distinct subpattern is stepped at most once per store.
func (s *Store) Step(q *Node) *Node {
	if q.depth < 1 {
		panic("hashlife: Step on a leaf")
	}
	if q.next != nil {
		mMemoHit.Inc()
		return q.next
	}
	mMemoMiss.Inc()
	var r *Node
	switch {
	case q == s.Dead(q.depth):
		r = s.Dead(q.depth - 1)
	case q.depth == 1:
		r = s.stepLeaves(q)
	default:
		n := s.overlapping(q)
		var res [3][3]*Node
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				res[i][j] = s.Step(n[i][j])
			}
		}
		var quad [4]*Node
		for k := 0; k < 4; k++ {
			x, y := k>>1, k&1
			g := s.Cons([4]*Node{res[x][y], res[x][y+1], res[x+1][y], res[x+1][y+1]})
			quad[k] = s.Step(g)
		}
		r = s.Cons(quad)
	}
	q.next = r
	return r
}

// stepLeaves advances the 4x4 region of a depth 1 node by one generation
// and returns its 2x2 centre as a leaf.
func (s *Store) stepLeaves(q *Node) *Node {
	var cells [4][4]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			cells[i][j] = q.child[(i>>1)<<1|j>>1].Cell(i&1, j&1)
		}
	}
	next := func(ci, cj int) byte {
		n := 0
		for di := 0; di < 3; di++ {
			for dj := 0; dj < 3; dj++ {
				n |= int(cells[ci-1+di][cj-1+dj]) << uint(3*di+dj)
			}
		}
		return s.rule.tab[n]
	}
	return s.Leaf(leafBits(next(1, 1), next(1, 2), next(2, 1), next(2, 2)))
}

// overlapping builds the standard 3x3 grid of overlapping depth-1
// sub-nodes of q: the four children on the corners, and the pairwise and
// central regroupings of the grandchildren between them.
func (s *Store) overlapping(q *Node) [3][3]*Node {
	a, b, c, d := q.child[0], q.child[1], q.child[2], q.child[3]
	return [3][3]*Node{
		{
			a,
			s.Cons([4]*Node{a.child[1], b.child[0], a.child[3], b.child[2]}),
			b,
		},
		{
			s.Cons([4]*Node{a.child[2], a.child[3], c.child[0], c.child[1]}),
			s.Cons([4]*Node{a.child[3], b.child[2], c.child[1], d.child[0]}),
			s.Cons([4]*Node{b.child[2], b.child[3], d.child[0], d.child[1]}),
		},
		{
			c,
			s.Cons([4]*Node{c.child[1], d.child[0], c.child[3], d.child[2]}),
			d,
		},
	}
}

// Center returns the centre sub-square of q as a node one depth down.
func (s *Store) Center(q *Node) *Node {
	if q.depth < 1 {
		panic("hashlife: Center on a leaf")
	}
	if q.depth == 1 {
		return s.Leaf(leafBits(
			q.child[0].Cell(1, 1), q.child[1].Cell(1, 0),
			q.child[2].Cell(0, 1), q.child[3].Cell(0, 0)))
	}
	return s.Cons([4]*Node{
		q.child[0].child[3], q.child[1].child[2],
		q.child[2].child[1], q.child[3].child[0],
	})
}

// Grow wraps q centred inside a dead border one depth up: the centre
// sub-square of the result is q itself.
func (s *Store) Grow(q *Node) *Node {
	if q.depth == 0 {
		return s.Cons([4]*Node{
			s.Leaf(q.Cell(0, 0)),      // into cell 3
			s.Leaf(q.Cell(0, 1) << 1), // into cell 2
			s.Leaf(q.Cell(1, 0) << 2), // into cell 1
			s.Leaf(q.Cell(1, 1) << 3), // into cell 0
		})
	}
	e := s.Dead(q.depth - 1)
	return s.Cons([4]*Node{
		s.Cons([4]*Node{e, e, e, q.child[0]}),
		s.Cons([4]*Node{e, e, q.child[1], e}),
		s.Cons([4]*Node{e, q.child[2], e, e}),
		s.Cons([4]*Node{q.child[3], e, e, e}),
	})
}

// stepper computes partial advances of 2^e generations for nodes deeper
// than e+1. Full steps hit the per-node memo slot; the regroupings above
// the full-step level are cached only for the duration of one advance.
type stepper struct {
	s     *Store
	e     int
	cache map[*Node]*Node
}

// stepBy returns the centre of q advanced by 2^e generations, for
// e <= q.Depth()-1.
func (s *Store) stepBy(q *Node, e int) *Node {
	st := stepper{s: s, e: e, cache: make(map[*Node]*Node)}
	return st.step(q)
}

func (st *stepper) step(q *Node) *Node {
	if st.e == q.depth-1 {
		return st.s.Step(q)
	}
	if q == st.s.Dead(q.depth) {
		return st.s.Dead(q.depth - 1)
	}
	if r, ok := st.cache[q]; ok {
		return r
	}
	n := st.s.overlapping(q)
	var res [3][3]*Node
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			res[i][j] = st.step(n[i][j])
		}
	}
	var quad [4]*Node
	for k := 0; k < 4; k++ {
		x, y := k>>1, k&1
		g := st.s.Cons([4]*Node{res[x][y], res[x][y+1], res[x+1][y], res[x+1][y+1]})
		quad[k] = st.s.Center(g)
	}
	r := st.s.Cons(quad)
	st.cache[q] = r
	return r
}

// Destiny advances q by an arbitrary number of generations t, decomposing
// t into power-of-two skips walked from the most significant bit down.
// Before each skip the node is padded so the live region cannot reach the
// border of the stepped centre.
//
// It returns the resulting node together with the offset of q's coordinate
// origin inside the result's plane: cell (i, j) of the input plane, had it
// not evolved, would sit at (off+i, off+j) in the result.
func (s *Store) Destiny(q *Node, t bigint.Int) (*Node, bigint.Int) {
	off := bigint.Zero()
	if t.IsZero() || q == s.Dead(q.depth) {
		return q, off
	}
	cur := q
	for e := t.Log2(); e >= 0; e-- {
		if t.Bit(e) == 0 {
			continue
		}
		start := cur.depth
		for cur.depth < e {
			cur = s.Grow(cur)
		}
		d0 := cur.depth
		cur = s.Grow(s.Grow(cur))
		cur = s.stepBy(cur, e)
		for k := start; k <= d0; k++ {
			off = off.Add(bigint.PowerOf2(k))
		}
	}
	if clog.V(2) {
		clog.Infof("destiny: advanced %v generations to depth %d (%d nodes interned)", t, cur.depth, s.Len())
	}
	return cur, off
}
