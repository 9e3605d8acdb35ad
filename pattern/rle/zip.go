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

package rle

import (
	"github.com/cznic/mathutil"
	"github.com/pkg/errors"

	"github.com/lu4/hashislife/hashlife"
)

// Zipper reduces a 2x2 block of token values into the value one level up.
// Zipping a map once with a LeafZipper turns cell runs into runs of depth 0
// nodes; each further pass with a ConsZipper doubles the cell size of a
// token, so iterating builds the full quadtree bottom-up without ever
// materialising a bitmap.
type Zipper interface {
	// Reduce merges the block {v0 v1 / v2 v3}.
	Reduce(vals [4]Value) (Value, error)
	// Default is the value of a cell outside any stored run.
	Default() Value
}

// LeafZipper packs four cell bits into a canonical leaf.
type LeafZipper struct {
	Store *hashlife.Store
}

func (z LeafZipper) Reduce(vals [4]Value) (Value, error) {
	var bits uint8
	for i, v := range vals {
		cell, ok := v.(byte)
		if !ok || cell > 1 {
			return nil, errors.Errorf("rle: zip over a non-cell token %v", v)
		}
		bits |= cell << uint(3-i)
	}
	return z.Store.Leaf(bits), nil
}

func (z LeafZipper) Default() Value { return byte(0) }

// ConsZipper conses four nodes of ChildDepth into their parent.
type ConsZipper struct {
	Store      *hashlife.Store
	ChildDepth int
}

func (z ConsZipper) Reduce(vals [4]Value) (Value, error) {
	var children [4]*hashlife.Node
	for i, v := range vals {
		n, ok := v.(*hashlife.Node)
		if !ok || n.Depth() != z.ChildDepth {
			return nil, errors.Errorf("rle: zip over a non-node token %v", v)
		}
		children[i] = n
	}
	return z.Store.Cons(children), nil
}

func (z ConsZipper) Default() Value { return z.Store.Dead(z.ChildDepth) }

// tokenStream pops tokens off a line one at a time, yielding the default
// token forever once the line is exhausted.
type tokenStream struct {
	toks  []Token
	i     int
	cur   Token
	empty bool
	deflt Value
}

func (ts *tokenStream) pop() {
	if ts.i == len(ts.toks) {
		ts.empty = true
		ts.cur = Token{Value: ts.deflt, Repeat: 1}
		return
	}
	ts.cur = ts.toks[ts.i]
	ts.i++
}

// pairStream yields runs of horizontal cell pairs: pair holds two adjacent
// values and repeat how many consecutive such pairs occur. A token with an
// odd run leaves its last unit for the next pair.
type pairStream struct {
	ts     tokenStream
	pair   [2]Value
	repeat int
	empty  bool
}

func newPairStream(l Line, deflt Value) *pairStream {
	ps := &pairStream{ts: tokenStream{toks: l.Tokens, deflt: deflt}}
	ps.next()
	return ps
}

func (ps *pairStream) next() {
	if ps.ts.cur.Repeat == 0 || ps.ts.empty {
		ps.ts.pop()
		ps.empty = ps.ts.empty
	}
	if ps.ts.cur.Repeat == 1 {
		ps.repeat = 1
		ps.pair[0] = ps.ts.cur.Value
		ps.ts.pop()
		ps.ts.cur.Repeat--
		ps.pair[1] = ps.ts.cur.Value
	} else {
		ps.repeat = ps.ts.cur.Repeat / 2
		ps.ts.cur.Repeat %= 2
		ps.pair[0] = ps.ts.cur.Value
		ps.pair[1] = ps.ts.cur.Value
	}
}

// ZipLines merges two stacked lines into one line of 2x2 blocks. The
// resulting LineNum is left to the caller.
func ZipLines(top, bottom Line, z Zipper) (Line, error) {
	streams := [2]*pairStream{
		newPairStream(top, z.Default()),
		newPairStream(bottom, z.Default()),
	}
	var toks []Token
	for {
		v, err := z.Reduce([4]Value{
			streams[0].pair[0], streams[0].pair[1],
			streams[1].pair[0], streams[1].pair[1],
		})
		if err != nil {
			return Line{}, err
		}
		r := mathutil.Min(streams[0].repeat, streams[1].repeat)
		toks = appendRun(toks, v, r)
		for _, ps := range streams {
			ps.repeat -= r
			if ps.repeat == 0 {
				ps.next()
			}
		}
		if streams[0].empty && streams[1].empty {
			return Line{Tokens: toks}, nil
		}
	}
}

// ZipAdjacentLines reduces a map to half its height and width by pairing
// each even line with the odd line below it; a missing partner is the
// implicit all-default line.
func ZipAdjacentLines(m *Map, z Zipper) (*Map, error) {
	out := &Map{X: (m.X + 1) / 2, Y: (m.Y + 1) / 2, Rule: m.Rule}
	var empty Line
	for i := 0; i < len(m.Lines); {
		start := m.Lines[i]
		var top, bottom Line
		switch {
		case start.LineNum%2 == 1:
			// The line above is implicitly empty.
			top, bottom = empty, start
			i++
		case i+1 < len(m.Lines) && m.Lines[i+1].LineNum == start.LineNum+1:
			top, bottom = start, m.Lines[i+1]
			i += 2
		default:
			// The line below is implicitly empty.
			top, bottom = start, empty
			i++
		}
		l, err := ZipLines(top, bottom, z)
		if err != nil {
			return nil, err
		}
		l.LineNum = start.LineNum / 2
		out.Lines = append(out.Lines, l)
	}
	return out, nil
}

// ToQuad builds the canonical quadtree for m bottom-up: one LeafZipper
// pass followed by ConsZipper passes until a single node covers the whole
// padded power-of-two square.
func ToQuad(s *hashlife.Store, m *Map) (*hashlife.Node, error) {
	rows, cols := m.Extent()
	side, d := 2, 0
	for side < rows || side < cols {
		side <<= 1
		d++
	}
	cur := m
	for k := 0; k <= d; k++ {
		var z Zipper
		if k == 0 {
			z = LeafZipper{Store: s}
		} else {
			z = ConsZipper{Store: s, ChildDepth: k - 1}
		}
		var err error
		cur, err = ZipAdjacentLines(cur, z)
		if err != nil {
			return nil, err
		}
	}
	if len(cur.Lines) == 0 {
		return s.Dead(d), nil
	}
	root, ok := cur.Lines[0].Tokens[0].Value.(*hashlife.Node)
	if !ok || root.Depth() != d {
		return nil, errors.New("rle: zip did not converge to a single node")
	}
	return root, nil
}
