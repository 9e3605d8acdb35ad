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
	"encoding/binary"

	"github.com/dchest/siphash"

	"github.com/lu4/hashislife/clog"
)

// Hash keys are fixed: the table is process-local and the key material is
// interned node identities, not attacker-controlled input.
const (
	hashKey0 = 0x68617368696c6966 // "hashilif"
	hashKey1 = 0x6532643265766f6c

	initialBuckets = 1 << 10
	maxLoadNum     = 3
	maxLoadDen     = 4
)

// Store is the canonicalizing repository of quadtree nodes. Any two
// structurally equal subpatterns requested from one store share a single
// *Node, so equality is pointer equality and memoized work is shared.
//
// A Store is not safe for concurrent use.
type Store struct {
	rule Rule

	buckets []*Node
	count   int
	last    int64

	leaves [16]*Node
	dead   []*Node
}

// NewStore returns an empty store with the given rule installed. The 16
// possible leaves are interned eagerly.
func NewStore(r Rule) *Store {
	s := &Store{
		rule:    r,
		buckets: make([]*Node, initialBuckets),
	}
	for bits := range s.leaves {
		s.last++
		s.leaves[bits] = &Node{leaf: uint8(bits), id: s.last}
	}
	return s
}

// Rule returns the rule the store was created with.
func (s *Store) Rule() Rule { return s.rule }

// Leaf returns the canonical depth 0 node for the 4-bit cell map bits.
func (s *Store) Leaf(bits uint8) *Node {
	if bits > 15 {
		panic("hashlife: leaf map out of range")
	}
	return s.leaves[bits]
}

// Cons returns the canonical inner node over the four children, which must
// all have the same depth.
func (s *Store) Cons(children [4]*Node) *Node {
	depth := children[0].depth
	for _, c := range children[1:] {
		if c.depth != depth {
			panic("hashlife: Cons over children of unequal depth")
		}
	}
	h := hashChildren(children)
	i := h & uint64(len(s.buckets)-1)
	for n := s.buckets[i]; n != nil; n = n.tl {
		if n.child == children {
			mConsHit.Inc()
			return n
		}
	}
	s.last++
	n := &Node{depth: depth + 1, child: children, id: s.last}
	n.tl = s.buckets[i]
	s.buckets[i] = n
	s.count++
	mNodesNew.Inc()
	if s.count*maxLoadDen > len(s.buckets)*maxLoadNum {
		s.grow()
	}
	return n
}

// Dead returns the canonical all-dead node of the given depth. The empty
// subtree at each depth is built lazily on first request and cached, so
// repeated calls are O(1).
func (s *Store) Dead(depth int) *Node {
	for len(s.dead) <= depth {
		var n *Node
		if len(s.dead) == 0 {
			n = s.Leaf(0)
		} else {
			prev := s.dead[len(s.dead)-1]
			n = s.Cons([4]*Node{prev, prev, prev, prev})
		}
		s.dead = append(s.dead, n)
	}
	return s.dead[depth]
}

// Len returns the number of canonical nodes interned so far, leaves
// included.
func (s *Store) Len() int { return s.count + len(s.leaves) }

func hashChildren(children [4]*Node) uint64 {
	var key [32]byte
	for i, c := range children {
		binary.LittleEndian.PutUint64(key[8*i:], uint64(c.id))
	}
	return siphash.Hash(hashKey0, hashKey1, key[:])
}

func (s *Store) grow() {
	old := s.buckets
	s.buckets = make([]*Node, 2*len(old))
	for _, chain := range old {
		for n := chain; n != nil; {
			next := n.tl
			i := hashChildren(n.child) & uint64(len(s.buckets)-1)
			n.tl = s.buckets[i]
			s.buckets[i] = n
			n = next
		}
	}
	if clog.V(2) {
		clog.Infof("store: rehashed %d nodes into %d buckets", s.count, len(s.buckets))
	}
}
