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

// Package rle reads and writes the Life community's run-length-encoded
// pattern format, and builds quadtrees from it bottom-up by zipping
// adjacent encoded lines.
package rle

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lu4/hashislife/pattern"
)

func init() {
	pattern.RegisterFormat(pattern.Format{
		Name: "rle",
		Ext:  []string{".rle"},
		Reader: func(r io.Reader) pattern.ReadCloser {
			return &gridReader{dec: NewDecoder(r)}
		},
		Writer: func(w io.Writer) pattern.WriteCloser {
			return &gridWriter{enc: NewEncoder(w)}
		},
	})
}

// ErrBadHeader reports a malformed RLE header line.
var ErrBadHeader = errors.New("rle: malformed header")

// Value is a token payload: a cell (byte 0 or 1) in a freshly decoded map,
// a *hashlife.Node after zip passes.
type Value interface{}

// Token is a run of identical values.
type Token struct {
	Value  Value
	Repeat int
}

// Line is one encoded row: its tokens cover columns [0, width) in order,
// with the trailing dead run omitted. LineNum is the 0-based row.
type Line struct {
	LineNum int
	Tokens  []Token
}

func (l Line) width() int {
	w := 0
	for _, t := range l.Tokens {
		w += t.Repeat
	}
	return w
}

// Map is a decoded pattern: lines ascending by LineNum, all LineNum unique,
// all-dead rows omitted.
type Map struct {
	X, Y  int
	Rule  string
	Lines []Line
}

// Extent returns the number of rows and columns actually covered by cells,
// which may exceed the declared x and y of a sloppy file.
func (m *Map) Extent() (rows, cols int) {
	rows, cols = m.Y, m.X
	for _, l := range m.Lines {
		if l.LineNum+1 > rows {
			rows = l.LineNum + 1
		}
		if w := l.width(); w > cols {
			cols = w
		}
	}
	return rows, cols
}

// Decoder reads one RLE pattern from a stream.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// ReadMap decodes the stream: any number of leading #-comment lines, the
// header, then the token body up to '!'.
func (d *Decoder) ReadMap() (*Map, error) {
	var header string
	for {
		line, err := d.r.ReadString('\n')
		if line == "" && err != nil {
			return nil, errors.Wrap(err, "rle: reading header")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if err != nil {
				return nil, ErrBadHeader
			}
			continue
		}
		header = trimmed
		break
	}
	m := &Map{}
	if err := parseHeader(header, m); err != nil {
		return nil, err
	}
	if err := d.readBody(m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseHeader(header string, m *Map) error {
	for _, field := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return errors.Wrapf(ErrBadHeader, "field %q", field)
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch strings.ToLower(k) {
		case "x":
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(ErrBadHeader, "x = %q", v)
			}
			m.X = n
		case "y":
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(ErrBadHeader, "y = %q", v)
			}
			m.Y = n
		case "rule", "r":
			m.Rule = v
		default:
			return errors.Wrapf(ErrBadHeader, "field %q", field)
		}
	}
	return nil
}

// lineBuilder accumulates one row's tokens, dropping the trailing dead run
// and merging adjacent runs of equal cells.
type lineBuilder struct {
	tokens      []Token
	pendingDead int
}

func (b *lineBuilder) dead(n int)  { b.pendingDead += n }
func (b *lineBuilder) alive(n int) {
	if b.pendingDead > 0 {
		b.tokens = appendRun(b.tokens, byte(0), b.pendingDead)
		b.pendingDead = 0
	}
	b.tokens = appendRun(b.tokens, byte(1), n)
}

func appendRun(tokens []Token, v Value, n int) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Value == v {
		tokens[len(tokens)-1].Repeat += n
		return tokens
	}
	return append(tokens, Token{Value: v, Repeat: n})
}

func (d *Decoder) readBody(m *Map) error {
	var b lineBuilder
	row := 0
	flush := func() {
		if len(b.tokens) > 0 {
			m.Lines = append(m.Lines, Line{LineNum: row, Tokens: b.tokens})
		}
		b = lineBuilder{}
	}
	for {
		run, tag, err := d.token()
		if err != nil {
			return err
		}
		switch tag {
		case '!':
			flush()
			return nil
		case '$':
			flush()
			row += run
		case 'o':
			b.alive(run)
		case 'b':
			b.dead(run)
		default:
			return errors.Errorf("rle: unrecognized tag %q", tag)
		}
	}
}

// token scans the next [digits]tag pair, skipping whitespace. A missing
// count means 1.
func (d *Decoder) token() (int, byte, error) {
	var digits []byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return 0, 0, errors.Wrap(err, "rle: unterminated pattern")
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(digits) != 0 {
				return 0, 0, errors.New("rle: run count with no tag")
			}
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		default:
			run := 1
			if len(digits) > 0 {
				n, err := strconv.Atoi(string(digits))
				if err != nil || n < 1 {
					return 0, 0, errors.Errorf("rle: bad run count %q", digits)
				}
				run = n
			}
			return run, c, nil
		}
	}
}

// softLimit is the longest encoded line the encoder emits before wrapping.
const softLimit = 70

// Encoder writes one RLE pattern to a stream. Output is buffered; Close
// flushes it.
type Encoder struct {
	w *bufio.Writer
	// col tracks the width of the output line being assembled.
	col int
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// WriteMap encodes m and terminates it with '!'. The caller owns Close.
func (e *Encoder) WriteMap(m *Map) error {
	rule := m.Rule
	if rule == "" {
		rule = "B3/S23"
	}
	if _, err := fmt.Fprintf(e.w, "x = %d, y = %d, rule = %s\n", m.X, m.Y, rule); err != nil {
		return err
	}
	e.col = 0
	prev := 0
	for _, l := range m.Lines {
		if gap := l.LineNum - prev; gap > 0 {
			e.run(gap, '$')
		}
		prev = l.LineNum
		for i, t := range l.Tokens {
			cell, ok := t.Value.(byte)
			if !ok {
				return errors.Errorf("rle: cannot encode token value %T", t.Value)
			}
			if cell == 0 && i == len(l.Tokens)-1 {
				continue
			}
			tag := byte('b')
			if cell != 0 {
				tag = 'o'
			}
			e.run(t.Repeat, tag)
		}
	}
	if e.col > 0 {
		e.w.WriteByte('\n')
	}
	_, err := e.w.WriteString("!\n")
	return err
}

func (e *Encoder) run(count int, tag byte) {
	var s string
	switch {
	case count < 1:
		return
	case count == 1:
		s = string(tag)
	default:
		s = strconv.Itoa(count) + string(tag)
	}
	if e.col+len(s) > softLimit {
		e.w.WriteByte('\n')
		e.col = 0
	}
	e.w.WriteString(s)
	e.col += len(s)
}

// Close flushes the encoder's buffer.
func (e *Encoder) Close() error { return e.w.Flush() }

// GridToMap run-length encodes a dense grid.
func GridToMap(g *pattern.Grid) *Map {
	m := &Map{X: g.Cols, Y: g.Rows, Rule: g.Rule}
	for i := 0; i < g.Rows; i++ {
		var b lineBuilder
		for j := 0; j < g.Cols; j++ {
			if g.Get(i, j) == 0 {
				b.dead(1)
			} else {
				b.alive(1)
			}
		}
		if len(b.tokens) > 0 {
			m.Lines = append(m.Lines, Line{LineNum: i, Tokens: b.tokens})
		}
	}
	return m
}

// MapToGrid expands a decoded map into a dense grid sized to the larger of
// the declared dimensions and the actual extent.
func MapToGrid(m *Map) *pattern.Grid {
	rows, cols := m.Extent()
	g := pattern.NewGrid(rows, cols)
	g.Rule = m.Rule
	for _, l := range m.Lines {
		col := 0
		for _, t := range l.Tokens {
			if cell, ok := t.Value.(byte); ok && cell != 0 {
				for j := 0; j < t.Repeat; j++ {
					g.Set(l.LineNum, col+j, 1)
				}
			}
			col += t.Repeat
		}
	}
	return g
}

type gridReader struct {
	dec *Decoder
}

func (r *gridReader) ReadGrid() (*pattern.Grid, error) {
	m, err := r.dec.ReadMap()
	if err != nil {
		return nil, err
	}
	return MapToGrid(m), nil
}

func (r *gridReader) Close() error { return nil }

type gridWriter struct {
	enc *Encoder
}

func (w *gridWriter) WriteGrid(g *pattern.Grid) error {
	return w.enc.WriteMap(GridToMap(g))
}

func (w *gridWriter) Close() error { return w.enc.Close() }
