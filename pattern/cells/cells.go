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

// Package cells reads and writes dense plaintext bitmaps: a header line
// with the dimensions and rule, then one text row per cell row.
package cells

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/lu4/hashislife/pattern"
)

func init() {
	pattern.RegisterFormat(pattern.Format{
		Name: "cells",
		Ext:  []string{".cells", ".txt"},
		Reader: func(r io.Reader) pattern.ReadCloser {
			return &reader{r: bufio.NewReader(r)}
		},
		Writer: func(w io.Writer) pattern.WriteCloser {
			return &writer{w: bufio.NewWriter(w)}
		},
	})
}

type reader struct {
	r *bufio.Reader
}

func (rd *reader) ReadGrid() (*pattern.Grid, error) {
	var rows, cols int
	var rule string
	header, err := rd.r.ReadString('\n')
	if err != nil && header == "" {
		return nil, errors.Wrap(err, "cells: reading header")
	}
	if _, err := fmt.Sscanf(header, "%d %d %s", &rows, &cols, &rule); err != nil {
		return nil, errors.Wrapf(err, "cells: malformed header %q", strings.TrimSpace(header))
	}
	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("cells: negative dimensions %dx%d", rows, cols)
	}
	g := pattern.NewGrid(rows, cols)
	g.Rule = rule
	for i := 0; i < rows; i++ {
		line, err := rd.r.ReadString('\n')
		if err != nil && line == "" {
			return nil, errors.Wrapf(err, "cells: reading row %d", i)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < cols {
			return nil, errors.Errorf("cells: row %d has %d of %d cells", i, len(line), cols)
		}
		for j := 0; j < cols; j++ {
			switch line[j] {
			case '.', '0', ' ':
			case '#', '1', 'O', '*':
				g.Set(i, j, 1)
			default:
				return nil, errors.Errorf("cells: bad cell %q at %d:%d", line[j], i, j)
			}
		}
	}
	return g, nil
}

func (rd *reader) Close() error { return nil }

type writer struct {
	w *bufio.Writer
}

func (wr *writer) WriteGrid(g *pattern.Grid) error {
	rule := g.Rule
	if rule == "" {
		rule = "B3/S23"
	}
	if _, err := fmt.Fprintf(wr.w, "%d %d %s\n", g.Rows, g.Cols, rule); err != nil {
		return err
	}
	row := make([]byte, g.Cols+1)
	row[g.Cols] = '\n'
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if g.Get(i, j) == 0 {
				row[j] = '.'
			} else {
				row[j] = '#'
			}
		}
		if _, err := wr.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (wr *writer) Close() error { return wr.w.Flush() }
