// Copyright 2010-2024 Google LLC
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

package compiler

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// Table is an extension table in native form. Wildcards are stored as
// cpmodel.Star. A Table may be shared by several constraints and must not be
// modified.
type Table struct {
	Arity   int
	Rows    [][]int64
	Starred bool
}

// TableCompiler converts XCSP3 tuples into Tables. With caching enabled, a table
// whose content equals the previous one is not converted again: the previous
// Table is returned.
type TableCompiler struct {
	cache bool

	lastKey    uint64
	lastTuples []xcsp.Tuple
	last       *Table
	hits       int
}

// NewTableCompiler returns a TableCompiler, caching the last table if `cache`.
func NewTableCompiler(cache bool) *TableCompiler {
	return &TableCompiler{cache: cache}
}

// Compile converts `tuples`, row and column order preserved. It returns an error
// wrapping ErrRaggedTable if the rows have different lengths.
func (tc *TableCompiler) Compile(tuples []xcsp.Tuple) (*Table, error) {
	var key uint64
	if tc.cache {
		k, err := hashstructure.Hash(tuples, hashstructure.FormatV2, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to hash table: %w", err)
		}
		key = k
		if tc.last != nil && key == tc.lastKey && equalTuples(tuples, tc.lastTuples) {
			tc.hits++
			log.V(1).Infof("table of %d rows shared (%d hits)", len(tuples), tc.hits)
			return tc.last, nil
		}
	}

	t := &Table{Rows: make([][]int64, len(tuples))}
	if len(tuples) > 0 {
		t.Arity = len(tuples[0])
	}
	for i, tuple := range tuples {
		if len(tuple) != t.Arity {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(tuple), t.Arity, ErrRaggedTable)
		}
		row := make([]int64, len(tuple))
		for j, v := range tuple {
			if v == nil {
				row[j] = cpmodel.Star
				t.Starred = true
				continue
			}
			row[j] = *v
		}
		t.Rows[i] = row
	}

	if tc.cache {
		tc.lastKey = key
		tc.lastTuples = cloneTuples(tuples)
		tc.last = t
	}
	return t, nil
}

// Hits returns the number of tables served from the cache.
func (tc *TableCompiler) Hits() int {
	return tc.hits
}

func equalTuples(a, b []xcsp.Tuple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			x, y := a[i][j], b[i][j]
			if (x == nil) != (y == nil) || (x != nil && *x != *y) {
				return false
			}
		}
	}
	return true
}

func cloneTuples(tuples []xcsp.Tuple) []xcsp.Tuple {
	out := make([]xcsp.Tuple, len(tuples))
	for i, t := range tuples {
		row := make(xcsp.Tuple, len(t))
		for j, v := range t {
			if v != nil {
				row[j] = xcsp.Int(*v)
			}
		}
		out[i] = row
	}
	return out
}
