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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

func TestTableCompiler_Compile(t *testing.T) {
	testCases := []struct {
		name   string
		tuples []xcsp.Tuple
		want   *Table
	}{
		{
			name:   "Plain",
			tuples: []xcsp.Tuple{xcsp.Row(0, 1), xcsp.Row(1, 0)},
			want:   &Table{Arity: 2, Rows: [][]int64{{0, 1}, {1, 0}}},
		},
		{
			name:   "Starred",
			tuples: []xcsp.Tuple{{xcsp.Int(0), nil}, xcsp.Row(1, 1)},
			want:   &Table{Arity: 2, Rows: [][]int64{{0, cpmodel.Star}, {1, 1}}, Starred: true},
		},
		{
			name:   "Empty",
			tuples: nil,
			want:   &Table{Rows: [][]int64{}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewTableCompiler(false).Compile(test.tuples)
			if err != nil {
				t.Fatalf("Compile() returned with unexpected error %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Compile() returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestTableCompiler_Ragged(t *testing.T) {
	tuples := []xcsp.Tuple{xcsp.Row(0, 1), xcsp.Row(1)}
	if _, err := NewTableCompiler(true).Compile(tuples); !errors.Is(err, ErrRaggedTable) {
		t.Errorf("Compile() returned with unexpected error %v, want ErrRaggedTable", err)
	}
}

func TestTableCompiler_Cache(t *testing.T) {
	tc := NewTableCompiler(true)
	first, err := tc.Compile([]xcsp.Tuple{xcsp.Row(0, 1), {nil, xcsp.Int(2)}})
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}

	// Same content in fresh buffers.
	second, err := tc.Compile([]xcsp.Tuple{xcsp.Row(0, 1), {nil, xcsp.Int(2)}})
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if first != second {
		t.Errorf("Compile() of an identical table returned a new table")
	}
	if tc.Hits() != 1 {
		t.Errorf("Hits() = %v, want 1", tc.Hits())
	}

	third, err := tc.Compile([]xcsp.Tuple{xcsp.Row(0, 1), xcsp.Row(0, 2)})
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if third == first {
		t.Errorf("Compile() of a different table returned the cached table")
	}
	if third.Starred {
		t.Errorf("Compile() returned a starred table without wildcards")
	}

	// Only the last table is kept.
	fourth, err := tc.Compile([]xcsp.Tuple{xcsp.Row(0, 1), {nil, xcsp.Int(2)}})
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if fourth == first {
		t.Errorf("Compile() returned a table older than the last one")
	}
	if tc.Hits() != 1 {
		t.Errorf("Hits() = %v, want 1", tc.Hits())
	}
}

func TestTableCompiler_CacheIgnoresLaterWrites(t *testing.T) {
	tc := NewTableCompiler(true)
	tuples := []xcsp.Tuple{xcsp.Row(3, 4)}
	first, err := tc.Compile(tuples)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}

	*tuples[0][1] = 5
	second, err := tc.Compile(tuples)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if second == first {
		t.Errorf("Compile() served a reused buffer with new content from the cache")
	}
	if diff := cmp.Diff([][]int64{{3, 4}}, first.Rows); diff != "" {
		t.Errorf("cached table changed (-want+got):\n%s", diff)
	}
}

func TestTableCompiler_NoCache(t *testing.T) {
	tc := NewTableCompiler(false)
	tuples := []xcsp.Tuple{xcsp.Row(0, 1)}
	first, _ := tc.Compile(tuples)
	second, _ := tc.Compile(tuples)
	if first == second {
		t.Errorf("Compile() shared a table with caching disabled")
	}
	if tc.Hits() != 0 {
		t.Errorf("Hits() = %v, want 0", tc.Hits())
	}
}
