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

package cpmodel

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var domainOpts = cmp.AllowUnexported(Domain{}, ClosedInterval{})

func TestDomain_XCSPDomains(t *testing.T) {
	testCases := []struct {
		name     string
		got      Domain
		wantFlat []int64
		wantStr  string
	}{
		{name: "Range", got: NewDomain(-5, 10), wantFlat: []int64{-5, 10}, wantStr: "-5..10"},
		{name: "ReversedRange", got: NewDomain(10, -1), wantFlat: []int64{}, wantStr: ""},
		{name: "NoValues", got: FromValues(nil), wantFlat: []int64{}, wantStr: ""},
		{name: "RepeatedValues", got: FromValues([]int64{2, 0, 1, 1, 2}), wantFlat: []int64{0, 2}, wantStr: "0..2"},
		{name: "Holes", got: FromValues([]int64{9, 5, -4, 10, 8}), wantFlat: []int64{-4, -4, 5, 5, 8, 10}, wantStr: "-4 5 8..10"},
		{name: "TopValue", got: FromValues([]int64{math.MaxInt64, math.MaxInt64 - 1}), wantFlat: []int64{math.MaxInt64 - 1, math.MaxInt64}, wantStr: "9223372036854775806..9223372036854775807"},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.wantFlat, test.got.FlattenedIntervals()); diff != "" {
				t.Errorf("FlattenedIntervals() returned with unexpected diff (-want+got);\n%s", diff)
			}
			if got := test.got.String(); got != test.wantStr {
				t.Errorf("String() = %q, want %q", got, test.wantStr)
			}
			if got, want := test.got.IsEmpty(), len(test.wantFlat) == 0; got != want {
				t.Errorf("IsEmpty() = %v, want %v", got, want)
			}
		})
	}
}

func TestDomain_EmptyIsZeroValue(t *testing.T) {
	for _, d := range []Domain{NewEmptyDomain(), NewDomain(1, 0), FromValues([]int64{})} {
		if diff := cmp.Diff(Domain{}, d, domainOpts); diff != "" {
			t.Errorf("empty domain returned with unexpected diff (-want+got);\n%s", diff)
		}
	}
}

func TestDomain_Bounds(t *testing.T) {
	testCases := []struct {
		name             string
		d                Domain
		wantMin, wantMax int64
		wantOK           bool
		wantSize         int64
	}{
		{name: "Holes", d: FromValues([]int64{-1, 0, 1, 3, 5, 6, 7, 8, 9, 10}), wantMin: -1, wantMax: 10, wantOK: true, wantSize: 10},
		{name: "Singleton", d: NewDomain(4, 4), wantMin: 4, wantMax: 4, wantOK: true, wantSize: 1},
		{name: "Empty", d: NewEmptyDomain(), wantSize: 0},
		{name: "Saturated", d: NewDomain(math.MinInt64, math.MaxInt64), wantMin: math.MinInt64, wantMax: math.MaxInt64, wantOK: true, wantSize: math.MaxInt64},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got, ok := test.d.Min(); got != test.wantMin || ok != test.wantOK {
				t.Errorf("Min() = (%v, %v), want (%v, %v)", got, ok, test.wantMin, test.wantOK)
			}
			if got, ok := test.d.Max(); got != test.wantMax || ok != test.wantOK {
				t.Errorf("Max() = (%v, %v), want (%v, %v)", got, ok, test.wantMax, test.wantOK)
			}
			if got := test.d.Size(); got != test.wantSize {
				t.Errorf("Size() = %v, want %v", got, test.wantSize)
			}
		})
	}
}
