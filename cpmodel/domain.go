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
	"fmt"
	"math"
	"sort"
	"strings"
)

// ClosedInterval stores the closed interval `[start,end]`. If the `Start` is greater
// than the `End`, the interval is considered empty.
type ClosedInterval struct {
	Start int64
	End   int64
}

// Size returns the number of integers in the interval, saturating at MaxInt64.
func (c ClosedInterval) Size() int64 {
	if c.Start > c.End {
		return 0
	}
	n := c.End - c.Start
	if n < 0 || n == math.MaxInt64 {
		return math.MaxInt64
	}
	return n + 1
}

// Domain stores a sorted list of disjoint, non-adjacent ClosedIntervals. It is the
// domain representation of every variable of the native model.
type Domain struct {
	intervals []ClosedInterval
}

// normalize drops empty intervals, sorts the rest and merges those that overlap
// or touch.
func (d *Domain) normalize() {
	kept := d.intervals[:0]
	for _, v := range d.intervals {
		if v.Start <= v.End {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		d.intervals = nil
		return
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].End < kept[j].End
	})
	merged := []ClosedInterval{kept[0]}
	for _, next := range kept[1:] {
		last := &merged[len(merged)-1]
		if last.End == math.MaxInt64 || last.End+1 >= next.Start {
			if last.End < next.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	d.intervals = merged
}

// NewEmptyDomain creates an empty Domain.
func NewEmptyDomain() Domain {
	return Domain{}
}

// NewDomain creates a new domain of a single interval `[left,right]`.
// If `left > right`, an empty domain is returned.
func NewDomain(left, right int64) Domain {
	if left > right {
		return NewEmptyDomain()
	}
	return Domain{[]ClosedInterval{{left, right}}}
}

// FromValues creates a new domain from `values`, which need not be sorted and may
// repeat.
func FromValues(values []int64) Domain {
	d := Domain{intervals: make([]ClosedInterval, 0, len(values))}
	for _, v := range values {
		d.intervals = append(d.intervals, ClosedInterval{v, v})
	}
	d.normalize()
	return d
}

// FlattenedIntervals returns the flattened list of interval bounds of the domain.
// For example, `[0,2][5,5][9,10]` gives `[0,2,5,5,9,10]`.
func (d Domain) FlattenedIntervals() []int64 {
	result := make([]int64, 0, 2*len(d.intervals))
	for _, i := range d.intervals {
		result = append(result, i.Start, i.End)
	}
	return result
}

// Min returns the minimum value of the domain, and false if the domain is empty.
func (d Domain) Min() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[0].Start, true
}

// Max returns the maximum value of the domain, and false if the domain is empty.
func (d Domain) Max() (int64, bool) {
	if len(d.intervals) == 0 {
		return 0, false
	}
	return d.intervals[len(d.intervals)-1].End, true
}

// IsEmpty reports whether the domain has no value.
func (d Domain) IsEmpty() bool {
	return len(d.intervals) == 0
}

// Size returns the number of values in the domain, saturating at MaxInt64.
func (d Domain) Size() int64 {
	var total int64
	for _, itv := range d.intervals {
		s := itv.Size()
		if total > math.MaxInt64-s {
			return math.MaxInt64
		}
		total += s
	}
	return total
}

// String renders the domain the way XCSP3 writes domains, e.g. `0..2 5 9..10`.
func (d Domain) String() string {
	var sb strings.Builder
	for i, itv := range d.intervals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if itv.Start == itv.End {
			fmt.Fprintf(&sb, "%d", itv.Start)
		} else {
			fmt.Fprintf(&sb, "%d..%d", itv.Start, itv.End)
		}
	}
	return sb.String()
}
