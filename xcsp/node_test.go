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

package xcsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNode_String(t *testing.T) {
	x, y := Variable{Name: "x"}, Variable{Name: "y"}
	testCases := []struct {
		node Node
		want string
	}{
		{node: Constant{Value: -3}, want: "-3"},
		{node: x, want: "x"},
		{node: Unary{Op: OpNot, Child: x}, want: "not(x)"},
		{node: Binary{Op: OpDist, Left: x, Right: y}, want: "dist(x,y)"},
		{node: Nary{Op: OpAdd, Children: []Node{x, y, Constant{Value: 1}}}, want: "add(x,y,1)"},
		{node: IfThenElse{Cond: Binary{Op: OpGt, Left: x, Right: y}, Then: x, Else: y}, want: "if(gt(x,y),x,y)"},
		{node: Binary{Op: OpIn, Left: x, Right: Range{Min: 0, Max: 9}}, want: "in(x,0..9)"},
		{node: Binary{Op: OpNotIn, Left: x, Right: Set{Values: []int64{1, 4}}}, want: "notin(x,set(1,4))"},
		{node: Binary{Op: OpAdd, Left: x}, want: "add(x,<nil>)"},
	}

	for _, test := range testCases {
		if got := test.node.String(); got != test.want {
			t.Errorf("String() = %v, want %v", got, test.want)
		}
	}
}

func TestLeaves(t *testing.T) {
	want := []Node{Variable{Name: "a"}, Variable{Name: "b"}}
	if diff := cmp.Diff(want, Leaves("a", "b")); diff != "" {
		t.Errorf("Leaves() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestCondition_String(t *testing.T) {
	testCases := []struct {
		c    Condition
		want string
	}{
		{c: ConditionValue{Op: OpEq, Value: 5}, want: "(eq,5)"},
		{c: ConditionVariable{Op: OpLe, Name: "z"}, want: "(le,z)"},
		{c: ConditionInterval{Op: OpIn, Min: 1, Max: 5}, want: "(in,1..5)"},
		{c: ConditionSet{Op: OpNotIn, Values: []int64{1, 3}}, want: "(notin,set(1,3))"},
	}

	for _, test := range testCases {
		if got := test.c.String(); got != test.want {
			t.Errorf("String() = %v, want %v", got, test.want)
		}
	}
}

func TestDomain(t *testing.T) {
	testCases := []struct {
		name         string
		d            Domain
		wantInterval bool
		want         string
	}{
		{name: "Interval", d: IntervalDomain(0, 3), wantInterval: true, want: "0..3"},
		{name: "Values", d: ValuesDomain(1, 5, 6), want: "1 5 6"},
		{name: "NoValues", d: ValuesDomain(), want: ""},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := test.d.IsInterval(); got != test.wantInterval {
				t.Errorf("IsInterval() = %v, want %v", got, test.wantInterval)
			}
			if got := test.d.String(); got != test.want {
				t.Errorf("String() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestValuesDomain_Copies(t *testing.T) {
	values := []int64{1, 2}
	d := ValuesDomain(values...)
	values[0] = 7
	if d.Values[0] != 1 {
		t.Errorf("ValuesDomain() kept the caller's slice")
	}
}

func TestRow(t *testing.T) {
	row := Row(3, 4)
	if len(row) != 2 || *row[0] != 3 || *row[1] != 4 {
		t.Errorf("Row(3, 4) = %v", row)
	}
	if row[0] == row[1] {
		t.Errorf("Row() shares entries")
	}
}

func TestOperand(t *testing.T) {
	if o := Const(4); o.IsVar() || o.String() != "4" {
		t.Errorf("Const(4) = %+v", o)
	}
	if o := Ref("x"); !o.IsVar() || o.String() != "x" {
		t.Errorf("Ref(x) = %+v", o)
	}
}

func TestParseObjectiveKind(t *testing.T) {
	for k := ObjectiveExpression; k <= ObjectiveNValues; k++ {
		got, err := ParseObjectiveKind(k.String())
		if err != nil {
			t.Fatalf("ParseObjectiveKind(%q) returned with unexpected error %v", k, err)
		}
		if got != k {
			t.Errorf("ParseObjectiveKind(%q) = %v, want %v", k, got, k)
		}
	}
	if _, err := ParseObjectiveKind("median"); err == nil {
		t.Errorf("ParseObjectiveKind(median) returned no error")
	}
}

func TestCloneNode(t *testing.T) {
	children := []Node{Variable{Name: "x"}, Constant{Value: 1}}
	values := []int64{2, 3}
	tree := IfThenElse{
		Cond: Binary{Op: OpIn, Left: Variable{Name: "x"}, Right: Set{Values: values}},
		Then: Nary{Op: OpAdd, Children: children},
		Else: Unary{Op: OpNeg, Child: Variable{Name: "x"}},
	}
	clone := CloneNode(tree)
	children[0], values[0] = Variable{Name: "y"}, 9

	if got, want := clone.String(), "if(in(x,set(2,3)),add(x,1),neg(x))"; got != want {
		t.Errorf("CloneNode() = %v, want %v", got, want)
	}
	if CloneNode(nil) != nil {
		t.Errorf("CloneNode(nil) != nil")
	}
	if CloneNodes(nil) != nil {
		t.Errorf("CloneNodes(nil) != nil")
	}
}

func TestCloneCondition(t *testing.T) {
	values := []int64{1, 3}
	c := CloneCondition(ConditionSet{Op: OpIn, Values: values})
	values[0] = 7
	if got, want := c.String(), "(in,set(1,3))"; got != want {
		t.Errorf("CloneCondition() = %v, want %v", got, want)
	}
	v := ConditionValue{Op: OpEq, Value: 2}
	if got := CloneCondition(v); got != Condition(v) {
		t.Errorf("CloneCondition(%v) = %v", v, got)
	}
}
