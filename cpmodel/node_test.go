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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNode_String(t *testing.T) {
	model := NewCpModelBuilder()
	x := model.NewIntVar(0, 5).WithName("x")
	y := model.NewIntVar(0, 5)

	testCases := []struct {
		node *Node
		want string
	}{
		{node: NewLeafConst(-3), want: "-3"},
		{node: NewLeafVar(x), want: "x"},
		{node: NewLeafVar(y), want: "x1"},
		{node: NewParent(OpADD, NewLeafVar(x), NewParent(OpMUL, NewLeafVar(y), NewLeafConst(2))), want: "add(x,mul(x1,2))"},
		{node: NewParent(OpIN, NewLeafVar(x), NewSet([]int64{1, 2})), want: "in(x,set(1,2))"},
		{node: NewParent(OpNOTIN, NewLeafVar(x), NewRange(1, 5)), want: "notin(x,1..5)"},
		{node: NewParent(OpIF, NewLeafVar(x), NewLeafConst(1), NewLeafConst(0)), want: "if(x,1,0)"},
	}

	for _, test := range testCases {
		if got := test.node.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestNode_CountAndVars(t *testing.T) {
	model := NewCpModelBuilder()
	x := model.NewIntVar(0, 5)
	y := model.NewIntVar(0, 5)

	// eq(add(y,x,y),3)
	n := NewParent(OpEQ, NewParent(OpADD, NewLeafVar(y), NewLeafVar(x), NewLeafVar(y)), NewLeafConst(3))

	if got := n.Count(); got != 6 {
		t.Errorf("Count() = %v, want 6", got)
	}
	var got []VarIndex
	for _, v := range n.Vars() {
		got = append(got, v.Index())
	}
	if diff := cmp.Diff([]VarIndex{1, 0}, got); diff != "" {
		t.Errorf("Vars() returned with unexpected diff (-want+got);\n%s", diff)
	}
	if !n.Children[1].IsLeaf() || n.IsLeaf() {
		t.Errorf("IsLeaf() mismatch on %v", n)
	}
}

func TestNode_NewSetCopiesValues(t *testing.T) {
	values := []int64{4, 5}
	n := NewSet(values)
	values[0] = 9

	if diff := cmp.Diff([]int64{4, 5}, n.Values); diff != "" {
		t.Errorf("NewSet() aliased its input (-want+got);\n%s", diff)
	}
}

func TestCondition_String(t *testing.T) {
	model := NewCpModelBuilder()
	z := model.NewIntVar(0, 5).WithName("z")

	testCases := []struct {
		cond  Condition
		want  string
		valid bool
	}{
		{cond: CondValue{Op: OpEQ, Value: 5}, want: "(eq,5)", valid: true},
		{cond: CondVar{Op: OpLE, Var: z}, want: "(le,z)", valid: true},
		{cond: CondInterval{Op: OpIN, Min: 1, Max: 5}, want: "(in,1..5)", valid: true},
		{cond: CondSet{Op: OpNOTIN, Values: []int64{1, 3}}, want: "(notin,{1,3})", valid: true},
		{cond: CondSet{Op: OpGT, Values: []int64{1}}, want: "(gt,{1})", valid: false},
	}

	for _, test := range testCases {
		if got := test.cond.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
		if got := validCondition(test.cond); got != test.valid {
			t.Errorf("validCondition(%v) = %v, want %v", test.cond, got, test.valid)
		}
	}
}
