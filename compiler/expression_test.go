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

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// mapResolver resolves names against a fixed set of variables.
type mapResolver map[string]cpmodel.IntVar

func (m mapResolver) Resolve(name string) (cpmodel.IntVar, error) {
	v, ok := m[name]
	if !ok {
		return cpmodel.IntVar{}, &UnresolvedReferenceError{Name: name}
	}
	return v, nil
}

func newResolver(names ...string) mapResolver {
	model := cpmodel.NewCpModelBuilder()
	r := mapResolver{}
	for _, n := range names {
		r[n] = model.NewIntVar(0, 10).WithName(n)
	}
	return r
}

func countNodes(tree xcsp.Node) int {
	n := 1
	for _, c := range operandsOf(tree) {
		n += countNodes(c)
	}
	return n
}

func TestExpressionCompiler_Compile(t *testing.T) {
	x, y := xcsp.Variable{Name: "x"}, xcsp.Variable{Name: "y"}
	testCases := []struct {
		name string
		tree xcsp.Node
		want string
	}{
		{
			name: "Leaf",
			tree: x,
			want: "x",
		},
		{
			name: "Constant",
			tree: xcsp.Constant{Value: -4},
			want: "-4",
		},
		{
			name: "Unary",
			tree: xcsp.Unary{Op: xcsp.OpAbs, Child: x},
			want: "abs(x)",
		},
		{
			name: "BinaryOrder",
			tree: xcsp.Binary{Op: xcsp.OpSub, Left: x, Right: xcsp.Constant{Value: 1}},
			want: "sub(x,1)",
		},
		{
			name: "Nested",
			tree: xcsp.Binary{Op: xcsp.OpAdd, Left: x, Right: xcsp.Binary{Op: xcsp.OpMul, Left: y, Right: xcsp.Constant{Value: 2}}},
			want: "add(x,mul(y,2))",
		},
		{
			name: "NaryOrder",
			tree: xcsp.Nary{Op: xcsp.OpAdd, Children: []xcsp.Node{xcsp.Constant{Value: 1}, xcsp.Constant{Value: 2}, x}},
			want: "add(1,2,x)",
		},
		{
			name: "IfThenElse",
			tree: xcsp.IfThenElse{Cond: xcsp.Binary{Op: xcsp.OpEq, Left: x, Right: xcsp.Constant{Value: 0}}, Then: y, Else: xcsp.Constant{Value: 2}},
			want: "if(eq(x,0),y,2)",
		},
		{
			name: "InRange",
			tree: xcsp.Binary{Op: xcsp.OpIn, Left: x, Right: xcsp.Range{Min: 1, Max: 5}},
			want: "in(x,1..5)",
		},
		{
			name: "NotInSet",
			tree: xcsp.Binary{Op: xcsp.OpNotIn, Left: x, Right: xcsp.Set{Values: []int64{1, 3}}},
			want: "notin(x,set(1,3))",
		},
		{
			name: "DeepChain",
			tree: xcsp.Unary{Op: xcsp.OpNeg, Child: xcsp.Unary{Op: xcsp.OpNeg, Child: xcsp.Unary{Op: xcsp.OpNeg, Child: y}}},
			want: "neg(neg(neg(y)))",
		},
	}

	r := newResolver("x", "y")
	ec := NewExpressionCompiler()
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := ec.Compile(test.tree, r)
			if err != nil {
				t.Fatalf("Compile(%v) returned with unexpected error %v", test.tree, err)
			}
			if got.String() != test.want {
				t.Errorf("Compile(%v) = %v, want %v", test.tree, got, test.want)
			}
			if got.Count() != countNodes(test.tree) {
				t.Errorf("Compile(%v) has %v nodes, want %v", test.tree, got.Count(), countNodes(test.tree))
			}
			if ec.depth() != 0 {
				t.Errorf("Compile(%v) left %v entries on the stacks", test.tree, ec.depth())
			}
		})
	}
}

func TestExpressionCompiler_CompileTwice(t *testing.T) {
	r := newResolver("x")
	tree := xcsp.Binary{Op: xcsp.OpLe, Left: xcsp.Variable{Name: "x"}, Right: xcsp.Constant{Value: 3}}
	ec := NewExpressionCompiler()

	first, err := ec.Compile(tree, r)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	second, err := ec.Compile(tree, r)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if first == second {
		t.Errorf("Compile() returned the same tree twice")
	}
	if first.String() != second.String() {
		t.Errorf("Compile() = %v then %v, want equal trees", first, second)
	}
}

func TestExpressionCompiler_Vars(t *testing.T) {
	r := newResolver("x", "y")
	tree := xcsp.Nary{Op: xcsp.OpAdd, Children: xcsp.Leaves("y", "x", "y")}

	got, err := NewExpressionCompiler().Compile(tree, r)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	vars := got.Vars()
	if len(vars) != 2 || vars[0] != r["y"] || vars[1] != r["x"] {
		t.Errorf("Vars() = %v, want [y x]", vars)
	}
}

func TestExpressionCompiler_Errors(t *testing.T) {
	x := xcsp.Variable{Name: "x"}
	testCases := []struct {
		name       string
		tree       xcsp.Node
		wantOp     xcsp.Operator
		wantFamily string
	}{
		{
			name:       "UnaryFamily",
			tree:       xcsp.Unary{Op: xcsp.OpAdd, Child: x},
			wantOp:     xcsp.OpAdd,
			wantFamily: "unary",
		},
		{
			name:       "NaryFamily",
			tree:       xcsp.Nary{Op: xcsp.OpSub, Children: xcsp.Leaves("x", "x", "x")},
			wantOp:     xcsp.OpSub,
			wantFamily: "n-ary",
		},
		{
			name:       "Unknown",
			tree:       xcsp.Binary{Op: "hypot", Left: x, Right: x},
			wantOp:     "hypot",
			wantFamily: "binary",
		},
		{
			name:       "Nested",
			tree:       xcsp.Binary{Op: xcsp.OpEq, Left: x, Right: xcsp.Unary{Op: xcsp.OpDiv, Child: x}},
			wantOp:     xcsp.OpDiv,
			wantFamily: "unary",
		},
	}

	r := newResolver("x")
	ec := NewExpressionCompiler()
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			for _, run := range []struct {
				name string
				fn   func() error
			}{
				{"Check", func() error { return ec.Check(test.tree) }},
				{"Compile", func() error { _, err := ec.Compile(test.tree, r); return err }},
			} {
				err := run.fn()
				var opErr *UnsupportedOperatorError
				if !errors.As(err, &opErr) {
					t.Fatalf("%s(%v) returned with unexpected error %v, want UnsupportedOperatorError", run.name, test.tree, err)
				}
				if opErr.Operator != test.wantOp || opErr.Family != test.wantFamily {
					t.Errorf("%s(%v) = %v, want %s operator %q", run.name, test.tree, err, test.wantFamily, test.wantOp)
				}
				if ec.depth() != 0 {
					t.Errorf("%s(%v) left %v entries on the stacks", run.name, test.tree, ec.depth())
				}
			}
		})
	}
}

func TestExpressionCompiler_UndeclaredVariable(t *testing.T) {
	r := newResolver("x")
	tree := xcsp.Binary{Op: xcsp.OpLt, Left: xcsp.Variable{Name: "x"}, Right: xcsp.Variable{Name: "z"}}
	ec := NewExpressionCompiler()

	_, err := ec.Compile(tree, r)
	var refErr *UnresolvedReferenceError
	if !errors.As(err, &refErr) || refErr.Name != "z" {
		t.Errorf("Compile(%v) returned with unexpected error %v, want UnresolvedReferenceError for z", tree, err)
	}
	if ec.depth() != 0 {
		t.Errorf("Compile(%v) left %v entries on the stacks", tree, ec.depth())
	}
	if err := ec.Check(tree); err != nil {
		t.Errorf("Check(%v) returned with unexpected error %v", tree, err)
	}
}

func TestExpressionCompiler_Malformed(t *testing.T) {
	x := xcsp.Variable{Name: "x"}
	testCases := []struct {
		name string
		tree xcsp.Node
	}{
		{
			name: "NilTree",
			tree: nil,
		},
		{
			name: "NilOperand",
			tree: xcsp.Binary{Op: xcsp.OpAdd, Left: x},
		},
		{
			name: "EmptyNary",
			tree: xcsp.Nary{Op: xcsp.OpAdd},
		},
		{
			name: "NilNaryOperand",
			tree: xcsp.Nary{Op: xcsp.OpAnd, Children: []xcsp.Node{x, nil}},
		},
	}

	r := newResolver("x")
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			ec := NewExpressionCompiler()
			defer func() {
				p := recover()
				if _, ok := p.(*MalformedExpressionError); !ok {
					t.Errorf("Compile(%v) panicked with %v, want MalformedExpressionError", test.tree, p)
				}
			}()
			ec.Compile(test.tree, r)
		})
	}
}

func TestExpressionCompiler_ReuseAfterPanic(t *testing.T) {
	r := newResolver("x")
	ec := NewExpressionCompiler()
	func() {
		defer func() { recover() }()
		ec.Compile(xcsp.Binary{Op: xcsp.OpAdd, Left: xcsp.Variable{Name: "x"}}, r)
	}()
	if ec.depth() != 0 {
		t.Fatalf("stacks hold %v entries after a panic", ec.depth())
	}

	got, err := ec.Compile(xcsp.Unary{Op: xcsp.OpNot, Child: xcsp.Variable{Name: "x"}}, r)
	if err != nil {
		t.Fatalf("Compile() returned with unexpected error %v", err)
	}
	if got.String() != "not(x)" {
		t.Errorf("Compile() = %v, want not(x)", got)
	}
}
