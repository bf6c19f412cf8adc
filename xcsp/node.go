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

// Package xcsp holds the engine-agnostic vocabulary produced by an XCSP3 reader:
// variable domains, expression trees, conditions, tuples and objectives, and the
// Callbacks contract through which a reader reports declarations.
//
// Variables are referenced by name everywhere; names are resolved against the
// native model only when the model is committed.
package xcsp

import (
	"fmt"
	"strings"
)

// Operator is an XCSP3 operator name, as written in the format, e.g. "add",
// "le" or "notin".
type Operator string

// XCSP3 operators.
const (
	OpNeg   Operator = "neg"
	OpAbs   Operator = "abs"
	OpSqr   Operator = "sqr"
	OpNot   Operator = "not"
	OpAdd   Operator = "add"
	OpSub   Operator = "sub"
	OpMul   Operator = "mul"
	OpDiv   Operator = "div"
	OpMod   Operator = "mod"
	OpPow   Operator = "pow"
	OpDist  Operator = "dist"
	OpMin   Operator = "min"
	OpMax   Operator = "max"
	OpLt    Operator = "lt"
	OpLe    Operator = "le"
	OpEq    Operator = "eq"
	OpNe    Operator = "ne"
	OpGe    Operator = "ge"
	OpGt    Operator = "gt"
	OpIn    Operator = "in"
	OpNotIn Operator = "notin"
	OpAnd   Operator = "and"
	OpOr    Operator = "or"
	OpXor   Operator = "xor"
	OpIff   Operator = "iff"
	OpImp   Operator = "imp"
)

// Node is a node of an XCSP3 expression tree. It is one of Constant, Variable,
// Unary, Binary, Nary, IfThenElse, Range or Set.
type Node interface {
	fmt.Stringer
	isNode()
}

// Constant is an integer leaf.
type Constant struct {
	Value int64
}

// Variable is a leaf referencing a variable by name.
type Variable struct {
	Name string
}

// Unary applies Op to a single operand.
type Unary struct {
	Op    Operator
	Child Node
}

// Binary applies Op to two positional operands.
type Binary struct {
	Op          Operator
	Left, Right Node
}

// Nary applies Op to any number of positional operands.
type Nary struct {
	Op       Operator
	Children []Node
}

// IfThenElse is the conditional expression `if(Cond, Then, Else)`.
type IfThenElse struct {
	Cond, Then, Else Node
}

// Range is the leaf `Min..Max`, the right operand of in/notin.
type Range struct {
	Min, Max int64
}

// Set is the leaf `set(Values...)`, the right operand of in/notin.
type Set struct {
	Values []int64
}

func (Constant) isNode()   {}
func (Variable) isNode()   {}
func (Unary) isNode()      {}
func (Binary) isNode()     {}
func (Nary) isNode()       {}
func (IfThenElse) isNode() {}
func (Range) isNode()      {}
func (Set) isNode()        {}

func (n Constant) String() string { return fmt.Sprint(n.Value) }
func (n Variable) String() string { return n.Name }
func (n Unary) String() string    { return call(string(n.Op), n.Child) }
func (n Binary) String() string   { return call(string(n.Op), n.Left, n.Right) }
func (n Nary) String() string     { return call(string(n.Op), n.Children...) }
func (n IfThenElse) String() string {
	return call("if", n.Cond, n.Then, n.Else)
}
func (n Range) String() string { return fmt.Sprintf("%d..%d", n.Min, n.Max) }
func (n Set) String() string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = fmt.Sprint(v)
	}
	return "set(" + strings.Join(parts, ",") + ")"
}

func call(name string, args ...Node) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// Leaves converts variable names into Variable nodes.
func Leaves(names ...string) []Node {
	out := make([]Node, len(names))
	for i, n := range names {
		out[i] = Variable{Name: n}
	}
	return out
}
