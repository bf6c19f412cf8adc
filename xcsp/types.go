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
	"fmt"
	"strings"
)

// Condition is the right-hand side of an aggregate constraint: an operator and
// one of a constant, a variable, an interval or a set of values. It is one of
// ConditionValue, ConditionVariable, ConditionInterval or ConditionSet.
type Condition interface {
	fmt.Stringer
	Operator() Operator
}

// ConditionValue is `<Op> Value`.
type ConditionValue struct {
	Op    Operator
	Value int64
}

// ConditionVariable is `<Op> Name`, Name being a variable.
type ConditionVariable struct {
	Op   Operator
	Name string
}

// ConditionInterval is `<Op> Min..Max`.
type ConditionInterval struct {
	Op       Operator
	Min, Max int64
}

// ConditionSet is `<Op> {Values}`.
type ConditionSet struct {
	Op     Operator
	Values []int64
}

func (c ConditionValue) Operator() Operator    { return c.Op }
func (c ConditionVariable) Operator() Operator { return c.Op }
func (c ConditionInterval) Operator() Operator { return c.Op }
func (c ConditionSet) Operator() Operator      { return c.Op }

func (c ConditionValue) String() string    { return fmt.Sprintf("(%s,%d)", c.Op, c.Value) }
func (c ConditionVariable) String() string { return fmt.Sprintf("(%s,%s)", c.Op, c.Name) }
func (c ConditionInterval) String() string {
	return fmt.Sprintf("(%s,%d..%d)", c.Op, c.Min, c.Max)
}
func (c ConditionSet) String() string {
	return fmt.Sprintf("(%s,%s)", c.Op, Set{Values: c.Values}.String())
}

// Domain is the domain of an integer variable: the interval Min..Max, or the
// explicit list Values when Values is not nil.
type Domain struct {
	Min, Max int64
	Values   []int64
}

// IntervalDomain returns the domain Min..Max.
func IntervalDomain(min, max int64) Domain {
	return Domain{Min: min, Max: max}
}

// ValuesDomain returns the domain listing `values`.
func ValuesDomain(values ...int64) Domain {
	return Domain{Values: append([]int64{}, values...)}
}

// IsInterval reports whether the domain is given by its bounds.
func (d Domain) IsInterval() bool {
	return d.Values == nil
}

func (d Domain) String() string {
	if d.IsInterval() {
		return fmt.Sprintf("%d..%d", d.Min, d.Max)
	}
	parts := make([]string, len(d.Values))
	for i, v := range d.Values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// Tuple is a row of an extension table. A nil entry is the wildcard `*`.
type Tuple []*int64

// Int returns a tuple entry holding `v`.
func Int(v int64) *int64 {
	return &v
}

// Row builds a tuple without wildcards.
func Row(values ...int64) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = Int(v)
	}
	return t
}

// Operand is either an integer constant or a variable, as taken by the lengths
// and heights of scheduling constraints.
type Operand struct {
	// Var is the variable name; empty for a constant.
	Var   string
	Value int64
}

// Const returns a constant operand.
func Const(v int64) Operand {
	return Operand{Value: v}
}

// Ref returns an operand referencing the variable `name`.
func Ref(name string) Operand {
	return Operand{Var: name}
}

// IsVar reports whether the operand references a variable.
func (o Operand) IsVar() bool {
	return o.Var != ""
}

func (o Operand) String() string {
	if o.IsVar() {
		return o.Var
	}
	return fmt.Sprint(o.Value)
}

// Transition is an arc `(From, Value, To)` of an automaton or of an MDD.
type Transition struct {
	From  string
	Value int64
	To    string
}

// Direction tells whether an objective is minimized or maximized.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// ObjectiveKind is the aggregation an objective applies to its terms.
type ObjectiveKind int

const (
	ObjectiveExpression ObjectiveKind = iota
	ObjectiveVariable
	ObjectiveSum
	ObjectiveProduct
	ObjectiveMinimum
	ObjectiveMaximum
	ObjectiveNValues
)

var objectiveKindNames = map[ObjectiveKind]string{
	ObjectiveExpression: "expression",
	ObjectiveVariable:   "variable",
	ObjectiveSum:        "sum",
	ObjectiveProduct:    "product",
	ObjectiveMinimum:    "minimum",
	ObjectiveMaximum:    "maximum",
	ObjectiveNValues:    "nValues",
}

func (k ObjectiveKind) String() string {
	if s, ok := objectiveKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ObjectiveKind(%d)", int(k))
}

// ParseObjectiveKind returns the kind named `s`, as written by String.
func ParseObjectiveKind(s string) (ObjectiveKind, error) {
	for k, name := range objectiveKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown objective kind %q", s)
}

// Objective is the function to optimize.
//
// An expression objective sets Tree. A variable objective sets Vars to a single
// name. Aggregations (sum, product, minimum, maximum, nValues) set either Vars or
// Trees, and optionally Coeffs with one coefficient per term.
type Objective struct {
	Kind   ObjectiveKind
	Tree   Node
	Vars   []string
	Trees  []Node
	Coeffs []int64
}
