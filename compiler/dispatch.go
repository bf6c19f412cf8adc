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

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// Shape is the kind of right-hand side of a condition.
type Shape int

const (
	// ShapeValue is a relational condition against a constant.
	ShapeValue Shape = iota
	// ShapeVariable is a relational condition against a variable.
	ShapeVariable
	// ShapeInterval is a membership condition in an interval.
	ShapeInterval
	// ShapeSet is a membership condition in an explicit set of values.
	ShapeSet
)

func (s Shape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapeVariable:
		return "variable"
	case ShapeInterval:
		return "interval"
	case ShapeSet:
		return "set"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Classify returns the shape of `c`. Relational operators pair with a value or a
// variable, in and notin with an interval or a set; any other pairing returns an
// *UnsupportedConditionError.
func Classify(c xcsp.Condition) (Shape, error) {
	var (
		shape Shape
		table = relationalOperators
	)
	switch c.(type) {
	case nil:
		return 0, &UnsupportedConditionError{Reason: "missing condition"}
	case xcsp.ConditionValue:
		shape = ShapeValue
	case xcsp.ConditionVariable:
		shape = ShapeVariable
	case xcsp.ConditionInterval:
		shape, table = ShapeInterval, setOperators
	case xcsp.ConditionSet:
		shape, table = ShapeSet, setOperators
	default:
		return 0, &UnsupportedConditionError{Condition: c, Reason: fmt.Sprintf("unknown condition type %T", c)}
	}
	if _, err := table.lookup(c.Operator()); err != nil {
		return 0, &UnsupportedConditionError{Condition: c, Reason: fmt.Sprintf("operator %q does not apply to a %v", c.Operator(), shape)}
	}
	return shape, nil
}

// ConditionBuilders holds one construction per condition shape. A constraint
// family leaves a builder nil for a shape it cannot express.
type ConditionBuilders struct {
	Value    func(op cpmodel.Operator, k int64) error
	Variable func(op cpmodel.Operator, name string) error
	Interval func(op cpmodel.Operator, min, max int64) error
	Set      func(op cpmodel.Operator, values []int64) error
}

// Supports returns an *UnsupportedConditionError when `c` cannot be classified or
// when b has no builder for its shape.
func (b ConditionBuilders) Supports(c xcsp.Condition) error {
	shape, err := Classify(c)
	if err != nil {
		return err
	}
	if !b.has(shape) {
		return &UnsupportedConditionError{Condition: c, Reason: fmt.Sprintf("no construction for a %v right-hand side", shape)}
	}
	return nil
}

func (b ConditionBuilders) has(s Shape) bool {
	switch s {
	case ShapeValue:
		return b.Value != nil
	case ShapeVariable:
		return b.Variable != nil
	case ShapeInterval:
		return b.Interval != nil
	case ShapeSet:
		return b.Set != nil
	}
	return false
}

// Dispatch classifies `c`, maps its operator to the native vocabulary and calls
// the builder of b for its shape, returning the builder's error.
func Dispatch(c xcsp.Condition, b ConditionBuilders) error {
	if err := b.Supports(c); err != nil {
		return err
	}
	switch c := c.(type) {
	case xcsp.ConditionValue:
		op, _ := relationalOperators.lookup(c.Op)
		return b.Value(op, c.Value)
	case xcsp.ConditionVariable:
		op, _ := relationalOperators.lookup(c.Op)
		return b.Variable(op, c.Name)
	case xcsp.ConditionInterval:
		op, _ := setOperators.lookup(c.Op)
		return b.Interval(op, c.Min, c.Max)
	case xcsp.ConditionSet:
		op, _ := setOperators.lookup(c.Op)
		return b.Set(op, c.Values)
	}
	return &UnsupportedConditionError{Condition: c, Reason: "unclassified"}
}

// allShapes returns builders producing the native condition of every shape into
// `out`, variables being resolved through `r`.
func allShapes(r Resolver, out *cpmodel.Condition) ConditionBuilders {
	b := relationalShapes(r, out)
	b.Interval = func(op cpmodel.Operator, min, max int64) error {
		*out = cpmodel.CondInterval{Op: op, Min: min, Max: max}
		return nil
	}
	b.Set = func(op cpmodel.Operator, values []int64) error {
		*out = cpmodel.CondSet{Op: op, Values: append([]int64(nil), values...)}
		return nil
	}
	return b
}

// relationalShapes is allShapes restricted to values and variables.
func relationalShapes(r Resolver, out *cpmodel.Condition) ConditionBuilders {
	return ConditionBuilders{
		Value: func(op cpmodel.Operator, k int64) error {
			*out = cpmodel.CondValue{Op: op, Value: k}
			return nil
		},
		Variable: func(op cpmodel.Operator, name string) error {
			v, err := r.Resolve(name)
			if err != nil {
				return err
			}
			*out = cpmodel.CondVar{Op: op, Var: v}
			return nil
		},
	}
}
