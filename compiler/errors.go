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
	"fmt"

	"github.com/xcsp3-go/cpbridge/xcsp"
)

var (
	// ErrLengthMismatch holds the error when parallel lists of a declaration do
	// not have the expected lengths.
	ErrLengthMismatch = errors.New("mismatched list lengths")
	// ErrRaggedTable holds the error when the rows of a table do not all have
	// the same length.
	ErrRaggedTable = errors.New("table rows have different lengths")
	// ErrGroup holds the error when group events are not properly nested.
	ErrGroup = errors.New("unbalanced constraint group")
	// ErrMissingTree holds the error when an expression objective has no tree.
	ErrMissingTree = errors.New("expression objective without a tree")
)

// DuplicateNameError is returned when a variable name is declared twice.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("variable %q is already declared", e.Name)
}

// UnresolvedReferenceError is returned when a name cannot be resolved to a
// native variable: either the name was never declared, or the lookup happened
// before the variables were committed.
type UnresolvedReferenceError struct {
	Name string
	// Early is set when the lookup happened before the variables were committed.
	Early bool
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Early {
		return fmt.Sprintf("cannot resolve %q before the variables are committed", e.Name)
	}
	return fmt.Sprintf("undeclared variable %q", e.Name)
}

// UnsupportedOperatorError is returned when an operator has no native
// counterpart in the family it is used in.
type UnsupportedOperatorError struct {
	Operator xcsp.Operator
	// Family is the operator family looked up: "unary", "binary", "n-ary",
	// "relational", "set" or "logical".
	Family string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported %s operator %q", e.Family, e.Operator)
}

// UnsupportedConditionError is returned when a condition cannot be classified,
// or when the constraint family has no construction for its shape.
type UnsupportedConditionError struct {
	Condition xcsp.Condition
	Reason    string
}

func (e *UnsupportedConditionError) Error() string {
	return fmt.Sprintf("unsupported condition %v: %s", e.Condition, e.Reason)
}

// MalformedExpressionError signals a broken expression tree or a broken operand
// stack. It is raised as a panic: it reveals a bug upstream, not bad input.
type MalformedExpressionError struct {
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	return "malformed expression: " + e.Reason
}

func malformed(format string, a ...any) {
	panic(&MalformedExpressionError{Reason: fmt.Sprintf(format, a...)})
}
