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
	"strings"
)

// Operator is the native operator vocabulary, shared by expression trees and
// conditions.
type Operator int

// Native operators. The zero value is not a valid operator.
const (
	OpNEG Operator = iota + 1
	OpABS
	OpSQR
	OpNOT
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpMOD
	OpPOW
	OpDIST
	OpMIN
	OpMAX
	OpLT
	OpLE
	OpEQ
	OpNE
	OpGE
	OpGT
	OpIN
	OpNOTIN
	OpAND
	OpOR
	OpXOR
	OpIFF
	OpIMP
	OpIF
	OpSET
	// OpVAR and OpLONG tag leaves of expression trees.
	OpVAR
	OpLONG
)

var operatorNames = map[Operator]string{
	OpNEG: "neg", OpABS: "abs", OpSQR: "sqr", OpNOT: "not",
	OpADD: "add", OpSUB: "sub", OpMUL: "mul", OpDIV: "div", OpMOD: "mod",
	OpPOW: "pow", OpDIST: "dist", OpMIN: "min", OpMAX: "max",
	OpLT: "lt", OpLE: "le", OpEQ: "eq", OpNE: "ne", OpGE: "ge", OpGT: "gt",
	OpIN: "in", OpNOTIN: "notin",
	OpAND: "and", OpOR: "or", OpXOR: "xor", OpIFF: "iff", OpIMP: "imp",
	OpIF: "if", OpSET: "set", OpVAR: "var", OpLONG: "long",
}

func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsRelational reports whether the operator is one of LT, LE, EQ, NE, GE, GT.
func (o Operator) IsRelational() bool {
	return o >= OpLT && o <= OpGT
}

// IsSet reports whether the operator is IN or NOTIN.
func (o Operator) IsSet() bool {
	return o == OpIN || o == OpNOTIN
}

// Condition is the right-hand side comparison attached to aggregate constraints
// (sum, count, element, cumulative, ...). It is one of CondValue, CondVar,
// CondInterval or CondSet.
type Condition interface {
	// Operator returns the comparison operator of the condition.
	Operator() Operator
	// involvedVar returns the variable on the right-hand side, if any.
	involvedVar() (IntVar, bool)
	fields() map[string]any
	fmt.Stringer
}

// CondValue is the condition `<op> Value`, op being relational.
type CondValue struct {
	Op    Operator
	Value int64
}

// CondVar is the condition `<op> Var`, op being relational.
type CondVar struct {
	Op  Operator
	Var IntVar
}

// CondInterval is the condition `<op> [Min..Max]`, op being IN or NOTIN.
type CondInterval struct {
	Op       Operator
	Min, Max int64
}

// CondSet is the condition `<op> {Values}`, op being IN or NOTIN.
type CondSet struct {
	Op     Operator
	Values []int64
}

// Operator returns the comparison operator of the condition.
func (c CondValue) Operator() Operator { return c.Op }

// Operator returns the comparison operator of the condition.
func (c CondVar) Operator() Operator { return c.Op }

// Operator returns the comparison operator of the condition.
func (c CondInterval) Operator() Operator { return c.Op }

// Operator returns the comparison operator of the condition.
func (c CondSet) Operator() Operator { return c.Op }

func (CondValue) involvedVar() (IntVar, bool)    { return IntVar{}, false }
func (c CondVar) involvedVar() (IntVar, bool)    { return c.Var, true }
func (CondInterval) involvedVar() (IntVar, bool) { return IntVar{}, false }
func (CondSet) involvedVar() (IntVar, bool)      { return IntVar{}, false }

func (c CondValue) fields() map[string]any {
	return map[string]any{"operator": c.Op.String(), "value": float64(c.Value)}
}

func (c CondVar) fields() map[string]any {
	return map[string]any{"operator": c.Op.String(), "var": float64(c.Var.ind)}
}

func (c CondInterval) fields() map[string]any {
	return map[string]any{"operator": c.Op.String(), "min": float64(c.Min), "max": float64(c.Max)}
}

func (c CondSet) fields() map[string]any {
	return map[string]any{"operator": c.Op.String(), "values": int64List(c.Values)}
}

func (c CondValue) String() string { return fmt.Sprintf("(%v,%d)", c.Op, c.Value) }

func (c CondVar) String() string { return fmt.Sprintf("(%v,%s)", c.Op, c.Var.label()) }

func (c CondInterval) String() string {
	return fmt.Sprintf("(%v,%d..%d)", c.Op, c.Min, c.Max)
}

func (c CondSet) String() string {
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("(%v,{%s})", c.Op, strings.Join(parts, ","))
}

// validCondition reports whether the operator of `c` fits its right-hand side.
func validCondition(c Condition) bool {
	switch c := c.(type) {
	case CondValue:
		return c.Op.IsRelational()
	case CondVar:
		return c.Op.IsRelational()
	case CondInterval:
		return c.Op.IsSet()
	case CondSet:
		return c.Op.IsSet()
	}
	return false
}
