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
	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// operatorTable maps XCSP3 operators of one family to native operators.
type operatorTable struct {
	family string
	ops    map[xcsp.Operator]cpmodel.Operator
}

func (t operatorTable) lookup(op xcsp.Operator) (cpmodel.Operator, error) {
	if native, ok := t.ops[op]; ok {
		return native, nil
	}
	return 0, &UnsupportedOperatorError{Operator: op, Family: t.family}
}

var (
	unaryOperators = operatorTable{"unary", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpNeg: cpmodel.OpNEG,
		xcsp.OpAbs: cpmodel.OpABS,
		xcsp.OpSqr: cpmodel.OpSQR,
		xcsp.OpNot: cpmodel.OpNOT,
	}}

	binaryOperators = operatorTable{"binary", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpAdd:   cpmodel.OpADD,
		xcsp.OpSub:   cpmodel.OpSUB,
		xcsp.OpMul:   cpmodel.OpMUL,
		xcsp.OpDiv:   cpmodel.OpDIV,
		xcsp.OpMod:   cpmodel.OpMOD,
		xcsp.OpPow:   cpmodel.OpPOW,
		xcsp.OpDist:  cpmodel.OpDIST,
		xcsp.OpMin:   cpmodel.OpMIN,
		xcsp.OpMax:   cpmodel.OpMAX,
		xcsp.OpLt:    cpmodel.OpLT,
		xcsp.OpLe:    cpmodel.OpLE,
		xcsp.OpEq:    cpmodel.OpEQ,
		xcsp.OpNe:    cpmodel.OpNE,
		xcsp.OpGe:    cpmodel.OpGE,
		xcsp.OpGt:    cpmodel.OpGT,
		xcsp.OpIn:    cpmodel.OpIN,
		xcsp.OpNotIn: cpmodel.OpNOTIN,
		xcsp.OpAnd:   cpmodel.OpAND,
		xcsp.OpOr:    cpmodel.OpOR,
		xcsp.OpXor:   cpmodel.OpXOR,
		xcsp.OpIff:   cpmodel.OpIFF,
		xcsp.OpImp:   cpmodel.OpIMP,
	}}

	naryOperators = operatorTable{"n-ary", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpAdd: cpmodel.OpADD,
		xcsp.OpMul: cpmodel.OpMUL,
		xcsp.OpMin: cpmodel.OpMIN,
		xcsp.OpMax: cpmodel.OpMAX,
		xcsp.OpEq:  cpmodel.OpEQ,
		xcsp.OpAnd: cpmodel.OpAND,
		xcsp.OpOr:  cpmodel.OpOR,
		xcsp.OpXor: cpmodel.OpXOR,
		xcsp.OpIff: cpmodel.OpIFF,
	}}

	relationalOperators = operatorTable{"relational", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpLt: cpmodel.OpLT,
		xcsp.OpLe: cpmodel.OpLE,
		xcsp.OpEq: cpmodel.OpEQ,
		xcsp.OpNe: cpmodel.OpNE,
		xcsp.OpGe: cpmodel.OpGE,
		xcsp.OpGt: cpmodel.OpGT,
	}}

	setOperators = operatorTable{"set", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpIn:    cpmodel.OpIN,
		xcsp.OpNotIn: cpmodel.OpNOTIN,
	}}

	logicalOperators = operatorTable{"logical", map[xcsp.Operator]cpmodel.Operator{
		xcsp.OpAnd: cpmodel.OpAND,
		xcsp.OpOr:  cpmodel.OpOR,
		xcsp.OpXor: cpmodel.OpXOR,
		xcsp.OpIff: cpmodel.OpIFF,
		xcsp.OpImp: cpmodel.OpIMP,
	}}
)
