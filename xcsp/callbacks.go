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

// Callbacks receives the declarations of an XCSP3 instance, one call per
// declared element in document order. Variables are referenced by name and may
// be declared after the constraints using them. Implementations must not retain
// the slices they are given: readers may reuse their buffers between calls.
//
// EndInstance is called once after the last declaration.
type Callbacks interface {
	NewVariable(name string, d Domain) error

	BeginGroup() error
	EndGroup() error

	AddIntension(tree Node) error
	AddExtension(vars []string, tuples []Tuple, support bool) error

	AddRegular(vars []string, transitions []Transition, start string, finals []string) error
	AddMDD(vars []string, transitions []Transition) error

	AddAllDifferent(vars []string, except []int64) error
	AddAllDifferentExpr(trees []Node) error
	AddAllDifferentList(lists [][]string) error
	AddAllDifferentMatrix(matrix [][]string, except []int64) error
	AddAllEqual(vars []string) error
	AddAllEqualExpr(trees []Node) error
	AddNotAllEqual(vars []string) error
	AddOrdered(vars []string, lengths []int64, op Operator) error
	AddLex(lists [][]string, op Operator) error
	AddLexMatrix(matrix [][]string, op Operator) error
	AddPrecedence(vars []string, values []int64, covered bool) error

	AddSum(vars []string, coeffs []int64, c Condition) error
	AddSumExpr(trees []Node, coeffs []int64, c Condition) error
	AddSumVarCoeffs(vars, coeffVars []string, c Condition) error
	AddCount(vars []string, values []int64, c Condition) error
	AddCountVarValues(vars, values []string, c Condition) error
	AddCountExpr(trees []Node, values []int64, c Condition) error
	AddNValues(vars []string, except []int64, c Condition) error
	AddNValuesExpr(trees []Node, c Condition) error

	AddMinimum(vars []string, c Condition) error
	AddMaximum(vars []string, c Condition) error
	AddMinimumExpr(trees []Node, c Condition) error
	AddMaximumExpr(trees []Node, c Condition) error
	AddMinimumArg(vars []string, c Condition) error
	AddMaximumArg(vars []string, c Condition) error
	AddElement(vars []string, c Condition) error
	AddElementAt(vars []string, startIndex int64, index string, c Condition) error
	AddElementConstants(values []int64, startIndex int64, index string, c Condition) error
	AddElementMatrix(matrix [][]string, startRow int64, row string, startCol int64, col string, c Condition) error
	AddChannel(vars []string, start int64) error
	AddChannelValue(vars []string, start int64, value string) error
	AddChannelPair(vars1 []string, start1 int64, vars2 []string, start2 int64) error
	AddInstantiation(vars []string, values []int64) error

	AddNoOverlap(origins []string, lengths []Operand, zeroIgnored bool) error
	AddCumulative(origins []string, lengths, heights []Operand, ends []string, c Condition) error
	AddBinPacking(vars []string, sizes []int64, c Condition) error
	AddKnapsack(vars []string, weights []int64, wc Condition, profits []int64, pc Condition) error
	AddCircuit(vars []string, start int64) error

	AddClause(pos, neg []string) error
	AddLogical(op Operator, vars []string) error
	AddLogicalEq(x string, op Operator, vars []string) error

	AddObjective(dir Direction, o Objective) error

	DecisionVariables(vars []string) error
	ValueHeuristicStatic(vars []string, order []int64) error

	EndInstance() error
}
