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

type constraint = cpmodel.Constraint

// AddRegular stages a regular constraint.
func (r *Router) AddRegular(vars []string, transitions []xcsp.Transition, start string, finals []string) error {
	vars, finals = copyNames(vars), copyNames(finals)
	ts := nativeTransitions(transitions)
	return r.declare("regular", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddRegular(vs, ts, start, finals), nil
	})
}

// AddMDD stages an MDD constraint.
func (r *Router) AddMDD(vars []string, transitions []xcsp.Transition) error {
	vars = copyNames(vars)
	ts := nativeTransitions(transitions)
	return r.declare("mdd", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddMDD(vs, ts), nil
	})
}

func nativeTransitions(transitions []xcsp.Transition) []cpmodel.Transition {
	out := make([]cpmodel.Transition, len(transitions))
	for i, t := range transitions {
		out[i] = cpmodel.Transition{From: t.From, Value: t.Value, To: t.To}
	}
	return out
}

// AddAllDifferent stages an allDifferent constraint; values of `except` may be
// repeated.
func (r *Router) AddAllDifferent(vars []string, except []int64) error {
	vars, except = copyNames(vars), append([]int64(nil), except...)
	return r.declare("allDifferent", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllDifferent(vs, except...), nil
	})
}

// AddAllDifferentExpr stages an allDifferent constraint over expressions.
func (r *Router) AddAllDifferentExpr(trees []xcsp.Node) error {
	trees = xcsp.CloneNodes(trees)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("allDifferent: %w", err)
	}
	return r.declare("allDifferent", func(m *cpmodel.Builder) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllDifferentExprs(exprs), nil
	})
}

// AddAllDifferentList stages an allDifferent constraint over lists.
func (r *Router) AddAllDifferentList(lists [][]string) error {
	lists = copyNameMatrix(lists)
	return r.declare("allDifferentList", func(m *cpmodel.Builder) (constraint, error) {
		ls, err := resolveMatrix(r.stage, lists)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllDifferentLists(ls), nil
	})
}

// AddAllDifferentMatrix stages an allDifferent constraint on the rows and
// columns of `matrix`.
func (r *Router) AddAllDifferentMatrix(matrix [][]string, except []int64) error {
	matrix, except = copyNameMatrix(matrix), append([]int64(nil), except...)
	return r.declare("allDifferentMatrix", func(m *cpmodel.Builder) (constraint, error) {
		ls, err := resolveMatrix(r.stage, matrix)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllDifferentMatrix(ls, except...), nil
	})
}

// AddAllEqual stages an allEqual constraint.
func (r *Router) AddAllEqual(vars []string) error {
	vars = copyNames(vars)
	return r.declare("allEqual", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllEqual(vs), nil
	})
}

// AddAllEqualExpr stages an allEqual constraint over expressions.
func (r *Router) AddAllEqualExpr(trees []xcsp.Node) error {
	trees = xcsp.CloneNodes(trees)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("allEqual: %w", err)
	}
	return r.declare("allEqual", func(m *cpmodel.Builder) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return m.AddAllEqualExprs(exprs), nil
	})
}

// AddNotAllEqual stages a notAllEqual constraint.
func (r *Router) AddNotAllEqual(vars []string) error {
	vars = copyNames(vars)
	return r.declare("notAllEqual", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddNotAllEqual(vs), nil
	})
}

// AddOrdered stages an ordered constraint. `lengths` is empty or holds one
// length less than there are variables.
func (r *Router) AddOrdered(vars []string, lengths []int64, op xcsp.Operator) error {
	native, err := relationalOperators.lookup(op)
	if err != nil {
		return fmt.Errorf("ordered: %w", err)
	}
	if len(lengths) != 0 {
		if err := checkLen("lengths", len(lengths)+1, len(vars)); err != nil {
			return fmt.Errorf("ordered: %w", err)
		}
	}
	vars, lengths = copyNames(vars), append([]int64(nil), lengths...)
	return r.declare("ordered", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddOrdered(vs, lengths, native), nil
	})
}

// AddLex stages a lexicographic ordering of `lists`.
func (r *Router) AddLex(lists [][]string, op xcsp.Operator) error {
	return r.addLex("lex", lists, op, false)
}

// AddLexMatrix stages a lexicographic ordering of the rows and columns of
// `matrix`.
func (r *Router) AddLexMatrix(matrix [][]string, op xcsp.Operator) error {
	return r.addLex("lexMatrix", matrix, op, true)
}

func (r *Router) addLex(kind string, lists [][]string, op xcsp.Operator, matrix bool) error {
	native, err := relationalOperators.lookup(op)
	if err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	lists = copyNameMatrix(lists)
	return r.declare(kind, func(m *cpmodel.Builder) (constraint, error) {
		ls, err := resolveMatrix(r.stage, lists)
		if err != nil {
			return constraint{}, err
		}
		if matrix {
			return m.AddLexMatrix(ls, native), nil
		}
		return m.AddLex(ls, native), nil
	})
}

// AddPrecedence stages a value precedence constraint.
func (r *Router) AddPrecedence(vars []string, values []int64, covered bool) error {
	vars, values = copyNames(vars), append([]int64(nil), values...)
	return r.declare("precedence", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddPrecedence(vs, values, covered), nil
	})
}

// AddSum stages `sum(coeffs[i] * vars[i]) <c>`; empty `coeffs` means all ones.
func (r *Router) AddSum(vars []string, coeffs []int64, c xcsp.Condition) error {
	if len(coeffs) != 0 {
		if err := checkLen("coefficients", len(coeffs), len(vars)); err != nil {
			return fmt.Errorf("sum: %w", err)
		}
	}
	vars, coeffs = copyNames(vars), append([]int64(nil), coeffs...)
	return r.declareWithCondition("sum", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddSum(vs, coeffs, cond), nil
	})
}

// AddSumExpr stages `sum(coeffs[i] * trees[i]) <c>`.
func (r *Router) AddSumExpr(trees []xcsp.Node, coeffs []int64, c xcsp.Condition) error {
	if len(coeffs) != 0 {
		if err := checkLen("coefficients", len(coeffs), len(trees)); err != nil {
			return fmt.Errorf("sum: %w", err)
		}
	}
	trees, coeffs = xcsp.CloneNodes(trees), append([]int64(nil), coeffs...)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("sum: %w", err)
	}
	return r.declareWithCondition("sum", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return m.AddSumExprs(exprs, coeffs, cond), nil
	})
}

// AddSumVarCoeffs stages `sum(coeffVars[i] * vars[i]) <c>`.
func (r *Router) AddSumVarCoeffs(vars, coeffVars []string, c xcsp.Condition) error {
	if err := checkLen("coefficients", len(coeffVars), len(vars)); err != nil {
		return fmt.Errorf("sum: %w", err)
	}
	vars, coeffVars = copyNames(vars), copyNames(coeffVars)
	return r.declareWithCondition("sum", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		cs, err := resolveAll(r.stage, coeffVars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddSumVarCoeffs(vs, cs, cond), nil
	})
}

// AddCount stages `|{i : vars[i] in values}| <c>`.
func (r *Router) AddCount(vars []string, values []int64, c xcsp.Condition) error {
	vars, values = copyNames(vars), append([]int64(nil), values...)
	return r.declareWithCondition("count", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddCount(vs, values, cond), nil
	})
}

// AddCountVarValues is AddCount with values held by variables.
func (r *Router) AddCountVarValues(vars, values []string, c xcsp.Condition) error {
	vars, values = copyNames(vars), copyNames(values)
	return r.declareWithCondition("count", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		ws, err := resolveAll(r.stage, values)
		if err != nil {
			return constraint{}, err
		}
		return m.AddCountVarValues(vs, ws, cond), nil
	})
}

// AddCountExpr is AddCount over expressions.
func (r *Router) AddCountExpr(trees []xcsp.Node, values []int64, c xcsp.Condition) error {
	trees, values = xcsp.CloneNodes(trees), append([]int64(nil), values...)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("count: %w", err)
	}
	return r.declareWithCondition("count", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return m.AddCountExprs(exprs, values, cond), nil
	})
}

// AddNValues stages `|{vars[i]} \ except| <c>`.
func (r *Router) AddNValues(vars []string, except []int64, c xcsp.Condition) error {
	vars, except = copyNames(vars), append([]int64(nil), except...)
	return r.declareWithCondition("nValues", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddNValues(vs, except, cond), nil
	})
}

// AddNValuesExpr stages `|{trees[i]}| <c>`.
func (r *Router) AddNValuesExpr(trees []xcsp.Node, c xcsp.Condition) error {
	trees = xcsp.CloneNodes(trees)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("nValues: %w", err)
	}
	return r.declareWithCondition("nValues", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return m.AddNValuesExprs(exprs, cond), nil
	})
}

type extremumFunc func(m *cpmodel.Builder, vars []cpmodel.IntVar, c cpmodel.Condition) cpmodel.Constraint

func (r *Router) addExtremum(kind string, vars []string, c xcsp.Condition, add extremumFunc) error {
	vars = copyNames(vars)
	return r.declareWithCondition(kind, c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return add(m, vs, cond), nil
	})
}

// AddMinimum stages `min(vars) <c>`.
func (r *Router) AddMinimum(vars []string, c xcsp.Condition) error {
	return r.addExtremum("minimum", vars, c, (*cpmodel.Builder).AddMinimum)
}

// AddMaximum stages `max(vars) <c>`.
func (r *Router) AddMaximum(vars []string, c xcsp.Condition) error {
	return r.addExtremum("maximum", vars, c, (*cpmodel.Builder).AddMaximum)
}

// AddMinimumArg stages `argmin(vars) <c>`.
func (r *Router) AddMinimumArg(vars []string, c xcsp.Condition) error {
	return r.addExtremum("minimumArg", vars, c, (*cpmodel.Builder).AddMinimumArg)
}

// AddMaximumArg stages `argmax(vars) <c>`.
func (r *Router) AddMaximumArg(vars []string, c xcsp.Condition) error {
	return r.addExtremum("maximumArg", vars, c, (*cpmodel.Builder).AddMaximumArg)
}

type extremumExprFunc func(m *cpmodel.Builder, exprs []*cpmodel.Node, c cpmodel.Condition) cpmodel.Constraint

func (r *Router) addExtremumExpr(kind string, trees []xcsp.Node, c xcsp.Condition, add extremumExprFunc) error {
	trees = xcsp.CloneNodes(trees)
	if err := r.checkTrees(trees); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return r.declareWithCondition(kind, c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		exprs, err := r.compileAll(trees)
		if err != nil {
			return constraint{}, err
		}
		return add(m, exprs, cond), nil
	})
}

// AddMinimumExpr stages `min(trees) <c>`.
func (r *Router) AddMinimumExpr(trees []xcsp.Node, c xcsp.Condition) error {
	return r.addExtremumExpr("minimum", trees, c, (*cpmodel.Builder).AddMinimumExprs)
}

// AddMaximumExpr stages `max(trees) <c>`.
func (r *Router) AddMaximumExpr(trees []xcsp.Node, c xcsp.Condition) error {
	return r.addExtremumExpr("maximum", trees, c, (*cpmodel.Builder).AddMaximumExprs)
}

// AddElement stages the constraint that some variable of `vars` satisfies `c`.
// Element conditions compare against a value or a variable only.
func (r *Router) AddElement(vars []string, c xcsp.Condition) error {
	vars = copyNames(vars)
	return r.declareWithCondition("element", c, true, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddElement(vs, cond), nil
	})
}

// AddElementAt stages `vars[index - startIndex] <c>`.
func (r *Router) AddElementAt(vars []string, startIndex int64, index string, c xcsp.Condition) error {
	vars = copyNames(vars)
	return r.declareWithCondition("element", c, true, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		idx, err := r.stage.Resolve(index)
		if err != nil {
			return constraint{}, err
		}
		return m.AddElementAt(vs, startIndex, idx, cond), nil
	})
}

// AddElementConstants stages `values[index - startIndex] <c>`.
func (r *Router) AddElementConstants(values []int64, startIndex int64, index string, c xcsp.Condition) error {
	values = append([]int64(nil), values...)
	return r.declareWithCondition("element", c, true, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		idx, err := r.stage.Resolve(index)
		if err != nil {
			return constraint{}, err
		}
		return m.AddElementValues(values, startIndex, idx, cond), nil
	})
}

// AddElementMatrix stages `matrix[row - startRow][col - startCol] <c>`.
func (r *Router) AddElementMatrix(matrix [][]string, startRow int64, row string, startCol int64, col string, c xcsp.Condition) error {
	matrix = copyNameMatrix(matrix)
	return r.declareWithCondition("elementMatrix", c, true, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		ls, err := resolveMatrix(r.stage, matrix)
		if err != nil {
			return constraint{}, err
		}
		rv, err := r.stage.Resolve(row)
		if err != nil {
			return constraint{}, err
		}
		cv, err := r.stage.Resolve(col)
		if err != nil {
			return constraint{}, err
		}
		return m.AddElementMatrix(ls, startRow, rv, startCol, cv, cond), nil
	})
}

// AddChannel stages a channel constraint on a single list.
func (r *Router) AddChannel(vars []string, start int64) error {
	vars = copyNames(vars)
	return r.declare("channel", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddChannel(vs, start), nil
	})
}

// AddChannelValue stages a channel constraint between 0/1 variables and `value`.
func (r *Router) AddChannelValue(vars []string, start int64, value string) error {
	vars = copyNames(vars)
	return r.declare("channel", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		v, err := r.stage.Resolve(value)
		if err != nil {
			return constraint{}, err
		}
		return m.AddChannelValue(vs, start, v), nil
	})
}

// AddChannelPair stages a channel constraint between two lists.
func (r *Router) AddChannelPair(vars1 []string, start1 int64, vars2 []string, start2 int64) error {
	vars1, vars2 = copyNames(vars1), copyNames(vars2)
	return r.declare("channel", func(m *cpmodel.Builder) (constraint, error) {
		vs1, err := resolveAll(r.stage, vars1)
		if err != nil {
			return constraint{}, err
		}
		vs2, err := resolveAll(r.stage, vars2)
		if err != nil {
			return constraint{}, err
		}
		return m.AddChannelPair(vs1, start1, vs2, start2), nil
	})
}

// AddInstantiation stages `vars[i] = values[i]`.
func (r *Router) AddInstantiation(vars []string, values []int64) error {
	if err := checkLen("values", len(values), len(vars)); err != nil {
		return fmt.Errorf("instantiation: %w", err)
	}
	vars, values = copyNames(vars), append([]int64(nil), values...)
	return r.declare("instantiation", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddInstantiation(vs, values), nil
	})
}

// AddNoOverlap stages a noOverlap constraint over tasks of constant or variable
// lengths.
func (r *Router) AddNoOverlap(origins []string, lengths []xcsp.Operand, zeroIgnored bool) error {
	if err := checkLen("lengths", len(lengths), len(origins)); err != nil {
		return fmt.Errorf("noOverlap: %w", err)
	}
	origins, lengths = copyNames(origins), append([]xcsp.Operand(nil), lengths...)
	return r.declare("noOverlap", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, origins)
		if err != nil {
			return constraint{}, err
		}
		ls, err := r.operands(lengths)
		if err != nil {
			return constraint{}, err
		}
		return m.AddNoOverlap(vs, ls, zeroIgnored), nil
	})
}

// AddCumulative stages a cumulative constraint. `ends` may be nil.
func (r *Router) AddCumulative(origins []string, lengths, heights []xcsp.Operand, ends []string, c xcsp.Condition) error {
	for _, l := range []struct {
		what string
		n    int
	}{{"lengths", len(lengths)}, {"heights", len(heights)}} {
		if err := checkLen(l.what, l.n, len(origins)); err != nil {
			return fmt.Errorf("cumulative: %w", err)
		}
	}
	if ends != nil {
		if err := checkLen("ends", len(ends), len(origins)); err != nil {
			return fmt.Errorf("cumulative: %w", err)
		}
	}
	origins, ends = copyNames(origins), copyNames(ends)
	lengths, heights = append([]xcsp.Operand(nil), lengths...), append([]xcsp.Operand(nil), heights...)
	return r.declareWithCondition("cumulative", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		os, err := resolveAll(r.stage, origins)
		if err != nil {
			return constraint{}, err
		}
		ls, err := r.operands(lengths)
		if err != nil {
			return constraint{}, err
		}
		hs, err := r.operands(heights)
		if err != nil {
			return constraint{}, err
		}
		es, err := resolveAll(r.stage, ends)
		if err != nil {
			return constraint{}, err
		}
		return m.AddCumulative(os, ls, hs, es, cond), nil
	})
}

// AddBinPacking stages a binPacking constraint; `c` applies to the load of
// every bin.
func (r *Router) AddBinPacking(vars []string, sizes []int64, c xcsp.Condition) error {
	if err := checkLen("sizes", len(sizes), len(vars)); err != nil {
		return fmt.Errorf("binPacking: %w", err)
	}
	vars, sizes = copyNames(vars), append([]int64(nil), sizes...)
	return r.declareWithCondition("binPacking", c, false, func(m *cpmodel.Builder, cond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddBinPacking(vs, sizes, cond), nil
	})
}

// AddKnapsack stages a knapsack constraint with a condition on the total weight
// and one on the total profit.
func (r *Router) AddKnapsack(vars []string, weights []int64, wc xcsp.Condition, profits []int64, pc xcsp.Condition) error {
	if err := checkLen("weights", len(weights), len(vars)); err != nil {
		return fmt.Errorf("knapsack: %w", err)
	}
	if err := checkLen("profits", len(profits), len(vars)); err != nil {
		return fmt.Errorf("knapsack: %w", err)
	}
	if err := r.shapes(nil, false).Supports(pc); err != nil {
		return fmt.Errorf("knapsack: %w", err)
	}
	vars, pc = copyNames(vars), xcsp.CloneCondition(pc)
	weights, profits = append([]int64(nil), weights...), append([]int64(nil), profits...)
	return r.declareWithCondition("knapsack", wc, false, func(m *cpmodel.Builder, weightCond cpmodel.Condition) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		profitCond, err := r.condition(pc, false)
		if err != nil {
			return constraint{}, err
		}
		return m.AddKnapsack(vs, weights, weightCond, profits, profitCond), nil
	})
}

// AddCircuit stages a circuit constraint.
func (r *Router) AddCircuit(vars []string, start int64) error {
	vars = copyNames(vars)
	return r.declare("circuit", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddCircuit(vs, start), nil
	})
}

// AddClause stages the clause `pos[0] or ... or not neg[0] or ...`.
func (r *Router) AddClause(pos, neg []string) error {
	pos, neg = copyNames(pos), copyNames(neg)
	return r.declare("clause", func(m *cpmodel.Builder) (constraint, error) {
		ps, err := resolveAll(r.stage, pos)
		if err != nil {
			return constraint{}, err
		}
		ns, err := resolveAll(r.stage, neg)
		if err != nil {
			return constraint{}, err
		}
		return m.AddClause(ps, ns), nil
	})
}

// AddLogical stages `op(vars)`.
func (r *Router) AddLogical(op xcsp.Operator, vars []string) error {
	native, err := logicalOperators.lookup(op)
	if err != nil {
		return fmt.Errorf("logical: %w", err)
	}
	vars = copyNames(vars)
	return r.declare("logical", func(m *cpmodel.Builder) (constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddLogical(native, vs), nil
	})
}

// AddLogicalEq stages `x <=> op(vars)`.
func (r *Router) AddLogicalEq(x string, op xcsp.Operator, vars []string) error {
	native, err := logicalOperators.lookup(op)
	if err != nil {
		return fmt.Errorf("logical: %w", err)
	}
	vars = copyNames(vars)
	return r.declare("logical", func(m *cpmodel.Builder) (constraint, error) {
		res, err := r.stage.Resolve(x)
		if err != nil {
			return constraint{}, err
		}
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return constraint{}, err
		}
		return m.AddLogicalEq(res, native, vs), nil
	})
}
