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
	"math"

	log "github.com/golang/glog"
)

// Star is the wildcard value of extension tables: it matches any value of the
// variable at that position.
const Star int64 = math.MinInt64

// Transition is an arc of an automaton or of a multi-valued decision diagram.
type Transition struct {
	From  string
	Value int64
	To    string
}

func varList(vars []IntVar) []any {
	out := make([]any, len(vars))
	for i, v := range vars {
		out[i] = float64(v.ind)
	}
	return out
}

func varMatrix(lists [][]IntVar) []any {
	out := make([]any, len(lists))
	for i, l := range lists {
		out[i] = varList(l)
	}
	return out
}

func int64List(values []int64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

func linearList(las []LinearArgument) []any {
	out := make([]any, len(las))
	for i, la := range las {
		out[i] = asLinearExpr(la).fields()
	}
	return out
}

func flatten(lists [][]IntVar) []IntVar {
	var out []IntVar
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func nodesScope(nodes []*Node) []IntVar {
	var out []IntVar
	for _, n := range nodes {
		out = append(out, n.Vars()...)
	}
	return out
}

func linearScope(las []LinearArgument) []IntVar {
	var out []IntVar
	for _, la := range las {
		for _, vc := range asLinearExpr(la).varCoeffs {
			out = append(out, IntVar{ind: vc.ind, cpb: vc.cpb})
		}
	}
	return out
}

func conditionScope(c Condition) []IntVar {
	if c == nil {
		return nil
	}
	if v, ok := c.involvedVar(); ok {
		return []IntVar{v}
	}
	return nil
}

func copyVars(vars []IntVar) []IntVar {
	return append([]IntVar(nil), vars...)
}

func copyValues(values []int64) []int64 {
	return append([]int64(nil), values...)
}

type intensionBody struct {
	expr *Node
}

func (b *intensionBody) kind() string    { return "intension" }
func (b *intensionBody) scope() []IntVar { return b.expr.Vars() }
func (b *intensionBody) fields() map[string]any {
	return map[string]any{"expr": b.expr.fields()}
}

type extensionBody struct {
	vars     []IntVar
	tuples   [][]int64
	positive bool
	starred  bool
}

func (b *extensionBody) kind() string    { return "extension" }
func (b *extensionBody) scope() []IntVar { return b.vars }
func (b *extensionBody) fields() map[string]any {
	rows := make([]any, len(b.tuples))
	for i, t := range b.tuples {
		rows[i] = int64List(t)
	}
	return map[string]any{"vars": varList(b.vars), "tuples": rows, "positive": b.positive, "starred": b.starred}
}

// AddIntension adds the constraint `expr`, a boolean expression tree.
func (cp *Builder) AddIntension(expr *Node) Constraint {
	cp.checkNodes("intension", expr)
	return cp.appendConstraint(&intensionBody{expr: expr})
}

// AddExtension adds a table constraint over `vars`. When `positive` is true the
// tuples list the supports, otherwise the conflicts. `starred` tells whether some
// tuple holds the Star wildcard. The tuples are shared, not copied: callers must
// not modify them afterwards.
func (cp *Builder) AddExtension(vars []IntVar, tuples [][]int64, positive, starred bool) Constraint {
	cp.checkVars("extension", vars...)
	for _, t := range tuples {
		if len(t) != len(vars) {
			log.Fatalf("length of vars must be the same length as the input tuple: %v != %v", len(vars), len(t))
		}
	}
	return cp.appendConstraint(&extensionBody{vars: copyVars(vars), tuples: tuples, positive: positive, starred: starred})
}

type allDifferentBody struct {
	vars   []IntVar
	exprs  []*Node
	lists  [][]IntVar
	matrix bool
	except []int64
}

func (b *allDifferentBody) kind() string {
	switch {
	case b.matrix:
		return "allDifferentMatrix"
	case b.lists != nil:
		return "allDifferentList"
	}
	return "allDifferent"
}

func (b *allDifferentBody) scope() []IntVar {
	return append(append(copyVars(b.vars), nodesScope(b.exprs)...), flatten(b.lists)...)
}

func (b *allDifferentBody) fields() map[string]any {
	f := map[string]any{}
	if b.vars != nil {
		f["vars"] = varList(b.vars)
	}
	if b.exprs != nil {
		f["exprs"] = nodeList(b.exprs)
	}
	if b.lists != nil {
		f["lists"] = varMatrix(b.lists)
	}
	if len(b.except) > 0 {
		f["except"] = int64List(b.except)
	}
	return f
}

// AddAllDifferent adds a constraint that forces all variables to take different
// values, values listed in `except` being exempted.
func (cp *Builder) AddAllDifferent(vars []IntVar, except ...int64) Constraint {
	cp.checkVars("allDifferent", vars...)
	return cp.appendConstraint(&allDifferentBody{vars: copyVars(vars), except: copyValues(except)})
}

// AddAllDifferentExprs adds a constraint that forces all expressions to take
// different values.
func (cp *Builder) AddAllDifferentExprs(exprs []*Node) Constraint {
	cp.checkNodes("allDifferent", exprs...)
	return cp.appendConstraint(&allDifferentBody{exprs: append([]*Node{}, exprs...)})
}

// AddAllDifferentLists adds a constraint that forces the lists, seen as tuples,
// to be pairwise different.
func (cp *Builder) AddAllDifferentLists(lists [][]IntVar) Constraint {
	cp.checkVars("allDifferentList", flatten(lists)...)
	return cp.appendConstraint(&allDifferentBody{lists: copyMatrix(lists)})
}

// AddAllDifferentMatrix adds a constraint that forces the variables of each row
// and of each column of `matrix` to be different.
func (cp *Builder) AddAllDifferentMatrix(matrix [][]IntVar, except ...int64) Constraint {
	cp.checkVars("allDifferentMatrix", flatten(matrix)...)
	return cp.appendConstraint(&allDifferentBody{lists: copyMatrix(matrix), matrix: true, except: copyValues(except)})
}

func copyMatrix(lists [][]IntVar) [][]IntVar {
	out := make([][]IntVar, len(lists))
	for i, l := range lists {
		out[i] = copyVars(l)
	}
	return out
}

type allEqualBody struct {
	vars     []IntVar
	exprs    []*Node
	negation bool
}

func (b *allEqualBody) kind() string {
	if b.negation {
		return "notAllEqual"
	}
	return "allEqual"
}

func (b *allEqualBody) scope() []IntVar {
	return append(copyVars(b.vars), nodesScope(b.exprs)...)
}

func (b *allEqualBody) fields() map[string]any {
	if b.exprs != nil {
		return map[string]any{"exprs": nodeList(b.exprs)}
	}
	return map[string]any{"vars": varList(b.vars)}
}

// AddAllEqual adds a constraint that forces all variables to take the same value.
func (cp *Builder) AddAllEqual(vars []IntVar) Constraint {
	cp.checkVars("allEqual", vars...)
	return cp.appendConstraint(&allEqualBody{vars: copyVars(vars)})
}

// AddAllEqualExprs adds a constraint that forces all expressions to take the same
// value.
func (cp *Builder) AddAllEqualExprs(exprs []*Node) Constraint {
	cp.checkNodes("allEqual", exprs...)
	return cp.appendConstraint(&allEqualBody{exprs: append([]*Node{}, exprs...)})
}

// AddNotAllEqual adds a constraint that forces at least two variables to differ.
func (cp *Builder) AddNotAllEqual(vars []IntVar) Constraint {
	cp.checkVars("notAllEqual", vars...)
	return cp.appendConstraint(&allEqualBody{vars: copyVars(vars), negation: true})
}

type orderedBody struct {
	vars    []IntVar
	lengths []int64
	op      Operator
}

func (b *orderedBody) kind() string    { return "ordered" }
func (b *orderedBody) scope() []IntVar { return b.vars }
func (b *orderedBody) fields() map[string]any {
	return map[string]any{"vars": varList(b.vars), "lengths": int64List(b.lengths), "operator": b.op.String()}
}

// AddOrdered adds the constraint `vars[i] + lengths[i] <op> vars[i+1]` for each
// consecutive pair. `lengths` is either empty or has len(vars)-1 entries.
func (cp *Builder) AddOrdered(vars []IntVar, lengths []int64, op Operator) Constraint {
	if len(lengths) != 0 && len(lengths) != len(vars)-1 {
		log.Fatalf("lengths must have one entry less than vars: %v != %v", len(lengths), len(vars)-1)
	}
	cp.checkVars("ordered", vars...)
	return cp.appendConstraint(&orderedBody{vars: copyVars(vars), lengths: copyValues(lengths), op: op})
}

type lexBody struct {
	lists  [][]IntVar
	op     Operator
	matrix bool
}

func (b *lexBody) kind() string {
	if b.matrix {
		return "lexMatrix"
	}
	return "lex"
}
func (b *lexBody) scope() []IntVar { return flatten(b.lists) }
func (b *lexBody) fields() map[string]any {
	return map[string]any{"lists": varMatrix(b.lists), "operator": b.op.String()}
}

// AddLex adds a constraint ordering the lists lexicographically with `op`.
func (cp *Builder) AddLex(lists [][]IntVar, op Operator) Constraint {
	cp.checkVars("lex", flatten(lists)...)
	return cp.appendConstraint(&lexBody{lists: copyMatrix(lists), op: op})
}

// AddLexMatrix adds a constraint ordering both the rows and the columns of
// `matrix` lexicographically with `op`.
func (cp *Builder) AddLexMatrix(matrix [][]IntVar, op Operator) Constraint {
	cp.checkVars("lexMatrix", flatten(matrix)...)
	return cp.appendConstraint(&lexBody{lists: copyMatrix(matrix), op: op, matrix: true})
}

type precedenceBody struct {
	vars    []IntVar
	values  []int64
	covered bool
}

func (b *precedenceBody) kind() string    { return "precedence" }
func (b *precedenceBody) scope() []IntVar { return b.vars }
func (b *precedenceBody) fields() map[string]any {
	return map[string]any{"vars": varList(b.vars), "values": int64List(b.values), "covered": b.covered}
}

// AddPrecedence adds a value precedence constraint: the first occurrence of
// values[i] in `vars` comes before the first occurrence of values[i+1]. When
// `covered` is true every value must occur.
func (cp *Builder) AddPrecedence(vars []IntVar, values []int64, covered bool) Constraint {
	cp.checkVars("precedence", vars...)
	return cp.appendConstraint(&precedenceBody{vars: copyVars(vars), values: copyValues(values), covered: covered})
}

type sumBody struct {
	vars      []IntVar
	exprs     []*Node
	coeffs    []int64
	coeffVars []IntVar
	cond      Condition
}

func (b *sumBody) kind() string { return "sum" }
func (b *sumBody) scope() []IntVar {
	s := append(copyVars(b.vars), nodesScope(b.exprs)...)
	return append(append(s, b.coeffVars...), conditionScope(b.cond)...)
}
func (b *sumBody) fields() map[string]any {
	f := map[string]any{"condition": b.cond.fields()}
	if b.exprs != nil {
		f["exprs"] = nodeList(b.exprs)
	} else {
		f["vars"] = varList(b.vars)
	}
	if b.coeffs != nil {
		f["coeffs"] = int64List(b.coeffs)
	}
	if b.coeffVars != nil {
		f["coeffVars"] = varList(b.coeffVars)
	}
	return f
}

// AddSum adds the constraint `sum(coeffs[i] * vars[i]) <cond>`. `coeffs` may be
// empty, meaning all ones.
func (cp *Builder) AddSum(vars []IntVar, coeffs []int64, cond Condition) Constraint {
	if len(coeffs) != 0 && len(coeffs) != len(vars) {
		log.Fatalf("vars and coeffs must be the same length: %v != %v", len(vars), len(coeffs))
	}
	cp.checkVars("sum", vars...)
	cp.checkCondition("sum", cond)
	return cp.appendConstraint(&sumBody{vars: copyVars(vars), coeffs: copyValues(coeffs), cond: cond})
}

// AddSumExprs adds the constraint `sum(coeffs[i] * exprs[i]) <cond>`.
func (cp *Builder) AddSumExprs(exprs []*Node, coeffs []int64, cond Condition) Constraint {
	if len(coeffs) != 0 && len(coeffs) != len(exprs) {
		log.Fatalf("exprs and coeffs must be the same length: %v != %v", len(exprs), len(coeffs))
	}
	cp.checkNodes("sum", exprs...)
	cp.checkCondition("sum", cond)
	return cp.appendConstraint(&sumBody{exprs: append([]*Node{}, exprs...), coeffs: copyValues(coeffs), cond: cond})
}

// AddSumVarCoeffs adds the constraint `sum(coeffVars[i] * vars[i]) <cond>`.
func (cp *Builder) AddSumVarCoeffs(vars, coeffVars []IntVar, cond Condition) Constraint {
	if len(coeffVars) != len(vars) {
		log.Fatalf("vars and coeffVars must be the same length: %v != %v", len(vars), len(coeffVars))
	}
	cp.checkVars("sum", vars...)
	cp.checkVars("sum", coeffVars...)
	cp.checkCondition("sum", cond)
	return cp.appendConstraint(&sumBody{vars: copyVars(vars), coeffVars: copyVars(coeffVars), cond: cond})
}

type countBody struct {
	vars      []IntVar
	exprs     []*Node
	values    []int64
	valueVars []IntVar
	cond      Condition
}

func (b *countBody) kind() string { return "count" }
func (b *countBody) scope() []IntVar {
	s := append(copyVars(b.vars), nodesScope(b.exprs)...)
	return append(append(s, b.valueVars...), conditionScope(b.cond)...)
}
func (b *countBody) fields() map[string]any {
	f := map[string]any{"condition": b.cond.fields()}
	if b.exprs != nil {
		f["exprs"] = nodeList(b.exprs)
	} else {
		f["vars"] = varList(b.vars)
	}
	if b.valueVars != nil {
		f["valueVars"] = varList(b.valueVars)
	} else {
		f["values"] = int64List(b.values)
	}
	return f
}

// AddCount adds the constraint `|{i : vars[i] in values}| <cond>`.
func (cp *Builder) AddCount(vars []IntVar, values []int64, cond Condition) Constraint {
	cp.checkVars("count", vars...)
	cp.checkCondition("count", cond)
	return cp.appendConstraint(&countBody{vars: copyVars(vars), values: copyValues(values), cond: cond})
}

// AddCountVarValues is AddCount with values given by variables.
func (cp *Builder) AddCountVarValues(vars, values []IntVar, cond Condition) Constraint {
	cp.checkVars("count", vars...)
	cp.checkVars("count", values...)
	cp.checkCondition("count", cond)
	return cp.appendConstraint(&countBody{vars: copyVars(vars), valueVars: copyVars(values), cond: cond})
}

// AddCountExprs is AddCount over expressions.
func (cp *Builder) AddCountExprs(exprs []*Node, values []int64, cond Condition) Constraint {
	cp.checkNodes("count", exprs...)
	cp.checkCondition("count", cond)
	return cp.appendConstraint(&countBody{exprs: append([]*Node{}, exprs...), values: copyValues(values), cond: cond})
}

type nValuesBody struct {
	vars   []IntVar
	exprs  []*Node
	except []int64
	cond   Condition
}

func (b *nValuesBody) kind() string { return "nValues" }
func (b *nValuesBody) scope() []IntVar {
	return append(append(copyVars(b.vars), nodesScope(b.exprs)...), conditionScope(b.cond)...)
}
func (b *nValuesBody) fields() map[string]any {
	f := map[string]any{"condition": b.cond.fields()}
	if b.exprs != nil {
		f["exprs"] = nodeList(b.exprs)
	} else {
		f["vars"] = varList(b.vars)
	}
	if len(b.except) > 0 {
		f["except"] = int64List(b.except)
	}
	return f
}

// AddNValues adds the constraint `|{vars[i]} \ except| <cond>`.
func (cp *Builder) AddNValues(vars []IntVar, except []int64, cond Condition) Constraint {
	cp.checkVars("nValues", vars...)
	cp.checkCondition("nValues", cond)
	return cp.appendConstraint(&nValuesBody{vars: copyVars(vars), except: copyValues(except), cond: cond})
}

// AddNValuesExprs adds the constraint `|{exprs[i]}| <cond>`.
func (cp *Builder) AddNValuesExprs(exprs []*Node, cond Condition) Constraint {
	cp.checkNodes("nValues", exprs...)
	cp.checkCondition("nValues", cond)
	return cp.appendConstraint(&nValuesBody{exprs: append([]*Node{}, exprs...), cond: cond})
}

type extremumBody struct {
	maximum bool
	arg     bool
	vars    []IntVar
	exprs   []*Node
	cond    Condition
}

func (b *extremumBody) kind() string {
	k := "minimum"
	if b.maximum {
		k = "maximum"
	}
	if b.arg {
		k += "Arg"
	}
	return k
}
func (b *extremumBody) scope() []IntVar {
	return append(append(copyVars(b.vars), nodesScope(b.exprs)...), conditionScope(b.cond)...)
}
func (b *extremumBody) fields() map[string]any {
	f := map[string]any{"condition": b.cond.fields()}
	if b.exprs != nil {
		f["exprs"] = nodeList(b.exprs)
	} else {
		f["vars"] = varList(b.vars)
	}
	return f
}

func (cp *Builder) addExtremum(b *extremumBody) Constraint {
	cp.checkVars(b.kind(), b.vars...)
	cp.checkNodes(b.kind(), b.exprs...)
	cp.checkCondition(b.kind(), b.cond)
	return cp.appendConstraint(b)
}

// AddMinimum adds the constraint `min(vars) <cond>`.
func (cp *Builder) AddMinimum(vars []IntVar, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{vars: copyVars(vars), cond: cond})
}

// AddMaximum adds the constraint `max(vars) <cond>`.
func (cp *Builder) AddMaximum(vars []IntVar, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{maximum: true, vars: copyVars(vars), cond: cond})
}

// AddMinimumExprs adds the constraint `min(exprs) <cond>`.
func (cp *Builder) AddMinimumExprs(exprs []*Node, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{exprs: append([]*Node{}, exprs...), cond: cond})
}

// AddMaximumExprs adds the constraint `max(exprs) <cond>`.
func (cp *Builder) AddMaximumExprs(exprs []*Node, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{maximum: true, exprs: append([]*Node{}, exprs...), cond: cond})
}

// AddMinimumArg adds the constraint `argmin(vars) <cond>`, indices starting at 0.
func (cp *Builder) AddMinimumArg(vars []IntVar, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{arg: true, vars: copyVars(vars), cond: cond})
}

// AddMaximumArg adds the constraint `argmax(vars) <cond>`, indices starting at 0.
func (cp *Builder) AddMaximumArg(vars []IntVar, cond Condition) Constraint {
	return cp.addExtremum(&extremumBody{maximum: true, arg: true, vars: copyVars(vars), cond: cond})
}

type elementBody struct {
	vars       []IntVar
	values     []int64
	matrix     [][]IntVar
	hasIndex   bool
	startIndex int64
	index      IntVar
	startCol   int64
	col        IntVar
	cond       Condition
}

func (b *elementBody) kind() string {
	if b.matrix != nil {
		return "elementMatrix"
	}
	return "element"
}

func (b *elementBody) scope() []IntVar {
	s := append(copyVars(b.vars), flatten(b.matrix)...)
	if b.hasIndex {
		s = append(s, b.index)
	}
	if b.matrix != nil {
		s = append(s, b.col)
	}
	return append(s, conditionScope(b.cond)...)
}

func (b *elementBody) fields() map[string]any {
	f := map[string]any{"condition": b.cond.fields()}
	switch {
	case b.matrix != nil:
		f["matrix"] = varMatrix(b.matrix)
		f["startCol"] = float64(b.startCol)
		f["col"] = float64(b.col.ind)
	case b.values != nil:
		f["values"] = int64List(b.values)
	default:
		f["vars"] = varList(b.vars)
	}
	if b.hasIndex {
		f["startIndex"] = float64(b.startIndex)
		f["index"] = float64(b.index.ind)
	}
	return f
}

// AddElement adds the constraint that some variable of `vars` satisfies `cond`.
func (cp *Builder) AddElement(vars []IntVar, cond Condition) Constraint {
	cp.checkVars("element", vars...)
	cp.checkCondition("element", cond)
	return cp.appendConstraint(&elementBody{vars: copyVars(vars), cond: cond})
}

// AddElementAt adds the constraint `vars[index - startIndex] <cond>`.
func (cp *Builder) AddElementAt(vars []IntVar, startIndex int64, index IntVar, cond Condition) Constraint {
	cp.checkVars("element", append(copyVars(vars), index)...)
	cp.checkCondition("element", cond)
	return cp.appendConstraint(&elementBody{vars: copyVars(vars), hasIndex: true, startIndex: startIndex, index: index, cond: cond})
}

// AddElementValues adds the constraint `values[index - startIndex] <cond>`.
func (cp *Builder) AddElementValues(values []int64, startIndex int64, index IntVar, cond Condition) Constraint {
	cp.checkVars("element", index)
	cp.checkCondition("element", cond)
	return cp.appendConstraint(&elementBody{values: copyValues(values), hasIndex: true, startIndex: startIndex, index: index, cond: cond})
}

// AddElementMatrix adds the constraint `matrix[row - startRow][col - startCol] <cond>`.
func (cp *Builder) AddElementMatrix(matrix [][]IntVar, startRow int64, row IntVar, startCol int64, col IntVar, cond Condition) Constraint {
	cp.checkVars("elementMatrix", append(flatten(matrix), row, col)...)
	cp.checkCondition("elementMatrix", cond)
	return cp.appendConstraint(&elementBody{
		matrix: copyMatrix(matrix), hasIndex: true, startIndex: startRow, index: row,
		startCol: startCol, col: col, cond: cond,
	})
}

type channelBody struct {
	vars     []IntVar
	start    int64
	vars2    []IntVar
	start2   int64
	hasValue bool
	value    IntVar
}

func (b *channelBody) kind() string { return "channel" }
func (b *channelBody) scope() []IntVar {
	s := append(copyVars(b.vars), b.vars2...)
	if b.hasValue {
		s = append(s, b.value)
	}
	return s
}
func (b *channelBody) fields() map[string]any {
	f := map[string]any{"vars": varList(b.vars), "start": float64(b.start)}
	if b.vars2 != nil {
		f["vars2"] = varList(b.vars2)
		f["start2"] = float64(b.start2)
	}
	if b.hasValue {
		f["value"] = float64(b.value.ind)
	}
	return f
}

// AddChannel adds the constraint `vars[i] = j <=> vars[j] = i`, indices offset by
// `start`.
func (cp *Builder) AddChannel(vars []IntVar, start int64) Constraint {
	cp.checkVars("channel", vars...)
	return cp.appendConstraint(&channelBody{vars: copyVars(vars), start: start})
}

// AddChannelValue adds the constraint `vars[i] = 1 <=> value = i`, indices offset
// by `start`; `vars` are 0/1 variables.
func (cp *Builder) AddChannelValue(vars []IntVar, start int64, value IntVar) Constraint {
	cp.checkVars("channel", append(copyVars(vars), value)...)
	return cp.appendConstraint(&channelBody{vars: copyVars(vars), start: start, hasValue: true, value: value})
}

// AddChannelPair adds the constraint `vars1[i] = j <=> vars2[j] = i`, each list
// with its own index offset.
func (cp *Builder) AddChannelPair(vars1 []IntVar, start1 int64, vars2 []IntVar, start2 int64) Constraint {
	cp.checkVars("channel", append(copyVars(vars1), vars2...)...)
	return cp.appendConstraint(&channelBody{vars: copyVars(vars1), start: start1, vars2: copyVars(vars2), start2: start2})
}

type instantiationBody struct {
	vars   []IntVar
	values []int64
}

func (b *instantiationBody) kind() string    { return "instantiation" }
func (b *instantiationBody) scope() []IntVar { return b.vars }
func (b *instantiationBody) fields() map[string]any {
	return map[string]any{"vars": varList(b.vars), "values": int64List(b.values)}
}

// AddInstantiation adds the constraint `vars[i] = values[i]` for all i.
func (cp *Builder) AddInstantiation(vars []IntVar, values []int64) Constraint {
	if len(vars) != len(values) {
		log.Fatalf("vars and values must be the same length: %v != %v", len(vars), len(values))
	}
	cp.checkVars("instantiation", vars...)
	return cp.appendConstraint(&instantiationBody{vars: copyVars(vars), values: copyValues(values)})
}

type noOverlapBody struct {
	origins     []IntVar
	lengths     []LinearArgument
	zeroIgnored bool
}

func (b *noOverlapBody) kind() string { return "noOverlap" }
func (b *noOverlapBody) scope() []IntVar {
	return append(copyVars(b.origins), linearScope(b.lengths)...)
}
func (b *noOverlapBody) fields() map[string]any {
	return map[string]any{"origins": varList(b.origins), "lengths": linearList(b.lengths), "zeroIgnored": b.zeroIgnored}
}

// AddNoOverlap adds a constraint that forbids the tasks `[origins[i], origins[i] +
// lengths[i])` to overlap. Zero-length tasks are ignored when `zeroIgnored`.
func (cp *Builder) AddNoOverlap(origins []IntVar, lengths []LinearArgument, zeroIgnored bool) Constraint {
	if len(origins) != len(lengths) {
		log.Fatalf("origins and lengths must be the same length: %v != %v", len(origins), len(lengths))
	}
	cp.checkVars("noOverlap", append(copyVars(origins), linearScope(lengths)...)...)
	return cp.appendConstraint(&noOverlapBody{
		origins: copyVars(origins), lengths: append([]LinearArgument(nil), lengths...), zeroIgnored: zeroIgnored,
	})
}

type cumulativeBody struct {
	origins []IntVar
	lengths []LinearArgument
	heights []LinearArgument
	ends    []IntVar
	cond    Condition
}

func (b *cumulativeBody) kind() string { return "cumulative" }
func (b *cumulativeBody) scope() []IntVar {
	s := append(copyVars(b.origins), linearScope(b.lengths)...)
	s = append(append(s, linearScope(b.heights)...), b.ends...)
	return append(s, conditionScope(b.cond)...)
}
func (b *cumulativeBody) fields() map[string]any {
	f := map[string]any{
		"origins":   varList(b.origins),
		"lengths":   linearList(b.lengths),
		"heights":   linearList(b.heights),
		"condition": b.cond.fields(),
	}
	if b.ends != nil {
		f["ends"] = varList(b.ends)
	}
	return f
}

// AddCumulative adds a constraint that, at every time point, the sum of the
// heights of the running tasks satisfies `cond`. `ends` may be nil.
func (cp *Builder) AddCumulative(origins []IntVar, lengths, heights []LinearArgument, ends []IntVar, cond Condition) Constraint {
	if len(origins) != len(lengths) || len(origins) != len(heights) {
		log.Fatalf("origins, lengths and heights must be the same length: %v, %v, %v", len(origins), len(lengths), len(heights))
	}
	if ends != nil && len(ends) != len(origins) {
		log.Fatalf("origins and ends must be the same length: %v != %v", len(origins), len(ends))
	}
	b := &cumulativeBody{
		origins: copyVars(origins),
		lengths: append([]LinearArgument(nil), lengths...),
		heights: append([]LinearArgument(nil), heights...),
		cond:    cond,
	}
	if ends != nil {
		b.ends = copyVars(ends)
	}
	cp.checkVars("cumulative", b.origins...)
	cp.checkVars("cumulative", linearScope(lengths)...)
	cp.checkVars("cumulative", linearScope(heights)...)
	cp.checkVars("cumulative", b.ends...)
	cp.checkCondition("cumulative", cond)
	return cp.appendConstraint(b)
}

type binPackingBody struct {
	vars  []IntVar
	sizes []int64
	cond  Condition
}

func (b *binPackingBody) kind() string { return "binPacking" }
func (b *binPackingBody) scope() []IntVar {
	return append(copyVars(b.vars), conditionScope(b.cond)...)
}
func (b *binPackingBody) fields() map[string]any {
	return map[string]any{"vars": varList(b.vars), "sizes": int64List(b.sizes), "condition": b.cond.fields()}
}

// AddBinPacking adds a constraint that the load of every bin, the sum of the
// sizes of the items i with vars[i] equal to that bin, satisfies `cond`.
func (cp *Builder) AddBinPacking(vars []IntVar, sizes []int64, cond Condition) Constraint {
	if len(vars) != len(sizes) {
		log.Fatalf("vars and sizes must be the same length: %v != %v", len(vars), len(sizes))
	}
	cp.checkVars("binPacking", vars...)
	cp.checkCondition("binPacking", cond)
	return cp.appendConstraint(&binPackingBody{vars: copyVars(vars), sizes: copyValues(sizes), cond: cond})
}

type knapsackBody struct {
	vars       []IntVar
	weights    []int64
	profits    []int64
	weightCond Condition
	profitCond Condition
}

func (b *knapsackBody) kind() string { return "knapsack" }
func (b *knapsackBody) scope() []IntVar {
	return append(append(copyVars(b.vars), conditionScope(b.weightCond)...), conditionScope(b.profitCond)...)
}
func (b *knapsackBody) fields() map[string]any {
	return map[string]any{
		"vars":            varList(b.vars),
		"weights":         int64List(b.weights),
		"profits":         int64List(b.profits),
		"weightCondition": b.weightCond.fields(),
		"profitCondition": b.profitCond.fields(),
	}
}

// AddKnapsack adds the constraints `sum(weights[i] * vars[i]) <weightCond>` and
// `sum(profits[i] * vars[i]) <profitCond>`.
func (cp *Builder) AddKnapsack(vars []IntVar, weights []int64, weightCond Condition, profits []int64, profitCond Condition) Constraint {
	if len(vars) != len(weights) || len(vars) != len(profits) {
		log.Fatalf("vars, weights and profits must be the same length: %v, %v, %v", len(vars), len(weights), len(profits))
	}
	cp.checkVars("knapsack", vars...)
	cp.checkCondition("knapsack", weightCond)
	cp.checkCondition("knapsack", profitCond)
	return cp.appendConstraint(&knapsackBody{
		vars: copyVars(vars), weights: copyValues(weights), profits: copyValues(profits),
		weightCond: weightCond, profitCond: profitCond,
	})
}

type circuitBody struct {
	vars  []IntVar
	start int64
}

func (b *circuitBody) kind() string    { return "circuit" }
func (b *circuitBody) scope() []IntVar { return b.vars }
func (b *circuitBody) fields() map[string]any {
	return map[string]any{"vars": varList(b.vars), "start": float64(b.start)}
}

// AddCircuit adds a constraint that `vars`, read as successor pointers offset by
// `start`, form a single circuit.
func (cp *Builder) AddCircuit(vars []IntVar, start int64) Constraint {
	cp.checkVars("circuit", vars...)
	return cp.appendConstraint(&circuitBody{vars: copyVars(vars), start: start})
}

type automatonBody struct {
	mdd         bool
	vars        []IntVar
	transitions []Transition
	start       string
	finals      []string
}

func (b *automatonBody) kind() string {
	if b.mdd {
		return "mdd"
	}
	return "regular"
}
func (b *automatonBody) scope() []IntVar { return b.vars }
func (b *automatonBody) fields() map[string]any {
	ts := make([]any, len(b.transitions))
	for i, t := range b.transitions {
		ts[i] = map[string]any{"from": t.From, "value": float64(t.Value), "to": t.To}
	}
	f := map[string]any{"vars": varList(b.vars), "transitions": ts}
	if !b.mdd {
		finals := make([]any, len(b.finals))
		for i, s := range b.finals {
			finals[i] = s
		}
		f["start"] = b.start
		f["finals"] = finals
	}
	return f
}

// AddRegular adds a constraint that the values of `vars` form a word accepted by
// the automaton.
func (cp *Builder) AddRegular(vars []IntVar, transitions []Transition, start string, finals []string) Constraint {
	cp.checkVars("regular", vars...)
	return cp.appendConstraint(&automatonBody{
		vars: copyVars(vars), transitions: append([]Transition(nil), transitions...),
		start: start, finals: append([]string(nil), finals...),
	})
}

// AddMDD adds a constraint that the values of `vars` form a path of the
// multi-valued decision diagram.
func (cp *Builder) AddMDD(vars []IntVar, transitions []Transition) Constraint {
	cp.checkVars("mdd", vars...)
	return cp.appendConstraint(&automatonBody{mdd: true, vars: copyVars(vars), transitions: append([]Transition(nil), transitions...)})
}

type clauseBody struct {
	pos, neg []IntVar
}

func (b *clauseBody) kind() string    { return "clause" }
func (b *clauseBody) scope() []IntVar { return append(copyVars(b.pos), b.neg...) }
func (b *clauseBody) fields() map[string]any {
	return map[string]any{"pos": varList(b.pos), "neg": varList(b.neg)}
}

// AddClause adds the clause `pos[0] or ... or not neg[0] or ...` over 0/1
// variables.
func (cp *Builder) AddClause(pos, neg []IntVar) Constraint {
	cp.checkVars("clause", append(copyVars(pos), neg...)...)
	return cp.appendConstraint(&clauseBody{pos: copyVars(pos), neg: copyVars(neg)})
}

type logicalBody struct {
	op     Operator
	vars   []IntVar
	hasRes bool
	res    IntVar
}

func (b *logicalBody) kind() string { return "logical" }
func (b *logicalBody) scope() []IntVar {
	if b.hasRes {
		return append([]IntVar{b.res}, b.vars...)
	}
	return b.vars
}
func (b *logicalBody) fields() map[string]any {
	f := map[string]any{"operator": b.op.String(), "vars": varList(b.vars)}
	if b.hasRes {
		f["result"] = float64(b.res.ind)
	}
	return f
}

// AddLogical adds the constraint `op(vars)` over 0/1 variables, `op` being one of
// AND, OR, XOR, IFF, IMP.
func (cp *Builder) AddLogical(op Operator, vars []IntVar) Constraint {
	cp.checkVars("logical", vars...)
	return cp.appendConstraint(&logicalBody{op: op, vars: copyVars(vars)})
}

// AddLogicalEq adds the constraint `res <=> op(vars)` over 0/1 variables.
func (cp *Builder) AddLogicalEq(res IntVar, op Operator, vars []IntVar) Constraint {
	cp.checkVars("logical", append(copyVars(vars), res)...)
	return cp.appendConstraint(&logicalBody{op: op, vars: copyVars(vars), hasRes: true, res: res})
}
