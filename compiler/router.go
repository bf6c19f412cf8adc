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

	log "github.com/golang/glog"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// Router implements xcsp.Callbacks on top of a StagingArea. Every event is
// validated when received (operators, condition shapes, list lengths) and staged;
// names are resolved and trees compiled when the staging area is committed, by
// EndInstance.
type Router struct {
	stage  *StagingArea
	groups GroupContext
	tables *TableCompiler
}

var _ xcsp.Callbacks = (*Router)(nil)

// Option configures a Router.
type Option func(*Router)

// WithTableCache enables or disables the sharing of identical consecutive
// extension tables. It is enabled by default.
func WithTableCache(enabled bool) Option {
	return func(r *Router) {
		r.tables = NewTableCompiler(enabled)
	}
}

// NewRouter returns a Router staging declarations on `stage`.
func NewRouter(stage *StagingArea, opts ...Option) *Router {
	r := &Router{stage: stage, tables: NewTableCompiler(true)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stage returns the staging area of the router.
func (r *Router) Stage() *StagingArea {
	return r.stage
}

// Groups returns the number of constraint groups seen so far.
func (r *Router) Groups() int {
	return r.groups.Count()
}

// declare stages a constraint built by `fn`, tagging it with the group open at
// declaration time.
func (r *Router) declare(kind string, fn func(m *cpmodel.Builder) (cpmodel.Constraint, error)) error {
	group := r.groups.Current()
	log.V(2).Infof("staging %s as declaration %d (group %d)", kind, r.stage.NumConstraints(), group)
	r.stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		ct, err := fn(m)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		if group != 0 {
			ct.InGroup(group)
		}
		return nil
	})
	return nil
}

// declareWithCondition is declare for the families taking a condition. The
// condition is classified now; the native condition is built at commit time and
// handed to `fn`. Families accepting only relational conditions set
// `relationalOnly`.
func (r *Router) declareWithCondition(kind string, c xcsp.Condition, relationalOnly bool, fn func(m *cpmodel.Builder, c cpmodel.Condition) (cpmodel.Constraint, error)) error {
	if err := r.shapes(nil, relationalOnly).Supports(c); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	c = xcsp.CloneCondition(c)
	return r.declare(kind, func(m *cpmodel.Builder) (cpmodel.Constraint, error) {
		native, err := r.condition(c, relationalOnly)
		if err != nil {
			return cpmodel.Constraint{}, err
		}
		return fn(m, native)
	})
}

func (r *Router) shapes(out *cpmodel.Condition, relationalOnly bool) ConditionBuilders {
	if relationalOnly {
		return relationalShapes(r.stage, out)
	}
	return allShapes(r.stage, out)
}

// condition dispatches `c` into its native condition.
func (r *Router) condition(c xcsp.Condition, relationalOnly bool) (cpmodel.Condition, error) {
	var out cpmodel.Condition
	if err := Dispatch(c, r.shapes(&out, relationalOnly)); err != nil {
		return nil, err
	}
	return out, nil
}

// NewVariable stages the variable `name`.
func (r *Router) NewVariable(name string, d xcsp.Domain) error {
	log.V(2).Infof("staging variable %s in %v", name, d)
	return r.stage.DeclareVariable(name, d)
}

// BeginGroup opens a constraint group.
func (r *Router) BeginGroup() error {
	return r.groups.Begin()
}

// EndGroup closes the open constraint group.
func (r *Router) EndGroup() error {
	return r.groups.End()
}

// EndInstance commits the staged declarations to the native model.
func (r *Router) EndInstance() error {
	if r.groups.Current() != 0 {
		return fmt.Errorf("instance ended inside group %d: %w", r.groups.Current(), ErrGroup)
	}
	if err := r.stage.Commit(); err != nil {
		return err
	}
	log.V(1).Infof("%d tables served from the cache", r.tables.Hits())
	return nil
}

// AddIntension stages the constraint `tree`.
func (r *Router) AddIntension(tree xcsp.Node) error {
	if err := r.stage.Compiler().Check(tree); err != nil {
		return fmt.Errorf("intension: %w", err)
	}
	tree = xcsp.CloneNode(tree)
	return r.declare("intension", func(m *cpmodel.Builder) (cpmodel.Constraint, error) {
		n, err := r.stage.Compiler().Compile(tree, r.stage)
		if err != nil {
			return cpmodel.Constraint{}, err
		}
		return m.AddIntension(n), nil
	})
}

// AddExtension stages a table constraint. `support` tells whether the tuples
// are the allowed ones or the forbidden ones.
func (r *Router) AddExtension(vars []string, tuples []xcsp.Tuple, support bool) error {
	vars = copyNames(vars)
	table, err := r.tables.Compile(tuples)
	if err != nil {
		return fmt.Errorf("extension: %w", err)
	}
	if len(table.Rows) > 0 && table.Arity != len(vars) {
		return fmt.Errorf("extension: tuples of arity %d for %d variables: %w", table.Arity, len(vars), ErrLengthMismatch)
	}
	return r.declare("extension", func(m *cpmodel.Builder) (cpmodel.Constraint, error) {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return cpmodel.Constraint{}, err
		}
		return m.AddExtension(vs, table.Rows, support, table.Starred), nil
	})
}

// AddObjective stages the objective. An expression objective reduced to a
// single variable is committed as a variable objective.
func (r *Router) AddObjective(dir xcsp.Direction, o xcsp.Objective) error {
	kind, ok := objectiveKinds[o.Kind]
	if !ok {
		return fmt.Errorf("unsupported objective kind %v", o.Kind)
	}
	vars := copyNames(o.Vars)
	trees := xcsp.CloneNodes(o.Trees)
	coeffs := append([]int64(nil), o.Coeffs...)

	switch o.Kind {
	case xcsp.ObjectiveExpression:
		if o.Tree == nil {
			return fmt.Errorf("objective: %w", ErrMissingTree)
		}
		if terms := len(vars) + len(trees) + len(coeffs); terms != 0 {
			return fmt.Errorf("expression objective with %d extra terms or coefficients: %w", terms, ErrLengthMismatch)
		}
		if err := r.stage.Compiler().Check(o.Tree); err != nil {
			return fmt.Errorf("objective: %w", err)
		}
		trees = []xcsp.Node{xcsp.CloneNode(o.Tree)}
	case xcsp.ObjectiveVariable:
		if len(vars) != 1 || len(trees) != 0 || len(coeffs) != 0 {
			return fmt.Errorf("variable objective over %d variables, %d trees and %d coefficients: %w", len(vars), len(trees), len(coeffs), ErrLengthMismatch)
		}
	default:
		if err := r.checkTrees(trees); err != nil {
			return fmt.Errorf("objective: %w", err)
		}
		if terms := len(vars) + len(trees); len(coeffs) != 0 && len(coeffs) != terms {
			return fmt.Errorf("objective: %d coefficients for %d terms: %w", len(coeffs), terms, ErrLengthMismatch)
		}
	}

	log.V(2).Infof("staging %v objective (%v)", o.Kind, dir)
	r.stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return fmt.Errorf("objective: %w", err)
		}
		exprs, err := r.compileAll(trees)
		if err != nil {
			return fmt.Errorf("objective: %w", err)
		}
		obj := cpmodel.Objective{Kind: kind, Vars: vs, Exprs: exprs, Coeffs: coeffs}
		if obj.Kind == cpmodel.ObjectiveExpression && exprs[0].IsVar() {
			obj = cpmodel.Objective{Kind: cpmodel.ObjectiveVariable, Vars: []cpmodel.IntVar{exprs[0].Var}}
		}
		if dir == xcsp.Maximize {
			m.Maximize(obj)
		} else {
			m.Minimize(obj)
		}
		return nil
	})
	return nil
}

var objectiveKinds = map[xcsp.ObjectiveKind]cpmodel.ObjectiveKind{
	xcsp.ObjectiveExpression: cpmodel.ObjectiveExpression,
	xcsp.ObjectiveVariable:   cpmodel.ObjectiveVariable,
	xcsp.ObjectiveSum:        cpmodel.ObjectiveSum,
	xcsp.ObjectiveProduct:    cpmodel.ObjectiveProduct,
	xcsp.ObjectiveMinimum:    cpmodel.ObjectiveMinimum,
	xcsp.ObjectiveMaximum:    cpmodel.ObjectiveMaximum,
	xcsp.ObjectiveNValues:    cpmodel.ObjectiveNValues,
}

// DecisionVariables stages the decision variables annotation.
func (r *Router) DecisionVariables(vars []string) error {
	vars = copyNames(vars)
	r.stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return fmt.Errorf("decision annotation: %w", err)
		}
		m.SetDecisionVariables(vs...)
		return nil
	})
	return nil
}

// ValueHeuristicStatic stages a static value ordering annotation.
func (r *Router) ValueHeuristicStatic(vars []string, order []int64) error {
	vars = copyNames(vars)
	order = append([]int64(nil), order...)
	r.stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		vs, err := resolveAll(r.stage, vars)
		if err != nil {
			return fmt.Errorf("value heuristic annotation: %w", err)
		}
		m.AddStaticValueHeuristic(vs, order)
		return nil
	})
	return nil
}

func copyNames(names []string) []string {
	return append([]string(nil), names...)
}

func copyNameMatrix(names [][]string) [][]string {
	out := make([][]string, len(names))
	for i, row := range names {
		out[i] = copyNames(row)
	}
	return out
}

func resolveAll(res Resolver, names []string) ([]cpmodel.IntVar, error) {
	if names == nil {
		return nil, nil
	}
	vars := make([]cpmodel.IntVar, len(names))
	for i, n := range names {
		v, err := res.Resolve(n)
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	return vars, nil
}

func resolveMatrix(res Resolver, names [][]string) ([][]cpmodel.IntVar, error) {
	out := make([][]cpmodel.IntVar, len(names))
	for i, row := range names {
		vars, err := resolveAll(res, row)
		if err != nil {
			return nil, err
		}
		out[i] = vars
	}
	return out, nil
}

func (r *Router) checkTrees(trees []xcsp.Node) error {
	for _, t := range trees {
		if err := r.stage.Compiler().Check(t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) compileAll(trees []xcsp.Node) ([]*cpmodel.Node, error) {
	if trees == nil {
		return nil, nil
	}
	out := make([]*cpmodel.Node, len(trees))
	for i, t := range trees {
		n, err := r.stage.Compiler().Compile(t, r.stage)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (r *Router) operands(ops []xcsp.Operand) ([]cpmodel.LinearArgument, error) {
	out := make([]cpmodel.LinearArgument, len(ops))
	for i, o := range ops {
		if !o.IsVar() {
			out[i] = cpmodel.NewConstant(o.Value)
			continue
		}
		v, err := r.stage.Resolve(o.Var)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func checkLen(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%d %s for %d variables: %w", got, what, want, ErrLengthMismatch)
	}
	return nil
}
