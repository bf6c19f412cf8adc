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

// Package cpmodel is the native constraint model that compiled XCSP3 declarations
// are committed to.
//
// The `Builder` struct owns the model: integer variables with their domains, the
// ordered list of constraints, an optional objective and search annotations.
// `IntVar` and `Constraint` are references into a specific Builder. Expression
// based constraints take `Node` trees; aggregate constraints (sum, count,
// element, ...) take a `Condition` describing their right-hand side.
//
// A model is completed by `Finalize`, after which it is frozen and can be
// exported with `Proto`.
package cpmodel

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	log "github.com/golang/glog"
)

var (
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrFinalized holds the error when elements are added to a finalized model.
	ErrFinalized = errors.New("model is finalized")
	// ErrInvalidCondition holds the error when a condition operator does not fit
	// its right-hand side, e.g. `IN 3`.
	ErrInvalidCondition = errors.New("operator does not match the condition right-hand side")
)

type (
	// VarIndex is the index of a variable in the model. Indices are assigned in
	// creation order, starting at 0.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// Framework tells whether the model is a satisfaction or an optimization problem.
type Framework int

const (
	// CSP is a model without objective.
	CSP Framework = iota
	// COP is a model with an objective.
	COP
)

func (f Framework) String() string {
	if f == COP {
		return "COP"
	}
	return "CSP"
}

// LinearArgument provides an interface for IntVar and LinearExpr. It is used
// where the native model accepts either a constant or a variable, such as the
// lengths and heights of scheduling constraints.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c int64)
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    int64
}

type varCoeff struct {
	ind   VarIndex
	coeff int64
	cpb   *Builder
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c int64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	return l.AddTerm(la, 1)
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff int64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c int64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c, cpb: vc.cpb})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) fields() map[string]any {
	vars := make([]any, len(l.varCoeffs))
	coeffs := make([]any, len(l.varCoeffs))
	for i, vc := range l.varCoeffs {
		vars[i] = float64(vc.ind)
		coeffs[i] = float64(vc.coeff)
	}
	return map[string]any{"vars": vars, "coeffs": coeffs, "offset": float64(l.offset)}
}

// asLinearExpr normalizes any LinearArgument into a fresh LinearExpr.
func asLinearExpr(la LinearArgument) *LinearExpr {
	return NewLinearExpr().Add(la)
}

// IntVar is a reference to an integer variable in the model.
type IntVar struct {
	ind VarIndex
	cpb *Builder
}

// Name returns the name of the variable.
func (i IntVar) Name() string {
	return i.cpb.vars[i.ind].name
}

// Domain returns the domain of the variable.
func (i IntVar) Domain() Domain {
	return i.cpb.vars[i.ind].domain
}

// Index returns the index of the variable.
func (i IntVar) Index() VarIndex {
	return i.ind
}

// WithName sets the name of the variable.
func (i IntVar) WithName(s string) IntVar {
	i.cpb.vars[i.ind].name = s
	return i
}

func (i IntVar) addToLinearExpr(e *LinearExpr, c int64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: i.ind, coeff: c, cpb: i.cpb})
}

// label is the name of the variable, or a positional name when it has none.
func (i IntVar) label() string {
	if i.cpb == nil {
		return "<nil>"
	}
	if n := i.cpb.vars[i.ind].name; n != "" {
		return n
	}
	return fmt.Sprintf("x%d", i.ind)
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	cpb *Builder
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	if c.cpb != nil && int(c.ind) < len(c.cpb.constraints) {
		c.cpb.constraints[c.ind].name = s
	}
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.cpb.constraints[c.ind].name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// InGroup records that the constraint was declared inside the constraint group
// `g`. Group 0 means no group.
func (c Constraint) InGroup(g int) Constraint {
	if c.cpb != nil && int(c.ind) < len(c.cpb.constraints) {
		c.cpb.constraints[c.ind].group = g
	}
	return c
}

// Group returns the group recorded with InGroup, 0 if none.
func (c Constraint) Group() int {
	return c.cpb.constraints[c.ind].group
}

// Kind returns the name of the constraint family, e.g. "sum" or "intension".
func (c Constraint) Kind() string {
	return c.cpb.constraints[c.ind].body.kind()
}

type integerVariable struct {
	name   string
	domain Domain
}

type constraintRecord struct {
	name  string
	group int
	body  constraintBody
}

// constraintBody is implemented by each constraint family.
type constraintBody interface {
	kind() string
	// scope lists the variables the constraint involves, possibly with repeats.
	scope() []IntVar
	fields() map[string]any
}

// Builder is the native model under construction.
type Builder struct {
	vars        []integerVariable
	constraints []constraintRecord
	objective   *objectiveRecord
	decision    []IntVar
	heuristics  []valueHeuristic
	finalized   bool
	involved    *bitset.BitSet
	// The first and only the first error is reported in Finalize and Proto.
	err error
}

// NewCpModelBuilder creates and returns a new model Builder.
func NewCpModelBuilder() *Builder {
	return &Builder{}
}

// checkSameModelAndSetErrorf returns true if `cp` and `cp2` point to the same Builder.
// If false, an error with the error message `errString` is set on `cp` if `cp.err`
// is nil.
func (cp *Builder) checkSameModelAndSetErrorf(cp2 *Builder, format string, a ...any) bool {
	if cp == cp2 {
		return true
	}
	args := append(append([]any(nil), a...), ErrMixedModels)
	cp.setError(fmt.Errorf(format+": %w", args...))
	return false
}

func (cp *Builder) setError(err error) {
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if cp.err == nil {
		cp.err = err
	}
}

// checkVars verifies that every variable belongs to `cp`.
func (cp *Builder) checkVars(what string, vars ...IntVar) bool {
	for _, v := range vars {
		if !cp.checkSameModelAndSetErrorf(v.cpb, "invalid variable %v added to %s constraint %v", v.Index(), what, len(cp.constraints)) {
			return false
		}
	}
	return true
}

// checkNodes verifies that every variable of the trees belongs to `cp`.
func (cp *Builder) checkNodes(what string, nodes ...*Node) bool {
	for _, n := range nodes {
		if n == nil {
			cp.setError(fmt.Errorf("nil expression added to %s constraint %v", what, len(cp.constraints)))
			return false
		}
		if !cp.checkVars(what, n.Vars()...) {
			return false
		}
	}
	return true
}

// checkCondition verifies the operator/right-hand side pairing and the model of
// a variable right-hand side.
func (cp *Builder) checkCondition(what string, c Condition) bool {
	if c == nil || !validCondition(c) {
		cp.setError(fmt.Errorf("condition %v of %s constraint %v: %w", c, what, len(cp.constraints), ErrInvalidCondition))
		return false
	}
	if v, ok := c.involvedVar(); ok {
		return cp.checkVars(what, v)
	}
	return true
}

// NewIntVar creates a new variable with domain `[lb,ub]`.
func (cp *Builder) NewIntVar(lb, ub int64) IntVar {
	return cp.NewIntVarFromDomain(NewDomain(lb, ub))
}

// NewIntVarFromDomain creates a new IntVar with the given domain.
func (cp *Builder) NewIntVarFromDomain(d Domain) IntVar {
	if cp.finalized {
		cp.setError(fmt.Errorf("variable %v: %w", len(cp.vars), ErrFinalized))
	}
	intVar := IntVar{cpb: cp, ind: VarIndex(len(cp.vars))}
	cp.vars = append(cp.vars, integerVariable{domain: d})
	return intVar
}

// Var returns the variable at index `i`.
func (cp *Builder) Var(i VarIndex) IntVar {
	return IntVar{cpb: cp, ind: i}
}

// Variables returns all the variables of the model in index order.
func (cp *Builder) Variables() []IntVar {
	vars := make([]IntVar, len(cp.vars))
	for i := range cp.vars {
		vars[i] = IntVar{cpb: cp, ind: VarIndex(i)}
	}
	return vars
}

// NumVariables returns the number of variables of the model.
func (cp *Builder) NumVariables() int {
	return len(cp.vars)
}

// NumConstraints returns the number of constraints of the model.
func (cp *Builder) NumConstraints() int {
	return len(cp.constraints)
}

// Constraints returns references to all constraints in index order.
func (cp *Builder) Constraints() []Constraint {
	cts := make([]Constraint, len(cp.constraints))
	for i := range cp.constraints {
		cts[i] = Constraint{cpb: cp, ind: ConstrIndex(i)}
	}
	return cts
}

func (cp *Builder) appendConstraint(body constraintBody) Constraint {
	if cp.finalized {
		cp.setError(fmt.Errorf("%s constraint %v: %w", body.kind(), len(cp.constraints), ErrFinalized))
	}
	i := ConstrIndex(len(cp.constraints))
	cp.constraints = append(cp.constraints, constraintRecord{body: body})

	return Constraint{cpb: cp, ind: i}
}

// ObjectiveKind is the aggregation an objective applies to its terms.
type ObjectiveKind int

// Objective kinds, as in XCSP3.
const (
	ObjectiveVariable ObjectiveKind = iota
	ObjectiveExpression
	ObjectiveSum
	ObjectiveProduct
	ObjectiveMinimum
	ObjectiveMaximum
	ObjectiveNValues
)

var objectiveKindNames = []string{"variable", "expression", "sum", "product", "minimum", "maximum", "nValues"}

func (k ObjectiveKind) String() string {
	if int(k) < len(objectiveKindNames) {
		return objectiveKindNames[k]
	}
	return fmt.Sprintf("ObjectiveKind(%d)", int(k))
}

// Objective describes the function to optimize. Depending on Kind, either Vars
// (variable, sum, product, minimum, maximum, nValues) or Exprs (expression and the
// aggregations over expressions) is used. Coeffs is optional and weights the terms.
type Objective struct {
	Kind   ObjectiveKind
	Vars   []IntVar
	Exprs  []*Node
	Coeffs []int64
}

type objectiveRecord struct {
	minimize bool
	Objective
}

func (cp *Builder) setObjective(minimize bool, o Objective) {
	if cp.finalized {
		cp.setError(fmt.Errorf("objective: %w", ErrFinalized))
		return
	}
	if !cp.checkVars("objective", o.Vars...) || !cp.checkNodes("objective", o.Exprs...) {
		return
	}
	terms := len(o.Vars) + len(o.Exprs)
	if len(o.Coeffs) != 0 && len(o.Coeffs) != terms {
		log.Fatalf("objective terms and coeffs must be the same length: %v != %v", terms, len(o.Coeffs))
	}
	if cp.objective != nil {
		log.Warningf("objective %v replaced by %v", cp.objective.Kind, o.Kind)
	}
	cp.objective = &objectiveRecord{minimize: minimize, Objective: o}
}

// Minimize sets the objective to minimize.
func (cp *Builder) Minimize(o Objective) {
	cp.setObjective(true, o)
}

// Maximize sets the objective to maximize.
func (cp *Builder) Maximize(o Objective) {
	cp.setObjective(false, o)
}

// Framework returns COP if an objective was set, CSP otherwise.
func (cp *Builder) Framework() Framework {
	if cp.objective != nil {
		return COP
	}
	return CSP
}

type valueHeuristic struct {
	vars  []IntVar
	order []int64
}

// SetDecisionVariables annotates the variables the search should branch on.
func (cp *Builder) SetDecisionVariables(vars ...IntVar) {
	if !cp.checkVars("decision", vars...) {
		return
	}
	cp.decision = append([]IntVar(nil), vars...)
}

// AddStaticValueHeuristic annotates `vars` with a static value ordering.
func (cp *Builder) AddStaticValueHeuristic(vars []IntVar, order []int64) {
	if !cp.checkVars("heuristic", vars...) {
		return
	}
	cp.heuristics = append(cp.heuristics, valueHeuristic{
		vars:  append([]IntVar(nil), vars...),
		order: append([]int64(nil), order...),
	})
}

// Finalize completes the model: it computes the set of variables involved in at
// least one constraint or in the objective, and freezes the model. Later
// additions are reported as ErrFinalized. Finalize returns the first error met
// while building the model; calling it again has no further effect.
func (cp *Builder) Finalize() error {
	if cp.finalized {
		return cp.err
	}
	involved := bitset.New(uint(len(cp.vars)))
	mark := func(vars []IntVar) {
		for _, v := range vars {
			involved.Set(uint(v.ind))
		}
	}
	for _, ct := range cp.constraints {
		mark(ct.body.scope())
	}
	if o := cp.objective; o != nil {
		mark(o.Vars)
		for _, e := range o.Exprs {
			mark(e.Vars())
		}
	}
	cp.involved = involved
	cp.finalized = true

	if unused := uint(len(cp.vars)) - involved.Count(); unused > 0 {
		log.V(1).Infof("%d of %d variables are not involved in any constraint", unused, len(cp.vars))
	}
	log.V(1).Infof("model finalized: %s, %d variables, %d constraints", cp.Framework(), len(cp.vars), len(cp.constraints))
	return cp.err
}

// Finalized reports whether Finalize was called.
func (cp *Builder) Finalized() bool {
	return cp.finalized
}

// IsInvolved reports whether `v` appears in a constraint or in the objective. It
// is only meaningful once the model is finalized.
func (cp *Builder) IsInvolved(v IntVar) bool {
	return cp.involved != nil && cp.involved.Test(uint(v.ind))
}

// Err returns the first error met while building the model.
func (cp *Builder) Err() error {
	return cp.err
}
