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

// Package compiler turns the declarations of an XCSP3 instance into a native
// cpmodel.Builder.
//
// Declarations are staged first and committed to the native model in one pass,
// so constraints may reference variables declared after them. The Router
// receives reader events (see xcsp.Callbacks) and stages them on a StagingArea;
// expression trees are compiled by an ExpressionCompiler and conditions are
// routed by Dispatch.
package compiler

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// ConstraintFunc adds one staged declaration to the native model. It runs after
// every variable is committed, so it may resolve any declared name.
type ConstraintFunc func(m *cpmodel.Builder) error

type variableDecl struct {
	name  string
	build func(m *cpmodel.Builder) cpmodel.IntVar
}

// StagingArea records variable and constraint declarations and replays them
// against a native model on Commit.
type StagingArea struct {
	model       *cpmodel.Builder
	variables   []variableDecl
	declared    map[string]bool
	constraints []ConstraintFunc
	compiler    *ExpressionCompiler

	// registry is filled by the first phase of Commit.
	registry  map[string]cpmodel.IntVar
	resolved  bool
	committed bool
	commitErr error
}

// NewStagingArea returns an empty StagingArea committing to `m`. Nothing is
// added to `m` before Commit.
func NewStagingArea(m *cpmodel.Builder) *StagingArea {
	return &StagingArea{
		model:    m,
		declared: make(map[string]bool),
		compiler: NewExpressionCompiler(),
	}
}

// DeclareVariable stages the variable `name` with domain `d`. It returns a
// *DuplicateNameError if `name` is already declared.
func (s *StagingArea) DeclareVariable(name string, d xcsp.Domain) error {
	if s.declared[name] {
		return &DuplicateNameError{Name: name}
	}
	domain := nativeDomain(d)
	if domain.IsEmpty() {
		log.Warningf("variable %q has an empty domain %v", name, d)
	}
	s.declared[name] = true
	s.variables = append(s.variables, variableDecl{
		name: name,
		build: func(m *cpmodel.Builder) cpmodel.IntVar {
			return m.NewIntVarFromDomain(domain).WithName(name)
		},
	})
	return nil
}

func nativeDomain(d xcsp.Domain) cpmodel.Domain {
	if d.IsInterval() {
		return cpmodel.NewDomain(d.Min, d.Max)
	}
	return cpmodel.FromValues(d.Values)
}

// DeclareConstraint stages `fn`. References are not checked before Commit.
func (s *StagingArea) DeclareConstraint(fn ConstraintFunc) {
	s.constraints = append(s.constraints, fn)
}

// NumVariables returns the number of staged variables.
func (s *StagingArea) NumVariables() int {
	return len(s.variables)
}

// NumConstraints returns the number of staged constraint declarations.
func (s *StagingArea) NumConstraints() int {
	return len(s.constraints)
}

// Compiler returns the expression compiler shared by the staged declarations.
func (s *StagingArea) Compiler() *ExpressionCompiler {
	return s.compiler
}

// Model returns the native model the staging area commits to.
func (s *StagingArea) Model() *cpmodel.Builder {
	return s.model
}

// Resolve returns the native variable committed for `name`. It returns an
// *UnresolvedReferenceError before the variables are committed, or when `name`
// was never declared.
func (s *StagingArea) Resolve(name string) (cpmodel.IntVar, error) {
	if !s.resolved {
		return cpmodel.IntVar{}, &UnresolvedReferenceError{Name: name, Early: true}
	}
	v, ok := s.registry[name]
	if !ok {
		return cpmodel.IntVar{}, &UnresolvedReferenceError{Name: name}
	}
	return v, nil
}

// Commit replays the staged declarations against the native model: first the
// variables, in declaration order, then the constraints, in declaration order,
// and finally finalizes the model. The first failing constraint stops the
// commit; its error is returned with the constraint position.
//
// Commit runs once. Later calls return the result of the first one. A staging
// area whose Commit failed, and its model, must be discarded.
func (s *StagingArea) Commit() error {
	if s.committed {
		return s.commitErr
	}
	s.committed = true
	s.commitErr = s.commit()
	return s.commitErr
}

func (s *StagingArea) commit() error {
	s.registry = make(map[string]cpmodel.IntVar, len(s.variables))
	for _, v := range s.variables {
		s.registry[v.name] = v.build(s.model)
	}
	s.resolved = true
	log.V(1).Infof("committed %d variables", len(s.variables))

	for i, fn := range s.constraints {
		if err := fn(s.model); err != nil {
			return fmt.Errorf("declaration %d: %w", i, err)
		}
	}
	log.V(1).Infof("committed %d declarations", len(s.constraints))

	if err := s.model.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize the model: %w", err)
	}
	return nil
}
