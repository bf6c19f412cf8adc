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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

func TestStagingArea_DeclareVariable(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	stage := NewStagingArea(model)

	if err := stage.DeclareVariable("x", xcsp.IntervalDomain(0, 3)); err != nil {
		t.Fatalf("DeclareVariable(x) returned with unexpected error %v", err)
	}
	values := []int64{6, 1, 5}
	if err := stage.DeclareVariable("y", xcsp.Domain{Values: values}); err != nil {
		t.Fatalf("DeclareVariable(y) returned with unexpected error %v", err)
	}
	values[0] = 9

	err := stage.DeclareVariable("x", xcsp.IntervalDomain(0, 1))
	var dupErr *DuplicateNameError
	if !errors.As(err, &dupErr) || dupErr.Name != "x" {
		t.Errorf("DeclareVariable(x) twice returned with unexpected error %v, want DuplicateNameError", err)
	}
	if stage.NumVariables() != 2 {
		t.Errorf("NumVariables() = %v, want 2", stage.NumVariables())
	}
	if model.NumVariables() != 0 {
		t.Errorf("model.NumVariables() = %v before Commit, want 0", model.NumVariables())
	}

	if err := stage.Commit(); err != nil {
		t.Fatalf("Commit() returned with unexpected error %v", err)
	}
	var got []string
	for _, v := range model.Variables() {
		got = append(got, v.Name()+": "+v.Domain().String())
	}
	want := []string{"x: 0..3", "y: 1 5..6"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("committed variables returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestStagingArea_Resolve(t *testing.T) {
	stage := NewStagingArea(cpmodel.NewCpModelBuilder())
	if err := stage.DeclareVariable("x", xcsp.IntervalDomain(0, 1)); err != nil {
		t.Fatalf("DeclareVariable(x) returned with unexpected error %v", err)
	}

	_, err := stage.Resolve("x")
	var refErr *UnresolvedReferenceError
	if !errors.As(err, &refErr) || !refErr.Early {
		t.Errorf("Resolve(x) before Commit returned with unexpected error %v, want an early UnresolvedReferenceError", err)
	}

	if err := stage.Commit(); err != nil {
		t.Fatalf("Commit() returned with unexpected error %v", err)
	}
	x, err := stage.Resolve("x")
	if err != nil {
		t.Fatalf("Resolve(x) returned with unexpected error %v", err)
	}
	if x.Name() != "x" || x.Index() != 0 {
		t.Errorf("Resolve(x) = %v (index %v), want x (index 0)", x.Name(), x.Index())
	}

	_, err = stage.Resolve("z")
	if !errors.As(err, &refErr) || refErr.Early || refErr.Name != "z" {
		t.Errorf("Resolve(z) returned with unexpected error %v, want UnresolvedReferenceError for z", err)
	}
}

func TestStagingArea_CommitOrder(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	stage := NewStagingArea(model)

	var order []string
	stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		x, err := stage.Resolve("x")
		if err != nil {
			return err
		}
		order = append(order, "first")
		m.AddAllEqual([]cpmodel.IntVar{x})
		return nil
	})
	if err := stage.DeclareVariable("x", xcsp.IntervalDomain(0, 1)); err != nil {
		t.Fatalf("DeclareVariable(x) returned with unexpected error %v", err)
	}
	stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		order = append(order, "second")
		return nil
	})

	if err := stage.Commit(); err != nil {
		t.Fatalf("Commit() returned with unexpected error %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("Commit() ran declarations in unexpected order (-want+got):\n%s", diff)
	}
	if !model.Finalized() {
		t.Errorf("Commit() did not finalize the model")
	}
}

func TestStagingArea_CommitOnce(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	stage := NewStagingArea(model)
	runs := 0
	stage.DeclareConstraint(func(*cpmodel.Builder) error {
		runs++
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := stage.Commit(); err != nil {
			t.Fatalf("Commit() #%d returned with unexpected error %v", i, err)
		}
	}
	if runs != 1 {
		t.Errorf("declaration ran %v times, want 1", runs)
	}
}

func TestStagingArea_CommitError(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	stage := NewStagingArea(model)
	errFailed := errors.New("failed")
	ran := false
	stage.DeclareConstraint(func(*cpmodel.Builder) error { return nil })
	stage.DeclareConstraint(func(*cpmodel.Builder) error { return errFailed })
	stage.DeclareConstraint(func(*cpmodel.Builder) error {
		ran = true
		return nil
	})

	err := stage.Commit()
	if !errors.Is(err, errFailed) {
		t.Fatalf("Commit() returned with unexpected error %v, want %v", err, errFailed)
	}
	if !strings.Contains(err.Error(), "declaration 1") {
		t.Errorf("Commit() error %q does not name the failing declaration", err)
	}
	if ran {
		t.Errorf("Commit() ran declarations after the failing one")
	}
	if again := stage.Commit(); again != err {
		t.Errorf("second Commit() = %v, want %v", again, err)
	}
}

func TestStagingArea_CommitModelError(t *testing.T) {
	model := cpmodel.NewCpModelBuilder()
	other := cpmodel.NewCpModelBuilder()
	stage := NewStagingArea(model)
	stage.DeclareConstraint(func(m *cpmodel.Builder) error {
		m.AddAllEqual([]cpmodel.IntVar{other.NewIntVar(0, 1)})
		return nil
	})

	if err := stage.Commit(); !errors.Is(err, cpmodel.ErrMixedModels) {
		t.Errorf("Commit() returned with unexpected error %v, want ErrMixedModels", err)
	}
}
