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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		c    xcsp.Condition
		want Shape
	}{
		{c: xcsp.ConditionValue{Op: xcsp.OpEq, Value: 5}, want: ShapeValue},
		{c: xcsp.ConditionVariable{Op: xcsp.OpLe, Name: "z"}, want: ShapeVariable},
		{c: xcsp.ConditionInterval{Op: xcsp.OpIn, Min: 1, Max: 5}, want: ShapeInterval},
		{c: xcsp.ConditionSet{Op: xcsp.OpNotIn, Values: []int64{1, 3}}, want: ShapeSet},
	}

	for _, test := range testCases {
		t.Run(test.c.String(), func(t *testing.T) {
			got, err := Classify(test.c)
			if err != nil {
				t.Fatalf("Classify(%v) returned with unexpected error %v", test.c, err)
			}
			if got != test.want {
				t.Errorf("Classify(%v) = %v, want %v", test.c, got, test.want)
			}
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	testCases := []struct {
		name string
		c    xcsp.Condition
	}{
		{name: "Nil", c: nil},
		{name: "SetOperatorOnValue", c: xcsp.ConditionValue{Op: xcsp.OpIn, Value: 5}},
		{name: "ArithmeticOperator", c: xcsp.ConditionVariable{Op: xcsp.OpAdd, Name: "z"}},
		{name: "RelationalOperatorOnInterval", c: xcsp.ConditionInterval{Op: xcsp.OpLe, Min: 1, Max: 5}},
		{name: "RelationalOperatorOnSet", c: xcsp.ConditionSet{Op: xcsp.OpEq, Values: []int64{1}}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := Classify(test.c)
			var condErr *UnsupportedConditionError
			if !errors.As(err, &condErr) {
				t.Errorf("Classify(%v) returned with unexpected error %v, want UnsupportedConditionError", test.c, err)
			}
		})
	}
}

// recordingBuilders records which builder ran and with what arguments.
func recordingBuilders(calls *[]string) ConditionBuilders {
	return ConditionBuilders{
		Value: func(op cpmodel.Operator, k int64) error {
			*calls = append(*calls, fmt.Sprintf("value %v %d", op, k))
			return nil
		},
		Variable: func(op cpmodel.Operator, name string) error {
			*calls = append(*calls, fmt.Sprintf("variable %v %s", op, name))
			return nil
		},
		Interval: func(op cpmodel.Operator, min, max int64) error {
			*calls = append(*calls, fmt.Sprintf("interval %v %d %d", op, min, max))
			return nil
		},
		Set: func(op cpmodel.Operator, values []int64) error {
			*calls = append(*calls, fmt.Sprintf("set %v %v", op, values))
			return nil
		},
	}
}

func TestDispatch(t *testing.T) {
	testCases := []struct {
		c    xcsp.Condition
		want string
	}{
		{c: xcsp.ConditionValue{Op: xcsp.OpEq, Value: 5}, want: "value eq 5"},
		{c: xcsp.ConditionValue{Op: xcsp.OpGt, Value: -1}, want: "value gt -1"},
		{c: xcsp.ConditionVariable{Op: xcsp.OpEq, Name: "z"}, want: "variable eq z"},
		{c: xcsp.ConditionVariable{Op: xcsp.OpNe, Name: "w"}, want: "variable ne w"},
		{c: xcsp.ConditionInterval{Op: xcsp.OpIn, Min: 1, Max: 5}, want: "interval in 1 5"},
		{c: xcsp.ConditionInterval{Op: xcsp.OpNotIn, Min: 0, Max: 0}, want: "interval notin 0 0"},
		{c: xcsp.ConditionSet{Op: xcsp.OpIn, Values: []int64{2, 4}}, want: "set in [2 4]"},
	}

	for _, test := range testCases {
		t.Run(test.c.String(), func(t *testing.T) {
			var calls []string
			if err := Dispatch(test.c, recordingBuilders(&calls)); err != nil {
				t.Fatalf("Dispatch(%v) returned with unexpected error %v", test.c, err)
			}
			if diff := cmp.Diff([]string{test.want}, calls); diff != "" {
				t.Errorf("Dispatch(%v) called unexpected builders (-want+got):\n%s", test.c, diff)
			}
		})
	}
}

func TestDispatch_BuilderError(t *testing.T) {
	errBuild := errors.New("build failed")
	b := ConditionBuilders{
		Value: func(cpmodel.Operator, int64) error { return errBuild },
	}
	if err := Dispatch(xcsp.ConditionValue{Op: xcsp.OpEq, Value: 1}, b); !errors.Is(err, errBuild) {
		t.Errorf("Dispatch() returned with unexpected error %v, want %v", err, errBuild)
	}
}

func TestDispatch_MissingBuilder(t *testing.T) {
	var calls []string
	b := recordingBuilders(&calls)
	b.Interval, b.Set = nil, nil
	c := xcsp.ConditionInterval{Op: xcsp.OpIn, Min: 1, Max: 5}

	err := Dispatch(c, b)
	var condErr *UnsupportedConditionError
	if !errors.As(err, &condErr) {
		t.Errorf("Dispatch(%v) returned with unexpected error %v, want UnsupportedConditionError", c, err)
	}
	if len(calls) != 0 {
		t.Errorf("Dispatch(%v) called %v", c, calls)
	}
}

func TestAllShapes(t *testing.T) {
	r := newResolver("z")
	testCases := []struct {
		c    xcsp.Condition
		want cpmodel.Condition
	}{
		{c: xcsp.ConditionValue{Op: xcsp.OpEq, Value: 5}, want: cpmodel.CondValue{Op: cpmodel.OpEQ, Value: 5}},
		{c: xcsp.ConditionVariable{Op: xcsp.OpEq, Name: "z"}, want: cpmodel.CondVar{Op: cpmodel.OpEQ, Var: r["z"]}},
		{c: xcsp.ConditionInterval{Op: xcsp.OpIn, Min: 1, Max: 5}, want: cpmodel.CondInterval{Op: cpmodel.OpIN, Min: 1, Max: 5}},
		{c: xcsp.ConditionSet{Op: xcsp.OpNotIn, Values: []int64{1, 3}}, want: cpmodel.CondSet{Op: cpmodel.OpNOTIN, Values: []int64{1, 3}}},
	}

	for _, test := range testCases {
		t.Run(test.c.String(), func(t *testing.T) {
			var got cpmodel.Condition
			if err := Dispatch(test.c, allShapes(r, &got)); err != nil {
				t.Fatalf("Dispatch(%v) returned with unexpected error %v", test.c, err)
			}
			if got.String() != test.want.String() {
				t.Errorf("Dispatch(%v) built %v, want %v", test.c, got, test.want)
			}
		})
	}
}

func TestRelationalShapes(t *testing.T) {
	var out cpmodel.Condition
	b := relationalShapes(newResolver(), &out)
	for _, c := range []xcsp.Condition{
		xcsp.ConditionInterval{Op: xcsp.OpIn, Min: 1, Max: 5},
		xcsp.ConditionSet{Op: xcsp.OpIn, Values: []int64{1}},
	} {
		var condErr *UnsupportedConditionError
		if err := b.Supports(c); !errors.As(err, &condErr) {
			t.Errorf("Supports(%v) returned with unexpected error %v, want UnsupportedConditionError", c, err)
		}
	}

	err := Dispatch(xcsp.ConditionVariable{Op: xcsp.OpLe, Name: "z"}, b)
	var refErr *UnresolvedReferenceError
	if !errors.As(err, &refErr) || refErr.Name != "z" {
		t.Errorf("Dispatch() returned with unexpected error %v, want UnresolvedReferenceError for z", err)
	}
}
