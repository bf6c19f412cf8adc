// Copyright 2010-2025 Google LLC
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

// The scheduling command states a small makespan problem with NoOverlap and
// Cumulative constraints.
package main

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/xcsp3-go/cpbridge/compiler"
	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

const horizon = 21 // 3 weeks

type task struct {
	Name            string
	Duration, Usage int64
}

func scheduling() error {
	model := cpmodel.NewCpModelBuilder()
	r := compiler.NewRouter(compiler.NewStagingArea(model))

	tasks := []task{{"a", 2, 1}, {"b", 4, 2}, {"c", 3, 1}}
	starts := make([]string, len(tasks))
	durations := make([]xcsp.Operand, len(tasks))
	usages := make([]xcsp.Operand, len(tasks))
	for i, t := range tasks {
		starts[i] = "start_" + t.Name
		durations[i] = xcsp.Const(t.Duration)
		usages[i] = xcsp.Const(t.Usage)
		if err := r.NewVariable(starts[i], xcsp.IntervalDomain(0, horizon)); err != nil {
			return err
		}
	}
	if err := r.NewVariable("makespan", xcsp.IntervalDomain(0, horizon)); err != nil {
		return err
	}

	// Tasks a and b share a machine; all tasks share 2 workers.
	if err := r.AddNoOverlap(starts[:2], durations[:2], false); err != nil {
		return err
	}
	if err := r.AddCumulative(starts, durations, usages, nil, xcsp.ConditionValue{Op: xcsp.OpLe, Value: 2}); err != nil {
		return err
	}

	// Every task ends before the makespan.
	for i, s := range starts {
		end := xcsp.Binary{Op: xcsp.OpAdd, Left: xcsp.Variable{Name: s}, Right: xcsp.Constant{Value: tasks[i].Duration}}
		if err := r.AddIntension(xcsp.Binary{Op: xcsp.OpLe, Left: end, Right: xcsp.Variable{Name: "makespan"}}); err != nil {
			return err
		}
	}
	if err := r.AddObjective(xcsp.Minimize, xcsp.Objective{Kind: xcsp.ObjectiveExpression, Tree: xcsp.Variable{Name: "makespan"}}); err != nil {
		return err
	}
	if err := r.EndInstance(); err != nil {
		return fmt.Errorf("failed to compile the model: %w", err)
	}

	fmt.Printf("Framework: %v\n", model.Framework())
	for _, ct := range model.Constraints() {
		fmt.Printf("#%d %s\n", ct.Index(), ct.Kind())
	}
	return nil
}

func main() {
	if err := scheduling(); err != nil {
		log.Exitf("scheduling returned with error: %v", err)
	}
}
