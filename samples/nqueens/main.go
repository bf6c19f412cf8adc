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

// The nqueens command states the N-queens problem as XCSP3 declarations and
// prints the native model they compile to.
package main

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/xcsp3-go/cpbridge/compiler"
	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

const boardSize = 8

func nQueens() error {
	model := cpmodel.NewCpModelBuilder()
	r := compiler.NewRouter(compiler.NewStagingArea(model))

	// q[i] is the row of the queen in column i.
	queens := make([]string, boardSize)
	for i := range queens {
		queens[i] = fmt.Sprintf("q[%d]", i)
		if err := r.NewVariable(queens[i], xcsp.IntervalDomain(0, boardSize-1)); err != nil {
			return err
		}
	}

	// All queens are in different rows.
	if err := r.AddAllDifferent(queens, nil); err != nil {
		return err
	}

	// No two queens are on the same diagonal.
	if err := r.BeginGroup(); err != nil {
		return err
	}
	for _, op := range []xcsp.Operator{xcsp.OpAdd, xcsp.OpSub} {
		diag := make([]xcsp.Node, boardSize)
		for i, q := range queens {
			diag[i] = xcsp.Binary{Op: op, Left: xcsp.Variable{Name: q}, Right: xcsp.Constant{Value: int64(i)}}
		}
		if err := r.AddAllDifferentExpr(diag); err != nil {
			return err
		}
	}
	if err := r.EndGroup(); err != nil {
		return err
	}

	if err := r.DecisionVariables(queens); err != nil {
		return err
	}
	if err := r.EndInstance(); err != nil {
		return fmt.Errorf("failed to compile the model: %w", err)
	}

	fmt.Printf("Framework: %v\n", model.Framework())
	fmt.Printf("Variables: %d\n", model.NumVariables())
	for _, ct := range model.Constraints() {
		fmt.Printf("#%d %s (group %d)\n", ct.Index(), ct.Kind(), ct.Group())
	}
	return nil
}

func main() {
	if err := nQueens(); err != nil {
		log.Exitf("nQueens returned with error: %v", err)
	}
}
