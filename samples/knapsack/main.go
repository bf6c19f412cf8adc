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

// The knapsack command states a knapsack problem whose items are declared after
// the constraints using them, and prints the native model as JSON.
package main

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/xcsp3-go/cpbridge/compiler"
	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
	"google.golang.org/protobuf/encoding/protojson"
)

const capacity = 15

type item struct {
	Weight, Profit int64
}

func knapsack() error {
	model := cpmodel.NewCpModelBuilder()
	r := compiler.NewRouter(compiler.NewStagingArea(model))

	items := []item{{12, 4}, {2, 2}, {1, 1}, {1, 2}, {4, 10}}
	names := make([]string, len(items))
	weights := make([]int64, len(items))
	profits := make([]int64, len(items))
	for i, it := range items {
		names[i] = fmt.Sprintf("take%d", i)
		weights[i], profits[i] = it.Weight, it.Profit
	}

	// The total weight fits in the bag; the profit is at least the best item alone.
	err := r.AddKnapsack(names, weights, xcsp.ConditionValue{Op: xcsp.OpLe, Value: capacity},
		profits, xcsp.ConditionValue{Op: xcsp.OpGe, Value: 10})
	if err != nil {
		return err
	}
	err = r.AddObjective(xcsp.Maximize, xcsp.Objective{Kind: xcsp.ObjectiveSum, Vars: names, Coeffs: profits})
	if err != nil {
		return err
	}

	// Items 0 and 4 cannot both be taken.
	err = r.AddExtension([]string{names[0], names[4]}, []xcsp.Tuple{xcsp.Row(1, 1)}, false)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := r.NewVariable(name, xcsp.IntervalDomain(0, 1)); err != nil {
			return err
		}
	}
	if err := r.EndInstance(); err != nil {
		return fmt.Errorf("failed to compile the model: %w", err)
	}

	snapshot, err := model.Proto()
	if err != nil {
		return fmt.Errorf("failed to snapshot the model: %w", err)
	}
	b, err := protojson.MarshalOptions{Multiline: true}.Marshal(snapshot)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func main() {
	if err := knapsack(); err != nil {
		log.Exitf("knapsack returned with error: %v", err)
	}
}
