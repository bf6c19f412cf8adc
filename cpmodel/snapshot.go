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
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Proto returns a snapshot of the model as a protobuf Struct. Variables and
// constraints are listed in index order and reference variables by index.
// Returns the first error met while building the model, if any.
func (cp *Builder) Proto() (*structpb.Struct, error) {
	if cp.err != nil {
		return nil, cp.err
	}

	vars := make([]any, len(cp.vars))
	for i, v := range cp.vars {
		entry := map[string]any{
			"name":   v.name,
			"domain": int64List(v.domain.FlattenedIntervals()),
		}
		if cp.finalized {
			entry["involved"] = cp.involved.Test(uint(i))
		}
		vars[i] = entry
	}

	constraints := make([]any, len(cp.constraints))
	for i, ct := range cp.constraints {
		entry := ct.body.fields()
		entry["kind"] = ct.body.kind()
		if ct.name != "" {
			entry["name"] = ct.name
		}
		if ct.group != 0 {
			entry["group"] = float64(ct.group)
		}
		constraints[i] = entry
	}

	m := map[string]any{
		"framework":   cp.Framework().String(),
		"variables":   vars,
		"constraints": constraints,
	}
	if o := cp.objective; o != nil {
		obj := map[string]any{"minimize": o.minimize, "kind": o.Kind.String()}
		if len(o.Vars) > 0 {
			obj["vars"] = varList(o.Vars)
		}
		if len(o.Exprs) > 0 {
			obj["exprs"] = nodeList(o.Exprs)
		}
		if len(o.Coeffs) > 0 {
			obj["coeffs"] = int64List(o.Coeffs)
		}
		m["objective"] = obj
	}
	if len(cp.decision) > 0 || len(cp.heuristics) > 0 {
		annotations := map[string]any{}
		if len(cp.decision) > 0 {
			annotations["decision"] = varList(cp.decision)
		}
		if len(cp.heuristics) > 0 {
			hs := make([]any, len(cp.heuristics))
			for i, h := range cp.heuristics {
				hs[i] = map[string]any{"vars": varList(h.vars), "order": int64List(h.order)}
			}
			annotations["valueHeuristics"] = hs
		}
		m["annotations"] = annotations
	}

	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to convert the model: %w", err)
	}
	return s, nil
}
