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

package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	queens   = "../../eventfile/testdata/queens.yaml"
	knapsack = "../../eventfile/testdata/knapsack.yaml"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary(t *testing.T) {
	got, err := execute(queens, knapsack)
	if err != nil {
		t.Fatalf("Execute() returned with unexpected error %v", err)
	}
	want := queens + `: CSP
  variables: 4 (4 involved)
  values: 0..3 (largest domain 4)
  constraints: 3
    allDifferent: 3
` + knapsack + `: COP
  variables: 3 (3 involved)
  values: 0..1 (largest domain 2)
  constraints: 2
    extension: 1
    sum: 1
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Execute() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	for _, tableCache := range []string{"--table-cache=true", "--table-cache=false"} {
		t.Run(tableCache, func(t *testing.T) {
			got, err := execute("-o", "json", tableCache, knapsack)
			if err != nil {
				t.Fatalf("Execute() returned with unexpected error %v", err)
			}
			snapshot := &structpb.Struct{}
			if err := protojson.Unmarshal([]byte(got), snapshot); err != nil {
				t.Fatalf("protojson.Unmarshal() returned with unexpected error %v", err)
			}

			o := &options{tableCache: true}
			model, err := o.compileScript(knapsack)
			if err != nil {
				t.Fatalf("compileScript() returned with unexpected error %v", err)
			}
			want, err := model.Proto()
			if err != nil {
				t.Fatalf("Proto() returned with unexpected error %v", err)
			}
			if diff := cmp.Diff(want, snapshot, protocmp.Transform()); diff != "" {
				t.Errorf("json output returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "NoScript", args: []string{}},
		{name: "UnknownFormat", args: []string{"-o", "xml", queens}},
		{name: "MissingScript", args: []string{"testdata/missing.yaml"}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if _, err := execute(test.args...); err == nil {
				t.Errorf("Execute(%v) returned no error", test.args)
			}
		})
	}
}
