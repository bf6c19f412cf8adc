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
	"fmt"
	"io"
	"sort"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/xcsp3-go/cpbridge/compiler"
	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/eventfile"
)

const (
	formatJSON    = "json"
	formatSummary = "summary"
)

type options struct {
	tableCache bool
	format     string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.tableCache, "table-cache", true, "share identical consecutive extension tables")
	fs.StringVarP(&o.format, "output", "o", formatSummary, "output format: summary or json")
}

func (o *options) validate() error {
	switch o.format {
	case formatJSON, formatSummary:
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.format)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "xcspc SCRIPT...",
		Short:        "Compiles event scripts into native constraint models",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			for _, path := range args {
				if err := o.run(cmd.OutOrStdout(), path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

// compileScript replays the script at `path` into a fresh model.
func (o *options) compileScript(path string) (*cpmodel.Builder, error) {
	script, err := eventfile.Load(path)
	if err != nil {
		return nil, err
	}
	model := cpmodel.NewCpModelBuilder()
	router := compiler.NewRouter(compiler.NewStagingArea(model), compiler.WithTableCache(o.tableCache))
	if err := script.Replay(router); err != nil {
		return nil, err
	}
	log.V(1).Infof("%s: %d events, %d groups", path, script.Len(), router.Groups())
	return model, nil
}

func (o *options) run(w io.Writer, path string) error {
	model, err := o.compileScript(path)
	if err != nil {
		return err
	}
	if o.format == formatJSON {
		return printJSON(w, model)
	}
	return printSummary(w, path, model)
}

func printJSON(w io.Writer, model *cpmodel.Builder) error {
	snapshot, err := model.Proto()
	if err != nil {
		return err
	}
	b, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal the model: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func printSummary(w io.Writer, path string, model *cpmodel.Builder) error {
	involved := 0
	var lo, hi, largest int64
	bounded := false
	for _, v := range model.Variables() {
		if model.IsInvolved(v) {
			involved++
		}
		d := v.Domain()
		if s := d.Size(); s > largest {
			largest = s
		}
		vmin, okMin := d.Min()
		vmax, okMax := d.Max()
		if !okMin || !okMax {
			continue
		}
		if !bounded || vmin < lo {
			lo = vmin
		}
		if !bounded || vmax > hi {
			hi = vmax
		}
		bounded = true
	}
	kinds := map[string]int{}
	for _, ct := range model.Constraints() {
		kinds[ct.Kind()]++
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "%s: %v\n", path, model.Framework())
	fmt.Fprintf(w, "  variables: %d (%d involved)\n", model.NumVariables(), involved)
	if bounded {
		fmt.Fprintf(w, "  values: %d..%d (largest domain %d)\n", lo, hi, largest)
	}
	fmt.Fprintf(w, "  constraints: %d\n", model.NumConstraints())
	for _, k := range names {
		fmt.Fprintf(w, "    %s: %d\n", k, kinds[k])
	}
	return nil
}
