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

// The xcspc command compiles event scripts into native constraint models and
// prints the result.
package main

import (
	"flag"

	log "github.com/golang/glog"
)

func main() {
	cmd := newRootCmd()
	// glog registers -v, -logtostderr and friends on the std flag set.
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := cmd.Execute(); err != nil {
		log.Exitf("xcspc returned with error: %v", err)
	}
}
