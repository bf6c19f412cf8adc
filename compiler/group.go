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

import "fmt"

// GroupContext numbers the constraint groups of one instance. Groups are
// numbered from 1 in opening order; 0 means outside any group.
type GroupContext struct {
	last    int
	current int
}

// Begin opens a new group. Groups do not nest.
func (g *GroupContext) Begin() error {
	if g.current != 0 {
		return fmt.Errorf("group %d is still open: %w", g.current, ErrGroup)
	}
	g.last++
	g.current = g.last
	return nil
}

// End closes the open group.
func (g *GroupContext) End() error {
	if g.current == 0 {
		return fmt.Errorf("no open group: %w", ErrGroup)
	}
	g.current = 0
	return nil
}

// Current returns the open group, or 0.
func (g *GroupContext) Current() int {
	return g.current
}

// Count returns the number of groups opened so far.
func (g *GroupContext) Count() int {
	return g.last
}
