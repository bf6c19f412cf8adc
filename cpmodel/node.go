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
	"strings"
)

// Node is a node of a native expression tree, as used by intension constraints,
// expression-based global constraints and expression objectives.
//
// Leaves are tagged OpVAR (Var is set), OpLONG (Value is set) or OpSET (Values is
// set; a range is stored as its expanded bounds in Min/Max with IsRange). Every other
// operator tags a parent node whose operands are Children, in positional order.
type Node struct {
	Op       Operator
	Children []*Node
	Var      IntVar
	Value    int64
	Values   []int64
	IsRange  bool
	Min, Max int64
}

// NewLeafVar returns a leaf referencing `v`.
func NewLeafVar(v IntVar) *Node {
	return &Node{Op: OpVAR, Var: v}
}

// NewLeafConst returns a constant leaf.
func NewLeafConst(c int64) *Node {
	return &Node{Op: OpLONG, Value: c}
}

// NewParent returns a node applying `op` to `children`, kept in the given order.
func NewParent(op Operator, children ...*Node) *Node {
	return &Node{Op: op, Children: children}
}

// NewRange returns a set leaf holding the closed interval `[min,max]`.
func NewRange(min, max int64) *Node {
	return &Node{Op: OpSET, IsRange: true, Min: min, Max: max}
}

// NewSet returns a set leaf holding `values` in the given order.
func NewSet(values []int64) *Node {
	return &Node{Op: OpSET, Values: append([]int64(nil), values...)}
}

// IsLeaf reports whether the node has no operands.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsVar reports whether the node is a single variable.
func (n *Node) IsVar() bool {
	return n.Op == OpVAR
}

// Count returns the number of nodes of the tree rooted at `n`.
func (n *Node) Count() int {
	count := 0
	pending := []*Node{n}
	for len(pending) > 0 {
		top := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		count++
		pending = append(pending, top.Children...)
	}
	return count
}

// Vars returns the variables of the tree in first-occurrence order, without
// duplicates.
func (n *Node) Vars() []IntVar {
	if n == nil {
		return nil
	}
	var vars []IntVar
	seen := make(map[VarIndex]bool)
	pending := []*Node{n}
	for len(pending) > 0 {
		top := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if top.Op == OpVAR && !seen[top.Var.ind] {
			seen[top.Var.ind] = true
			vars = append(vars, top.Var)
		}
		for i := len(top.Children) - 1; i >= 0; i-- {
			pending = append(pending, top.Children[i])
		}
	}
	return vars
}

// String renders the tree in XCSP3 functional notation, e.g. `add(x,mul(y,2))`.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Op {
	case OpVAR:
		sb.WriteString(n.Var.label())
		return
	case OpLONG:
		fmt.Fprintf(sb, "%d", n.Value)
		return
	case OpSET:
		if n.IsRange {
			fmt.Fprintf(sb, "%d..%d", n.Min, n.Max)
			return
		}
		sb.WriteString("set(")
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(sb, "%d", v)
		}
		sb.WriteByte(')')
		return
	}
	sb.WriteString(n.Op.String())
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		c.write(sb)
	}
	sb.WriteByte(')')
}

// fields renders the tree as nested maps for the model snapshot.
func (n *Node) fields() map[string]any {
	f := map[string]any{"op": n.Op.String()}
	switch n.Op {
	case OpVAR:
		f["var"] = float64(n.Var.ind)
	case OpLONG:
		f["value"] = float64(n.Value)
	case OpSET:
		if n.IsRange {
			f["min"] = float64(n.Min)
			f["max"] = float64(n.Max)
		} else {
			f["values"] = int64List(n.Values)
		}
	}
	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.fields()
		}
		f["children"] = children
	}
	return f
}

func nodeList(nodes []*Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n.fields()
	}
	return out
}
