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

package xcsp

// CloneNode returns a copy of `n` sharing no slice with it. Nil operands are
// kept nil.
func CloneNode(n Node) Node {
	switch n := n.(type) {
	case Unary:
		return Unary{Op: n.Op, Child: CloneNode(n.Child)}
	case Binary:
		return Binary{Op: n.Op, Left: CloneNode(n.Left), Right: CloneNode(n.Right)}
	case Nary:
		return Nary{Op: n.Op, Children: CloneNodes(n.Children)}
	case IfThenElse:
		return IfThenElse{Cond: CloneNode(n.Cond), Then: CloneNode(n.Then), Else: CloneNode(n.Else)}
	case Set:
		return Set{Values: cloneValues(n.Values)}
	}
	return n
}

// CloneNodes applies CloneNode to every tree of `trees`.
func CloneNodes(trees []Node) []Node {
	if trees == nil {
		return nil
	}
	out := make([]Node, len(trees))
	for i, t := range trees {
		out[i] = CloneNode(t)
	}
	return out
}

// CloneCondition returns a copy of `c` sharing no slice with it.
func CloneCondition(c Condition) Condition {
	if s, ok := c.(ConditionSet); ok {
		return ConditionSet{Op: s.Op, Values: cloneValues(s.Values)}
	}
	return c
}

func cloneValues(values []int64) []int64 {
	if values == nil {
		return nil
	}
	return append([]int64{}, values...)
}
