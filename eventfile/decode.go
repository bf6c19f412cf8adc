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

package eventfile

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xcsp3-go/cpbridge/xcsp"
)

const (
	tagInt = "!!int"
	tagStr = "!!str"
)

func isInt(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tagInt
}

func isStr(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tagStr
}

func decodeInt(n *yaml.Node) (int64, error) {
	if !isInt(n) {
		return 0, nodeErrorf(n, "%q is not an integer", n.Value)
	}
	var v int64
	if err := n.Decode(&v); err != nil {
		return 0, nodeErrorf(n, "%v", err)
	}
	return v, nil
}

func decodeInts(n *yaml.Node) ([]int64, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(n, "expected a list of integers")
	}
	out := make([]int64, len(n.Content))
	for i, c := range n.Content {
		v, err := decodeInt(c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseInterval parses "min..max".
func parseInterval(s string) (min, max int64, ok bool) {
	lo, hi, found := strings.Cut(s, "..")
	if !found {
		return 0, 0, false
	}
	min, err1 := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
	max, err2 := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
	return min, max, err1 == nil && err2 == nil
}

// expr is an expression tree: 3, x, {add: [x, 3]}, {if: [c, t, e]},
// {range: [1, 5]} or {set: [1, 3]}.
type expr struct {
	xcsp.Node
}

func (e *expr) UnmarshalYAML(n *yaml.Node) error {
	node, err := decodeExpr(n)
	if err != nil {
		return err
	}
	e.Node = node
	return nil
}

func decodeExpr(n *yaml.Node) (xcsp.Node, error) {
	switch {
	case isInt(n):
		v, err := decodeInt(n)
		if err != nil {
			return nil, err
		}
		return xcsp.Constant{Value: v}, nil
	case isStr(n):
		return xcsp.Variable{Name: n.Value}, nil
	case n.Kind != yaml.MappingNode || len(n.Content) != 2:
		return nil, nodeErrorf(n, "an expression is an integer, a name or a single-key mapping")
	}

	key, value := n.Content[0].Value, n.Content[1]
	switch key {
	case "range":
		bounds, err := decodeInts(value)
		if err != nil {
			return nil, err
		}
		if len(bounds) != 2 {
			return nil, nodeErrorf(value, "a range has two bounds")
		}
		return xcsp.Range{Min: bounds[0], Max: bounds[1]}, nil
	case "set":
		values, err := decodeInts(value)
		if err != nil {
			return nil, err
		}
		return xcsp.Set{Values: values}, nil
	}

	if value.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(value, "the operands of %s are a list", key)
	}
	args := make([]xcsp.Node, len(value.Content))
	for i, c := range value.Content {
		arg, err := decodeExpr(c)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	if key == "if" {
		if len(args) != 3 {
			return nil, nodeErrorf(value, "if takes 3 operands, got %d", len(args))
		}
		return xcsp.IfThenElse{Cond: args[0], Then: args[1], Else: args[2]}, nil
	}
	op := xcsp.Operator(key)
	switch len(args) {
	case 0:
		return nil, nodeErrorf(value, "%s without operand", key)
	case 1:
		return xcsp.Unary{Op: op, Child: args[0]}, nil
	case 2:
		return xcsp.Binary{Op: op, Left: args[0], Right: args[1]}, nil
	}
	return xcsp.Nary{Op: op, Children: args}, nil
}

func trees(exprs []expr) []xcsp.Node {
	if exprs == nil {
		return nil
	}
	out := make([]xcsp.Node, len(exprs))
	for i, e := range exprs {
		out[i] = e.Node
	}
	return out
}

// condition is `[op, rhs]`: [eq, 5], [le, z], [in, "1..5"] or [notin, [1, 3]].
type condition struct {
	xcsp.Condition
}

func (c *condition) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 || !isStr(n.Content[0]) {
		return nodeErrorf(n, "a condition is a pair [operator, right-hand side]")
	}
	op, rhs := xcsp.Operator(n.Content[0].Value), n.Content[1]
	switch {
	case isInt(rhs):
		v, err := decodeInt(rhs)
		if err != nil {
			return err
		}
		c.Condition = xcsp.ConditionValue{Op: op, Value: v}
	case isStr(rhs):
		if min, max, ok := parseInterval(rhs.Value); ok {
			c.Condition = xcsp.ConditionInterval{Op: op, Min: min, Max: max}
			return nil
		}
		c.Condition = xcsp.ConditionVariable{Op: op, Name: rhs.Value}
	default:
		values, err := decodeInts(rhs)
		if err != nil {
			return err
		}
		c.Condition = xcsp.ConditionSet{Op: op, Values: values}
	}
	return nil
}

func (c *condition) get() xcsp.Condition {
	if c == nil {
		return nil
	}
	return c.Condition
}

// domain is "min..max", a single integer or a list of values.
type domain struct {
	xcsp.Domain
}

func (d *domain) UnmarshalYAML(n *yaml.Node) error {
	switch {
	case isInt(n):
		v, err := decodeInt(n)
		if err != nil {
			return err
		}
		d.Domain = xcsp.IntervalDomain(v, v)
	case isStr(n):
		min, max, ok := parseInterval(n.Value)
		if !ok {
			return nodeErrorf(n, "invalid domain %q", n.Value)
		}
		d.Domain = xcsp.IntervalDomain(min, max)
	default:
		values, err := decodeInts(n)
		if err != nil {
			return err
		}
		d.Domain = xcsp.ValuesDomain(values...)
	}
	return nil
}

// tuple is a table row; "*" is the wildcard.
type tuple xcsp.Tuple

func (t *tuple) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return nodeErrorf(n, "a tuple is a list")
	}
	row := make(tuple, len(n.Content))
	for i, c := range n.Content {
		if isStr(c) && c.Value == "*" {
			continue
		}
		v, err := decodeInt(c)
		if err != nil {
			return err
		}
		row[i] = xcsp.Int(v)
	}
	*t = row
	return nil
}

func tuples(rows []tuple) []xcsp.Tuple {
	out := make([]xcsp.Tuple, len(rows))
	for i, r := range rows {
		out[i] = xcsp.Tuple(r)
	}
	return out
}

// operand is an integer or a variable name.
type operand xcsp.Operand

func (o *operand) UnmarshalYAML(n *yaml.Node) error {
	if isStr(n) {
		*o = operand(xcsp.Ref(n.Value))
		return nil
	}
	v, err := decodeInt(n)
	if err != nil {
		return err
	}
	*o = operand(xcsp.Const(v))
	return nil
}

func operands(ops []operand) []xcsp.Operand {
	if ops == nil {
		return nil
	}
	out := make([]xcsp.Operand, len(ops))
	for i, o := range ops {
		out[i] = xcsp.Operand(o)
	}
	return out
}

// transition is [from, value, to].
type transition xcsp.Transition

func (t *transition) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 3 {
		return nodeErrorf(n, "a transition is [from, value, to]")
	}
	v, err := decodeInt(n.Content[1])
	if err != nil {
		return err
	}
	*t = transition{From: n.Content[0].Value, Value: v, To: n.Content[2].Value}
	return nil
}

func transitions(ts []transition) []xcsp.Transition {
	out := make([]xcsp.Transition, len(ts))
	for i, t := range ts {
		out[i] = xcsp.Transition(t)
	}
	return out
}
