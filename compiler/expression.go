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

import (
	"fmt"

	"github.com/xcsp3-go/cpbridge/cpmodel"
	"github.com/xcsp3-go/cpbridge/xcsp"
)

// Resolver maps variable names to native variables.
type Resolver interface {
	Resolve(name string) (cpmodel.IntVar, error)
}

type frame struct {
	node xcsp.Node
	// expanded is set once the operands of node have been scheduled.
	expanded bool
}

// ExpressionCompiler turns XCSP3 expression trees into native trees. It walks
// trees in post-order with an explicit work stack and builds the result on an
// operand stack; both stacks are kept between calls, so a single compiler can
// be reused for any number of trees. An ExpressionCompiler is not safe for
// concurrent use.
type ExpressionCompiler struct {
	work     []frame
	operands []*cpmodel.Node
}

// NewExpressionCompiler returns an ExpressionCompiler with empty stacks.
func NewExpressionCompiler() *ExpressionCompiler {
	return &ExpressionCompiler{}
}

// Compile returns the native tree of `tree`, resolving variable leaves through
// `r`. Operands keep their positional order. It returns an
// *UnsupportedOperatorError for an operator without native counterpart and
// the error of `r` for a name it cannot resolve.
//
// Compile panics with a *MalformedExpressionError when `tree` is nil or holds a
// nil operand.
func (ec *ExpressionCompiler) Compile(tree xcsp.Node, r Resolver) (*cpmodel.Node, error) {
	defer ec.reset()
	err := ec.postOrder(tree, func(n xcsp.Node) error {
		compiled, err := ec.build(n, r)
		if err != nil {
			return err
		}
		ec.operands = append(ec.operands, compiled)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(ec.operands) != 1 {
		malformed("%d operands left after compiling %v", len(ec.operands), tree)
	}
	return ec.operands[0], nil
}

// Check verifies that every operator of `tree` has a native counterpart,
// without resolving any variable.
func (ec *ExpressionCompiler) Check(tree xcsp.Node) error {
	defer ec.reset()
	return ec.postOrder(tree, func(n xcsp.Node) error {
		_, err := nodeOperator(n)
		return err
	})
}

// postOrder calls visit on every node of `tree`, operands first, left to right.
func (ec *ExpressionCompiler) postOrder(tree xcsp.Node, visit func(xcsp.Node) error) error {
	if tree == nil {
		malformed("nil expression")
	}
	ec.work = append(ec.work[:0], frame{node: tree})
	for len(ec.work) > 0 {
		top := ec.work[len(ec.work)-1]
		ec.work = ec.work[:len(ec.work)-1]
		if !top.expanded {
			if children := operandsOf(top.node); len(children) > 0 {
				ec.work = append(ec.work, frame{node: top.node, expanded: true})
				for i := len(children) - 1; i >= 0; i-- {
					ec.work = append(ec.work, frame{node: children[i]})
				}
				continue
			}
		}
		if err := visit(top.node); err != nil {
			return err
		}
	}
	return nil
}

// operandsOf returns the operands of `n` in positional order.
func operandsOf(n xcsp.Node) []xcsp.Node {
	var children []xcsp.Node
	switch n := n.(type) {
	case xcsp.Unary:
		children = []xcsp.Node{n.Child}
	case xcsp.Binary:
		children = []xcsp.Node{n.Left, n.Right}
	case xcsp.Nary:
		if len(n.Children) == 0 {
			malformed("%s without operand", n.Op)
		}
		children = n.Children
	case xcsp.IfThenElse:
		children = []xcsp.Node{n.Cond, n.Then, n.Else}
	}
	for i, c := range children {
		if c == nil {
			malformed("operand %d of %v is nil", i, n)
		}
	}
	return children
}

// nodeOperator returns the native operator of an inner node, and 0 for leaves.
func nodeOperator(n xcsp.Node) (cpmodel.Operator, error) {
	switch n := n.(type) {
	case xcsp.Unary:
		return unaryOperators.lookup(n.Op)
	case xcsp.Binary:
		return binaryOperators.lookup(n.Op)
	case xcsp.Nary:
		return naryOperators.lookup(n.Op)
	case xcsp.IfThenElse:
		return cpmodel.OpIF, nil
	case xcsp.Constant, xcsp.Variable, xcsp.Range, xcsp.Set:
		return 0, nil
	}
	malformed("unknown node type %T", n)
	return 0, nil
}

func (ec *ExpressionCompiler) pop() *cpmodel.Node {
	if len(ec.operands) == 0 {
		malformed("operand stack underflow")
	}
	top := ec.operands[len(ec.operands)-1]
	ec.operands = ec.operands[:len(ec.operands)-1]
	return top
}

// popN pops `k` operands and returns them in the order they were pushed.
func (ec *ExpressionCompiler) popN(k int) []*cpmodel.Node {
	out := make([]*cpmodel.Node, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = ec.pop()
	}
	return out
}

// build compiles `n`, whose operands are on top of the operand stack.
func (ec *ExpressionCompiler) build(n xcsp.Node, r Resolver) (*cpmodel.Node, error) {
	op, err := nodeOperator(n)
	if err != nil {
		return nil, err
	}
	switch n := n.(type) {
	case xcsp.Constant:
		return cpmodel.NewLeafConst(n.Value), nil
	case xcsp.Variable:
		v, err := r.Resolve(n.Name)
		if err != nil {
			return nil, err
		}
		return cpmodel.NewLeafVar(v), nil
	case xcsp.Range:
		return cpmodel.NewRange(n.Min, n.Max), nil
	case xcsp.Set:
		return cpmodel.NewSet(n.Values), nil
	case xcsp.Unary:
		return cpmodel.NewParent(op, ec.pop()), nil
	case xcsp.Binary:
		right := ec.pop()
		left := ec.pop()
		return cpmodel.NewParent(op, left, right), nil
	case xcsp.Nary:
		return cpmodel.NewParent(op, ec.popN(len(n.Children))...), nil
	case xcsp.IfThenElse:
		elseNode := ec.pop()
		thenNode := ec.pop()
		cond := ec.pop()
		return cpmodel.NewParent(op, cond, thenNode, elseNode), nil
	}
	return nil, fmt.Errorf("unexpected node %T", n)
}

// reset empties both stacks, keeping their capacity.
func (ec *ExpressionCompiler) reset() {
	clear(ec.work[:cap(ec.work)])
	clear(ec.operands[:cap(ec.operands)])
	ec.work = ec.work[:0]
	ec.operands = ec.operands[:0]
}

// depth returns the number of entries left on the stacks.
func (ec *ExpressionCompiler) depth() int {
	return len(ec.work) + len(ec.operands)
}
