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
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/xcsp3-go/cpbridge/xcsp"
)

// args holds the arguments of every event kind; each kind reads the fields it
// needs.
type args struct {
	Name   string  `yaml:"name"`
	Domain *domain `yaml:"domain"`
	Size   int     `yaml:"size"`

	Vars      []string   `yaml:"vars"`
	Vars2     []string   `yaml:"vars2"`
	Exprs     []expr     `yaml:"exprs"`
	Lists     [][]string `yaml:"lists"`
	Matrix    [][]string `yaml:"matrix"`
	Except    []int64    `yaml:"except"`
	Values    []int64    `yaml:"values"`
	ValueVars []string   `yaml:"valueVars"`
	Coeffs    []int64    `yaml:"coeffs"`
	CoeffVars []string   `yaml:"coeffVars"`
	Operator  string     `yaml:"operator"`
	Covered   bool       `yaml:"covered"`

	Condition       *condition `yaml:"condition"`
	WeightCondition *condition `yaml:"weightCondition"`
	ProfitCondition *condition `yaml:"profitCondition"`

	Tuples      []tuple      `yaml:"tuples"`
	Support     *bool        `yaml:"support"`
	Transitions []transition `yaml:"transitions"`
	Start       string       `yaml:"start"`
	Finals      []string     `yaml:"finals"`

	Index       string `yaml:"index"`
	StartIndex  int64  `yaml:"startIndex"`
	StartIndex2 int64  `yaml:"startIndex2"`
	Row         string `yaml:"row"`
	StartRow    int64  `yaml:"startRow"`
	Col         string `yaml:"col"`
	StartCol    int64  `yaml:"startCol"`
	Value       string `yaml:"value"`

	Origins     []string  `yaml:"origins"`
	Lengths     []operand `yaml:"lengths"`
	Heights     []operand `yaml:"heights"`
	Ends        []string  `yaml:"ends"`
	ZeroIgnored bool      `yaml:"zeroIgnored"`
	Sizes       []int64   `yaml:"sizes"`
	Weights     []int64   `yaml:"weights"`
	Profits     []int64   `yaml:"profits"`

	Pos    []string `yaml:"pos"`
	Neg    []string `yaml:"neg"`
	Result string   `yaml:"result"`

	Variable string  `yaml:"variable"`
	Expr     *expr   `yaml:"expr"`
	Kind     string  `yaml:"kind"`
	Order    []int64 `yaml:"order"`
}

func decodeArgs(n *yaml.Node) (*args, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nodeErrorf(n, "expected a mapping of arguments")
	}
	a := &args{}
	if err := n.Decode(a); err != nil {
		return nil, err
	}
	return a, nil
}

func require(n *yaml.Node, present bool, field string) error {
	if !present {
		return nodeErrorf(n, "missing %s", field)
	}
	return nil
}

type handler func(n *yaml.Node) (apply, error)

// withArgs decodes the arguments of an event, validates them with `check` when
// not nil, and builds the event with `fn`.
func withArgs(fn func(a *args) apply, check func(n *yaml.Node, a *args) error) handler {
	return func(n *yaml.Node) (apply, error) {
		a, err := decodeArgs(n)
		if err != nil {
			return nil, err
		}
		if check != nil {
			if err := check(n, a); err != nil {
				return nil, err
			}
		}
		return fn(a), nil
	}
}

func needCondition(n *yaml.Node, a *args) error {
	return require(n, a.Condition != nil, "condition")
}

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"var": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.NewVariable(a.Name, a.Domain.Domain) }
		}, needNameAndDomain),
		"array": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error {
				for i := 0; i < a.Size; i++ {
					if err := cb.NewVariable(fmt.Sprintf("%s[%d]", a.Name, i), a.Domain.Domain); err != nil {
						return err
					}
				}
				return nil
			}
		}, needNameAndDomain),

		"intension": intensionEvent,
		"extension": withArgs(func(a *args) apply {
			support := a.Support == nil || *a.Support
			ts := tuples(a.Tuples)
			return func(cb xcsp.Callbacks) error { return cb.AddExtension(a.Vars, ts, support) }
		}, nil),
		"regular": withArgs(func(a *args) apply {
			ts := transitions(a.Transitions)
			return func(cb xcsp.Callbacks) error { return cb.AddRegular(a.Vars, ts, a.Start, a.Finals) }
		}, nil),
		"mdd": withArgs(func(a *args) apply {
			ts := transitions(a.Transitions)
			return func(cb xcsp.Callbacks) error { return cb.AddMDD(a.Vars, ts) }
		}, nil),

		"allDifferent": withArgs(func(a *args) apply {
			switch {
			case a.Exprs != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddAllDifferentExpr(trees(a.Exprs)) }
			case a.Matrix != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddAllDifferentMatrix(a.Matrix, a.Except) }
			case a.Lists != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddAllDifferentList(a.Lists) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddAllDifferent(a.Vars, a.Except) }
		}, nil),
		"allEqual": withArgs(func(a *args) apply {
			if a.Exprs != nil {
				return func(cb xcsp.Callbacks) error { return cb.AddAllEqualExpr(trees(a.Exprs)) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddAllEqual(a.Vars) }
		}, nil),
		"notAllEqual": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddNotAllEqual(a.Vars) }
		}, nil),
		"ordered": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error {
				lengths, err := constants(a.Lengths)
				if err != nil {
					return err
				}
				return cb.AddOrdered(a.Vars, lengths, xcsp.Operator(a.Operator))
			}
		}, needOperator),
		"lex": withArgs(func(a *args) apply {
			if a.Matrix != nil {
				return func(cb xcsp.Callbacks) error { return cb.AddLexMatrix(a.Matrix, xcsp.Operator(a.Operator)) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddLex(a.Lists, xcsp.Operator(a.Operator)) }
		}, needOperator),
		"precedence": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddPrecedence(a.Vars, a.Values, a.Covered) }
		}, nil),

		"sum": withArgs(func(a *args) apply {
			c := a.Condition.get()
			switch {
			case a.Exprs != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddSumExpr(trees(a.Exprs), a.Coeffs, c) }
			case a.CoeffVars != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddSumVarCoeffs(a.Vars, a.CoeffVars, c) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddSum(a.Vars, a.Coeffs, c) }
		}, needCondition),
		"count": withArgs(func(a *args) apply {
			c := a.Condition.get()
			switch {
			case a.Exprs != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddCountExpr(trees(a.Exprs), a.Values, c) }
			case a.ValueVars != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddCountVarValues(a.Vars, a.ValueVars, c) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddCount(a.Vars, a.Values, c) }
		}, needCondition),
		"nValues": withArgs(func(a *args) apply {
			c := a.Condition.get()
			if a.Exprs != nil {
				return func(cb xcsp.Callbacks) error { return cb.AddNValuesExpr(trees(a.Exprs), c) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddNValues(a.Vars, a.Except, c) }
		}, needCondition),

		"minimum": withArgs(func(a *args) apply {
			c := a.Condition.get()
			if a.Exprs != nil {
				return func(cb xcsp.Callbacks) error { return cb.AddMinimumExpr(trees(a.Exprs), c) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddMinimum(a.Vars, c) }
		}, needCondition),
		"maximum": withArgs(func(a *args) apply {
			c := a.Condition.get()
			if a.Exprs != nil {
				return func(cb xcsp.Callbacks) error { return cb.AddMaximumExpr(trees(a.Exprs), c) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddMaximum(a.Vars, c) }
		}, needCondition),
		"minimumArg": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddMinimumArg(a.Vars, a.Condition.get()) }
		}, needCondition),
		"maximumArg": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddMaximumArg(a.Vars, a.Condition.get()) }
		}, needCondition),
		"element": withArgs(elementEvent, needCondition),
		"channel": withArgs(func(a *args) apply {
			switch {
			case a.Vars2 != nil:
				return func(cb xcsp.Callbacks) error { return cb.AddChannelPair(a.Vars, a.StartIndex, a.Vars2, a.StartIndex2) }
			case a.Value != "":
				return func(cb xcsp.Callbacks) error { return cb.AddChannelValue(a.Vars, a.StartIndex, a.Value) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddChannel(a.Vars, a.StartIndex) }
		}, nil),
		"instantiation": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddInstantiation(a.Vars, a.Values) }
		}, nil),

		"noOverlap": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddNoOverlap(a.Origins, operands(a.Lengths), a.ZeroIgnored) }
		}, nil),
		"cumulative": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error {
				return cb.AddCumulative(a.Origins, operands(a.Lengths), operands(a.Heights), a.Ends, a.Condition.get())
			}
		}, needCondition),
		"binPacking": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddBinPacking(a.Vars, a.Sizes, a.Condition.get()) }
		}, needCondition),
		"knapsack": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error {
				return cb.AddKnapsack(a.Vars, a.Weights, a.WeightCondition.get(), a.Profits, a.ProfitCondition.get())
			}
		}, func(n *yaml.Node, a *args) error {
			if err := require(n, a.WeightCondition != nil, "weightCondition"); err != nil {
				return err
			}
			return require(n, a.ProfitCondition != nil, "profitCondition")
		}),
		"circuit": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddCircuit(a.Vars, a.StartIndex) }
		}, nil),

		"clause": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.AddClause(a.Pos, a.Neg) }
		}, nil),
		"logical": withArgs(func(a *args) apply {
			op := xcsp.Operator(a.Operator)
			if a.Result != "" {
				return func(cb xcsp.Callbacks) error { return cb.AddLogicalEq(a.Result, op, a.Vars) }
			}
			return func(cb xcsp.Callbacks) error { return cb.AddLogical(op, a.Vars) }
		}, needOperator),

		"minimize": objectiveEvent(xcsp.Minimize),
		"maximize": objectiveEvent(xcsp.Maximize),

		"decision": namesEvent(func(cb xcsp.Callbacks, names []string) error { return cb.DecisionVariables(names) }),
		"valueHeuristic": withArgs(func(a *args) apply {
			return func(cb xcsp.Callbacks) error { return cb.ValueHeuristicStatic(a.Vars, a.Order) }
		}, nil),
	}
}

func needNameAndDomain(n *yaml.Node, a *args) error {
	if err := require(n, a.Name != "", "name"); err != nil {
		return err
	}
	return require(n, a.Domain != nil, "domain")
}

func needOperator(n *yaml.Node, a *args) error {
	return require(n, a.Operator != "", "operator")
}

// constants converts operands that must all be integers.
func constants(ops []operand) ([]int64, error) {
	if ops == nil {
		return nil, nil
	}
	out := make([]int64, len(ops))
	for i, o := range ops {
		if xcsp.Operand(o).IsVar() {
			return nil, fmt.Errorf("length %d is the variable %s, want an integer", i, o.Var)
		}
		out[i] = o.Value
	}
	return out, nil
}

func intensionEvent(n *yaml.Node) (apply, error) {
	tree, err := decodeExpr(n)
	if err != nil {
		return nil, err
	}
	return func(cb xcsp.Callbacks) error { return cb.AddIntension(tree) }, nil
}

func elementEvent(a *args) apply {
	c := a.Condition.get()
	switch {
	case a.Matrix != nil:
		return func(cb xcsp.Callbacks) error {
			return cb.AddElementMatrix(a.Matrix, a.StartRow, a.Row, a.StartCol, a.Col, c)
		}
	case a.Values != nil:
		return func(cb xcsp.Callbacks) error { return cb.AddElementConstants(a.Values, a.StartIndex, a.Index, c) }
	case a.Index != "":
		return func(cb xcsp.Callbacks) error { return cb.AddElementAt(a.Vars, a.StartIndex, a.Index, c) }
	}
	return func(cb xcsp.Callbacks) error { return cb.AddElement(a.Vars, c) }
}

func objectiveEvent(dir xcsp.Direction) handler {
	return func(n *yaml.Node) (apply, error) {
		a, err := decodeArgs(n)
		if err != nil {
			return nil, err
		}
		var o xcsp.Objective
		switch {
		case a.Expr != nil:
			o = xcsp.Objective{Kind: xcsp.ObjectiveExpression, Tree: a.Expr.Node}
		case a.Variable != "":
			o = xcsp.Objective{Kind: xcsp.ObjectiveVariable, Vars: []string{a.Variable}}
		default:
			kind, err := xcsp.ParseObjectiveKind(a.Kind)
			if err != nil {
				return nil, nodeErrorf(n, "%v", err)
			}
			if kind == xcsp.ObjectiveExpression || kind == xcsp.ObjectiveVariable {
				return nil, nodeErrorf(n, "kind %v is written with expr or variable", kind)
			}
			o = xcsp.Objective{Kind: kind, Vars: a.Vars, Trees: trees(a.Exprs), Coeffs: a.Coeffs}
		}
		return func(cb xcsp.Callbacks) error { return cb.AddObjective(dir, o) }, nil
	}
}

func namesEvent(fn func(cb xcsp.Callbacks, names []string) error) handler {
	return func(n *yaml.Node) (apply, error) {
		var names []string
		if err := n.Decode(&names); err != nil {
			return nil, nodeErrorf(n, "expected a list of names: %v", err)
		}
		return func(cb xcsp.Callbacks) error { return fn(cb, names) }, nil
	}
}
