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

// Package eventfile reads event scripts: YAML documents listing the
// declarations of an instance, and replays them against an xcsp.Callbacks.
//
// A script is a sequence of single-key mappings, one per event, in declaration
// order:
//
//	- var: {name: x, domain: 0..5}
//	- var: {name: y, domain: [2, 4, 8]}
//	- intension: {lt: [x, {add: [y, 1]}]}
//	- sum: {vars: [x, y], coeffs: [1, 2], condition: [le, 10]}
//	- group:
//	    - allDifferent: {vars: [x, y]}
//	- minimize: {variable: x}
//
// Expressions are written as nested mappings: an integer is a constant, a
// string a variable, and `{op: [args...]}` applies the XCSP3 operator op to its
// arguments (unary, binary or n-ary by argument count). `{if: [c, t, e]}`,
// `{range: [min, max]}` and `{set: [values...]}` complete the vocabulary.
// Conditions are pairs `[op, rhs]` where rhs is an integer, a variable name, an
// interval "min..max" or a list of values.
package eventfile

import (
	"errors"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/xcsp3-go/cpbridge/xcsp"
)

// ParseError reports a malformed script. It never wraps an error returned by
// the callbacks.
type ParseError struct {
	// Line is the line of the offending element, 0 if unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "eventfile: " + e.Err.Error()
	}
	return fmt.Sprintf("eventfile: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func nodeErrorf(n *yaml.Node, format string, a ...any) error {
	return &ParseError{Line: n.Line, Err: fmt.Errorf(format, a...)}
}

// apply sends one event to the callbacks.
type apply func(cb xcsp.Callbacks) error

type event struct {
	line  int
	kind  string
	apply apply
}

// Script is a parsed event script.
type Script struct {
	events []event
}

// Len returns the number of events of the script, group delimiters included.
func (s *Script) Len() int {
	return len(s.events)
}

// Load reads and parses the script at `path`.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event script: %w", err)
	}
	return Parse(data)
}

// Parse parses a script. It returns a *ParseError if the document is not a
// well-formed script.
func Parse(data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(doc.Content) == 0 {
		return &Script{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, nodeErrorf(root, "a script is a sequence of events")
	}
	s := &Script{}
	if err := s.parseEvents(root); err != nil {
		return nil, err
	}
	log.V(1).Infof("parsed %d events", len(s.events))
	return s, nil
}

func (s *Script) parseEvents(seq *yaml.Node) error {
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
			return nodeErrorf(item, "an event is a mapping with a single key")
		}
		key, value := item.Content[0], item.Content[1]

		if key.Value == "group" {
			if value.Kind != yaml.SequenceNode {
				return nodeErrorf(value, "a group holds a sequence of events")
			}
			s.events = append(s.events, event{line: key.Line, kind: "beginGroup", apply: func(cb xcsp.Callbacks) error { return cb.BeginGroup() }})
			if err := s.parseEvents(value); err != nil {
				return err
			}
			s.events = append(s.events, event{line: key.Line, kind: "endGroup", apply: func(cb xcsp.Callbacks) error { return cb.EndGroup() }})
			continue
		}

		h, ok := handlers[key.Value]
		if !ok {
			return nodeErrorf(key, "unknown event %q", key.Value)
		}
		fn, err := h(value)
		if err != nil {
			perr := &ParseError{Line: value.Line}
			if errors.As(err, &perr) {
				err = perr.Err
			}
			return &ParseError{Line: perr.Line, Err: fmt.Errorf("%s: %w", key.Value, err)}
		}
		s.events = append(s.events, event{line: key.Line, kind: key.Value, apply: fn})
	}
	return nil
}

// Replay sends the events of the script to `cb` in order, then calls
// EndInstance. It stops at the first error returned by `cb`, which is returned
// wrapped with the position of the event.
func (s *Script) Replay(cb xcsp.Callbacks) error {
	for i, e := range s.events {
		log.V(2).Infof("event %d: %s (line %d)", i, e.kind, e.line)
		if err := e.apply(cb); err != nil {
			return fmt.Errorf("event %d (%s, line %d): %w", i, e.kind, e.line, err)
		}
	}
	if err := cb.EndInstance(); err != nil {
		return fmt.Errorf("end of instance: %w", err)
	}
	return nil
}
