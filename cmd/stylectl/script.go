package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style"
	"github.com/joshuapare/stylekit/style/namedstyle"
	"github.com/joshuapare/stylekit/style/substyle"
)

// Script is a replayable sheet session.
//
//	options:
//	  max_column: 26
//	  max_row: 100
//	default:
//	  font-size: "10"
//	styles:
//	  - name: Heading
//	    attrs: {bold: "true"}
//	steps:
//	  - op: insert
//	    range: A1:C3
//	    set: {named-style: Heading}
//	  - op: insert_rows
//	    at: 2
//	    count: 1
//	queries:
//	  - cell: B2
//	  - range: A1:C3
//	    mode: intersects
type Script struct {
	Options yaml.Node         `yaml:"options"`
	Default map[string]string `yaml:"default,omitempty"`
	Styles  []NamedStyle      `yaml:"styles,omitempty"`
	Steps   []Step            `yaml:"steps,omitempty"`
	Queries []Query           `yaml:"queries,omitempty"`
}

// NamedStyle defines one entry of the style table.
type NamedStyle struct {
	Name   string            `yaml:"name"`
	Parent string            `yaml:"parent,omitempty"`
	Attrs  map[string]string `yaml:"attrs,omitempty"`
}

// Step is one storage operation.
type Step struct {
	Op    string            `yaml:"op"`
	Range string            `yaml:"range,omitempty"`
	At    int               `yaml:"at,omitempty"`
	Count int               `yaml:"count,omitempty"`
	Set   map[string]string `yaml:"set,omitempty"`
}

// Query asks for the style of one cell or of a range.
type Query struct {
	Cell  string `yaml:"cell,omitempty"`
	Range string `yaml:"range,omitempty"`
	Mode  string `yaml:"mode,omitempty"`
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return &s, nil
}

// parseAttrs turns a kind-name map into substyles in kind order, so a
// default marker or named-style reference lands below plain attributes.
func parseAttrs(attrs map[string]string) ([]substyle.SubStyle, error) {
	out := make([]substyle.SubStyle, 0, len(attrs))
	for kind, raw := range attrs {
		sub, err := substyle.Parse(kind, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	slices.SortFunc(out, func(a, b substyle.SubStyle) int { return int(a.Kind()) - int(b.Kind()) })
	return out, nil
}

// build creates the storage and style table described by the script.
func (s *Script) build() (*style.Storage, error) {
	opts := style.DefaultOptions()
	if !s.Options.IsZero() {
		data, err := yaml.Marshal(&s.Options)
		if err != nil {
			return nil, err
		}
		if opts, err = style.ParseOptions(data); err != nil {
			return nil, err
		}
	}

	defaults, err := parseAttrs(s.Default)
	if err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	mgr := namedstyle.NewManager(defaults...)
	for _, ns := range s.Styles {
		attrs, err := parseAttrs(ns.Attrs)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", ns.Name, err)
		}
		mgr.Add(ns.Name, ns.Parent, attrs...)
	}
	return style.New(mgr, opts)
}

// run applies every step in order. An apply_undo step replays the undo
// data of the most recent structural edit.
func (s *Script) run(st *style.Storage) error {
	var undo []style.Pair
	for i, step := range s.Steps {
		printVerbose("step %d: %s %s\n", i+1, step.Op, step.Range)
		pairs, err := step.apply(st, undo)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		if pairs != nil {
			undo = pairs
		}
	}
	return nil
}

func (step Step) apply(st *style.Storage, undo []style.Pair) ([]style.Pair, error) {
	lim := st.Limits()
	var rect grid.Rect
	if step.Range != "" {
		r, err := grid.ParseRect(step.Range, lim)
		if err != nil {
			return nil, err
		}
		rect = r
	}

	switch strings.ToLower(step.Op) {
	case "insert":
		subs, err := parseAttrs(step.Set)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			if err := st.InsertSubStyle(grid.Region{rect}, sub); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case "insert_rows":
		return st.InsertRows(step.At, step.Count)
	case "remove_rows":
		return st.RemoveRows(step.At, step.Count)
	case "insert_columns":
		return st.InsertColumns(step.At, step.Count)
	case "remove_columns":
		return st.RemoveColumns(step.At, step.Count)
	case "insert_shift_right":
		return st.InsertShiftRight(rect)
	case "insert_shift_down":
		return st.InsertShiftDown(rect)
	case "remove_shift_left":
		return st.RemoveShiftLeft(rect)
	case "remove_shift_up":
		return st.RemoveShiftUp(rect)
	case "apply_undo":
		return nil, st.ApplyUndo(undo)
	case "gc":
		n := st.CollectGarbage()
		printVerbose("  collected %d candidates\n", n)
		return nil, nil
	}
	return nil, fmt.Errorf("unknown op %q", step.Op)
}
