package main

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/stylekit/internal/writer"
	"github.com/joshuapare/stylekit/style"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/namedstyle"
	"github.com/joshuapare/stylekit/style/substyle"
)

// saveSnapshot writes a script that rebuilds st: its options, its style
// table and one insert step per stored entry in z order. queries are
// carried over unchanged.
func saveSnapshot(sink writer.Sink, st *style.Storage, queries []Query) error {
	opts := st.Options()
	var script Script
	err := script.Options.Encode(map[string]any{
		"max_column":       opts.MaxColumn,
		"max_row":          opts.MaxRow,
		"cache_capacity":   opts.CacheCapacity,
		"gc_delay":         opts.GCDelay.String(),
		"insert_mode":      opts.InsertMode.String(),
		"max_parent_depth": opts.MaxParentDepth,
	})
	if err != nil {
		return err
	}

	script.Default = styleAttrs(st.DefaultStyle())
	if mgr, ok := st.Manager().(*namedstyle.Manager); ok {
		for _, name := range mgr.Names() {
			ns, _ := mgr.Resolve(name)
			script.Styles = append(script.Styles, NamedStyle{
				Name:   ns.Name(),
				Parent: ns.ParentName(),
				Attrs:  styleAttrs(ns.Style()),
			})
		}
	}
	for _, e := range st.Entries() {
		script.Steps = append(script.Steps, Step{
			Op:    "insert",
			Range: e.Rect.String(),
			Set:   map[string]string{e.Value.Kind().String(): rawValue(e.Value)},
		})
	}
	script.Queries = queries

	data, err := yaml.Marshal(&script)
	if err != nil {
		return err
	}
	return sink.Write(data)
}

func styleAttrs(s compose.Style) map[string]string {
	out := make(map[string]string)
	for k := range substyle.NumKinds {
		if sub, ok := s.Get(k); ok {
			out[k.String()] = rawValue(sub)
		}
	}
	return out
}

// rawValue is the inverse of substyle.Parse for one substyle.
func rawValue(sub substyle.SubStyle) string {
	v := sub.Value()
	switch v.Kind.ValueType() {
	case substyle.NoValue:
		return ""
	case substyle.BoolValue:
		return strconv.FormatBool(v.Num != 0)
	case substyle.TextValue:
		return v.Text
	}
	return strconv.FormatInt(v.Num, 10)
}
