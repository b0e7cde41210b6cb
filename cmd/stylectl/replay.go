package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/stylekit/internal/writer"
	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style"
)

var (
	replayEntries bool
	replaySave    string
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayEntries, "entries", false, "List the stored entries after replay")
	cmd.Flags().StringVar(&replaySave, "save", "", "Write a script that rebuilds the final state")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a style script and print the queried styles",
		Long: `The replay command builds a style storage from a YAML script, applies its
steps in order and answers its queries.

Example:
  stylectl replay sheet.yaml
  stylectl replay sheet.yaml --entries
  stylectl replay sheet.yaml --save compact.yaml
  stylectl replay sheet.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// ReplayResult is the JSON shape of a replay.
type ReplayResult struct {
	Queries      []QueryResult `json:"queries"`
	UsedArea     string        `json:"used_area"`
	WholeRows    []string      `json:"whole_rows,omitempty"`
	WholeColumns []string      `json:"whole_columns,omitempty"`
	Entries      int           `json:"entries"`
	GCPending    int           `json:"gc_pending"`
	Stored       []EntryResult `json:"stored,omitempty"`
}

// QueryResult is the answer to one query.
type QueryResult struct {
	Query   string `json:"query"`
	Style   string `json:"style"`
	Default bool   `json:"default"`
}

// EntryResult is one stored rect/substyle pair.
type EntryResult struct {
	Range string `json:"range"`
	Value string `json:"value"`
	Z     uint64 `json:"z"`
}

func runReplay(args []string) error {
	scriptPath := args[0]
	printVerbose("Loading script: %s\n", scriptPath)

	script, err := loadScript(scriptPath)
	if err != nil {
		return err
	}
	st, err := script.build()
	if err != nil {
		return fmt.Errorf("failed to build storage: %w", err)
	}
	if err := script.run(st); err != nil {
		return err
	}
	if replaySave != "" {
		if err := saveSnapshot(writer.NewFileWriter(replaySave, writer.WithCreateDirs()), st, script.Queries); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		printVerbose("Saved snapshot: %s\n", replaySave)
	}

	result, err := answer(st, script.Queries)
	if err != nil {
		return err
	}
	if replayEntries {
		for _, e := range st.Entries() {
			result.Stored = append(result.Stored, EntryResult{Range: e.Rect.String(), Value: e.Value.String(), Z: e.Z})
		}
	}

	if jsonOut {
		return printJSON(result)
	}
	printResult(result)
	return nil
}

func answer(st *style.Storage, queries []Query) (*ReplayResult, error) {
	lim := st.Limits()
	result := &ReplayResult{Queries: []QueryResult{}}
	for _, q := range queries {
		switch {
		case q.Cell != "":
			p, err := grid.ParsePoint(q.Cell)
			if err != nil {
				return nil, err
			}
			s := st.StyleAt(p.Column, p.Row)
			result.Queries = append(result.Queries, QueryResult{Query: q.Cell, Style: s.String(), Default: s.IsDefault()})
		case q.Range != "":
			r, err := grid.ParseRect(q.Range, lim)
			if err != nil {
				return nil, err
			}
			mode := style.Contains
			switch strings.ToLower(q.Mode) {
			case "", "contains":
			case "intersects":
				mode = style.Intersects
			default:
				return nil, fmt.Errorf("unknown query mode %q", q.Mode)
			}
			s := st.StyleOver(r, mode)
			result.Queries = append(result.Queries, QueryResult{Query: q.Range, Style: s.String(), Default: s.IsDefault()})
		default:
			return nil, fmt.Errorf("query needs a cell or a range")
		}
	}

	result.UsedArea = st.UsedArea().String()
	for _, sp := range st.WholeRows() {
		result.WholeRows = append(result.WholeRows, fmt.Sprintf("%d:%d", sp.Lo, sp.Hi))
	}
	for _, sp := range st.WholeColumns() {
		result.WholeColumns = append(result.WholeColumns, grid.ColumnName(sp.Lo)+":"+grid.ColumnName(sp.Hi))
	}
	stats := st.Stats()
	result.Entries = stats.Entries
	result.GCPending = stats.GCPending
	return result, nil
}

func printResult(r *ReplayResult) {
	for _, q := range r.Queries {
		printInfo("%-12s %s\n", q.Query, q.Style)
	}
	if len(r.Queries) > 0 {
		printInfo("\n")
	}
	printInfo("Used area:     %s\n", r.UsedArea)
	if len(r.WholeRows) > 0 {
		printInfo("Whole rows:    %s\n", strings.Join(r.WholeRows, ", "))
	}
	if len(r.WholeColumns) > 0 {
		printInfo("Whole columns: %s\n", strings.Join(r.WholeColumns, ", "))
	}
	printInfo("Entries:       %d\n", r.Entries)
	printInfo("GC pending:    %d\n", r.GCPending)
	for _, e := range r.Stored {
		printInfo("  z=%-4d %-12s %s\n", e.Z, e.Range, e.Value)
	}
}
