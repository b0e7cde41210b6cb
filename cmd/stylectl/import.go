package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/joshuapare/stylekit/internal/writer"
	"github.com/joshuapare/stylekit/pkg/grid"
	"github.com/joshuapare/stylekit/style"
	"github.com/joshuapare/stylekit/style/compose"
	"github.com/joshuapare/stylekit/style/namedstyle"
	"github.com/joshuapare/stylekit/style/substyle"
)

var (
	importSheet  string
	importRange  string
	importConfig string
	importSave   string
)

func init() {
	cmd := newImportCmd()
	cmd.Flags().StringVar(&importSheet, "sheet", "", "Sheet to read (default: the active sheet)")
	cmd.Flags().StringVar(&importRange, "range", "A1:Z200", "Cells to scan for styles")
	cmd.Flags().StringVar(&importConfig, "config", "", "Storage options YAML file")
	cmd.Flags().StringVar(&importSave, "save", "", "Write a replay script of the imported styles")
	rootCmd.AddCommand(cmd)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <book.xlsx>",
		Short: "Import cell styles from an xlsx workbook",
		Long: `The import command reads the cell formats of one sheet of an xlsx workbook
into a style storage. Horizontal runs of cells sharing a format become one
rectangle per attribute.

Example:
  stylectl import book.xlsx
  stylectl import book.xlsx --sheet Data --range A1:H50
  stylectl import book.xlsx --save book-styles.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
	return cmd
}

// ImportResult is the JSON shape of an import.
type ImportResult struct {
	Sheet    string `json:"sheet"`
	Runs     int    `json:"runs"`
	Entries  int    `json:"entries"`
	UsedArea string `json:"used_area"`
}

func runImport(args []string) error {
	opts := style.DefaultOptions()
	if importConfig != "" {
		var err error
		if opts, err = style.LoadOptions(importConfig); err != nil {
			return err
		}
	}
	st, err := style.New(namedstyle.NewManager(), opts)
	if err != nil {
		return err
	}
	area, err := grid.ParseRect(importRange, st.Limits())
	if err != nil {
		return err
	}
	if err := area.Validate(st.Limits()); err != nil {
		return err
	}

	printVerbose("Opening workbook: %s\n", args[0])
	sheet, runs, err := importWorkbook(st, args[0], importSheet, area)
	if err != nil {
		return err
	}

	if importSave != "" {
		if err := saveSnapshot(writer.NewFileWriter(importSave, writer.WithCreateDirs()), st, nil); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
	}

	result := ImportResult{
		Sheet:    sheet,
		Runs:     runs,
		Entries:  st.Stats().Entries,
		UsedArea: st.UsedArea().String(),
	}
	if jsonOut {
		return printJSON(result)
	}
	printInfo("Sheet:     %s\n", result.Sheet)
	printInfo("Runs:      %d\n", result.Runs)
	printInfo("Entries:   %d\n", result.Entries)
	printInfo("Used area: %s\n", result.UsedArea)
	return nil
}

// importWorkbook inserts the formats of area on sheet into st and returns
// the sheet read and the number of styled runs.
func importWorkbook(st *style.Storage, path, sheet string, area grid.Rect) (string, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	formats := make(map[int][]substyle.SubStyle)
	runs := 0
	insert := func(id int, r grid.Rect) error {
		subs, ok := formats[id]
		if !ok {
			s, err := f.GetStyle(id)
			if err != nil {
				return err
			}
			subs = xlsxSubStyles(s)
			formats[id] = subs
		}
		if len(subs) == 0 {
			return nil
		}
		runs++
		return st.Insert(grid.Region{r}, compose.NewStyle(subs...))
	}

	for row := area.Top; row <= area.Bottom; row++ {
		start, current := area.Left, 0
		for col := area.Left; col <= area.Right+1; col++ {
			id := 0
			if col <= area.Right {
				cell, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return "", runs, err
				}
				if id, err = f.GetCellStyle(sheet, cell); err != nil {
					return "", runs, err
				}
			}
			if id == current {
				continue
			}
			if current != 0 {
				if err := insert(current, grid.R(start, row, col-1, row)); err != nil {
					return "", runs, err
				}
			}
			start, current = col, id
		}
	}
	return sheet, runs, nil
}

var (
	xlsxHAlign = map[string]int64{"left": 1, "center": 2, "right": 3, "fill": 4, "justify": 5, "centerContinuous": 6, "distributed": 7}
	xlsxVAlign = map[string]int64{"top": 1, "center": 2, "bottom": 3, "justify": 4, "distributed": 5}
)

// xlsxSubStyles maps one workbook cell format to substyles.
func xlsxSubStyles(s *excelize.Style) []substyle.SubStyle {
	if s == nil {
		return nil
	}
	var out []substyle.SubStyle
	if font := s.Font; font != nil {
		if font.Family != "" {
			out = append(out, substyle.Text(substyle.FontFamily, font.Family))
		}
		if font.Size > 0 {
			out = append(out, substyle.Int(substyle.FontSize, int64(math.Round(font.Size))))
		}
		if font.Bold {
			out = append(out, substyle.Bool(substyle.Bold, true))
		}
		if font.Italic {
			out = append(out, substyle.Bool(substyle.Italic, true))
		}
		if font.Underline != "" && font.Underline != "none" {
			out = append(out, substyle.Bool(substyle.Underline, true))
		}
		if font.Strike {
			out = append(out, substyle.Bool(substyle.Strikethrough, true))
		}
		if c, ok := parseColor(font.Color); ok {
			out = append(out, substyle.Int(substyle.TextColor, c))
		}
	}
	if len(s.Fill.Color) > 0 {
		if c, ok := parseColor(s.Fill.Color[0]); ok {
			out = append(out, substyle.Int(substyle.BackgroundColor, c))
		}
	}
	if a := s.Alignment; a != nil {
		if h, ok := xlsxHAlign[a.Horizontal]; ok {
			out = append(out, substyle.Int(substyle.HAlign, h))
		}
		if v, ok := xlsxVAlign[a.Vertical]; ok {
			out = append(out, substyle.Int(substyle.VAlign, v))
		}
		if a.WrapText {
			out = append(out, substyle.Bool(substyle.Wrap, true))
		}
		if a.TextRotation != 0 {
			out = append(out, substyle.Int(substyle.Angle, int64(a.TextRotation)))
		}
		if a.Indent > 0 {
			out = append(out, substyle.Indent(a.Indent))
		}
	}
	for _, b := range s.Border {
		kind, ok := map[string]substyle.Kind{
			"left": substyle.BorderLeft, "right": substyle.BorderRight,
			"top": substyle.BorderTop, "bottom": substyle.BorderBottom,
		}[b.Type]
		if ok && b.Style > 0 {
			out = append(out, substyle.Text(kind, fmt.Sprintf("%d %s", b.Style, b.Color)))
		}
	}
	switch {
	case s.CustomNumFmt != nil && *s.CustomNumFmt != "":
		out = append(out, substyle.Text(substyle.NumberFormat, *s.CustomNumFmt))
	case s.NumFmt != 0:
		out = append(out, substyle.Text(substyle.NumberFormat, strconv.Itoa(s.NumFmt)))
	}
	if s.DecimalPlaces != nil && *s.DecimalPlaces > 0 {
		out = append(out, substyle.Precision(min(*s.DecimalPlaces, compose.MaxPrecision)))
	}
	if p := s.Protection; p != nil {
		out = append(out, substyle.Bool(substyle.Locked, p.Locked))
		if p.Hidden {
			out = append(out, substyle.Bool(substyle.Hidden, true))
		}
	}
	return out
}

// parseColor reads an RGB or ARGB hex color.
func parseColor(s string) (int64, bool) {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return 0, false
	}
	c, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return c & 0xFFFFFF, true
}
