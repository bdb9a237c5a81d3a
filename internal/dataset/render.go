package dataset

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().PaddingLeft(1).Align(lipgloss.Right)

// Render writes every row as a borderless, right-aligned table without an index column.
func Render(w io.Writer, d Dataset) error {
	cells := make([][]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		line := make([]string, len(d.Columns))
		for c, col := range d.Columns {
			line[c] = formatCell(row[col])
		}
		cells = append(cells, line)
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(d.Columns...).
		Rows(cells...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "NaN"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
