package pyrosimple

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable renders a header line plus one aligned line per item, columns
// padded to the widest cell by display width.
func (e *Engine) writeTable(w io.Writer, names []string, items []Item) error {
	rows, err := e.itemRows(names, items)
	if err != nil {
		return err
	}
	header := e.headerRow(names)
	widths := columnWidths(header, rows)
	if err := writeAligned(w, header, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeAligned(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if cw := runewidth.StringWidth(cell); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}
	return widths
}

func writeAligned(w io.Writer, row []string, widths []int) error {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = runewidth.FillRight(cell, widths[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	return err
}
