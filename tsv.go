package pyrosimple

import (
	"fmt"
	"io"
	"strings"
)

func (e *Engine) writeTSV(w io.Writer, names []string, items []Item) error {
	rows, err := e.itemRows(names, items)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(e.headerRow(names), "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
