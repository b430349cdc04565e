package pyrosimple

import (
	"fmt"
	"io"
	"strings"
)

// writeENV renders NAME=value lines per item, field names upper-cased,
// items separated by a blank line. Meant for eval'ing in shell hooks.
func (e *Engine) writeENV(w io.Writer, names []string, items []Item) error {
	rows, err := e.itemRows(names, items)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for j, cell := range row {
			key := strings.ToUpper(bareName(names[j]))
			if _, err := fmt.Fprintf(w, "%s=%q\n", key, cell); err != nil {
				return err
			}
		}
	}
	return nil
}
