package pyrosimple

import (
	"fmt"
	"io"
	"strings"
)

// writePlain renders one unaligned line per item and no header line, for
// output piped into other tools.
func (e *Engine) writePlain(w io.Writer, names []string, items []Item) error {
	rows, err := e.itemRows(names, items)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
