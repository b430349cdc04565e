package pyrosimple

import (
	"fmt"
	"io"
)

// writeList renders only the first field's value per item, one per line.
// The usual use is piping a hash list into the next command.
func (e *Engine) writeList(w io.Writer, names []string, items []Item) error {
	if len(names) == 0 {
		return nil
	}
	rows, err := e.itemRows(names[:1], items)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row[0]); err != nil {
			return err
		}
	}
	return nil
}
