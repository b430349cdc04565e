package pyrosimple

import (
	"encoding/csv"
	"io"
)

func (e *Engine) writeCSV(w io.Writer, names []string, items []Item) error {
	rows, err := e.itemRows(names, items)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(e.headerRow(names)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
