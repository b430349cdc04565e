package pyrosimple

import (
	"encoding/json"
	"io"
)

func (e *Engine) writeJSON(w io.Writer, names []string, items []Item) error {
	maps, err := e.itemMaps(names, items)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(maps)
}
