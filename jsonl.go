package pyrosimple

import (
	"encoding/json"
	"io"
)

func (e *Engine) writeJSONL(w io.Writer, names []string, items []Item) error {
	maps, err := e.itemMaps(names, items)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, mp := range maps {
		if err := enc.Encode(mp); err != nil {
			return err
		}
	}
	return nil
}
