package pyrosimple

import (
	"io"

	"gopkg.in/yaml.v3"
)

func (e *Engine) writeYAML(w io.Writer, names []string, items []Item) error {
	maps, err := e.itemMaps(names, items)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(maps); err != nil {
		return err
	}
	return enc.Close()
}
