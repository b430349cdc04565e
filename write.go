package pyrosimple

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Format represents a bulk output format.
type Format string

const (
	Table    Format = "table"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	List     Format = "list"
	ENV      Format = "env"
	Markdown Format = "markdown"
	Plain    Format = "plain"
)

const templatePrefix = "template="

var formats = []Format{Table, CSV, TSV, JSON, JSONL, YAML, List, ENV, Markdown, Plain}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names. TemplateFormat is not
// included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// TemplateFormat returns a Format that renders each item through the
// template dispatcher ([Engine.FormatItem]) on its own line.
func TemplateFormat(src string) Format {
	return Format(templatePrefix + src)
}

// ParseFormat parses a format string. Recognizes all static formats and
// template=<src> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, templatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write renders items in format f and writes to w. fields is a validated
// comma-/space-separated field list, each entry optionally carrying chained
// format specs; the template= format ignores it.
//
// A formatting failure on one item skips that item with a logged warning,
// so one bad value never aborts the batch.
func (e *Engine) Write(w io.Writer, f Format, fields string, items ...Item) error {
	if src, ok := strings.CutPrefix(string(f), templatePrefix); ok {
		return e.writeTemplate(w, src, items)
	}
	names, err := e.ValidateFieldList(fields, true, nil)
	if err != nil {
		return err
	}
	switch f {
	case Table:
		return e.writeTable(w, names, items)
	case CSV:
		return e.writeCSV(w, names, items)
	case TSV:
		return e.writeTSV(w, names, items)
	case JSON:
		return e.writeJSON(w, names, items)
	case JSONL:
		return e.writeJSONL(w, names, items)
	case YAML:
		return e.writeYAML(w, names, items)
	case List:
		return e.writeList(w, names, items)
	case ENV:
		return e.writeENV(w, names, items)
	case Markdown:
		return e.writeMarkdown(w, names, items)
	case Plain:
		return e.writePlain(w, names, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders items in format f and returns the bytes.
func (e *Engine) Marshal(f Format, fields string, items ...Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, f, fields, items...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Engine) writeTemplate(w io.Writer, src string, items []Item) error {
	t, err := e.Preparse(src)
	if err != nil {
		return err
	}
	for _, item := range items {
		line, err := e.FormatItem(t, item, nil)
		if err != nil {
			if e.skippable(err) {
				continue
			}
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// headerRow renders the column labels for a field list.
func (e *Engine) headerRow(names []string) []string {
	m := e.NewMapping(nil, nil)
	row := make([]string, len(names))
	for i, name := range names {
		// Header mode cannot fail on a validated field list.
		label, _ := m.Resolve(name)
		row[i] = fmt.Sprint(label)
	}
	return row
}

// itemRow renders the data cells of one item for a field list.
func (e *Engine) itemRow(names []string, item Item) ([]string, error) {
	m := e.NewMapping(item, nil)
	row := make([]string, len(names))
	for i, name := range names {
		val, err := m.Resolve(name)
		if err != nil {
			return nil, err
		}
		row[i] = fmt.Sprint(val)
	}
	return row, nil
}

// itemRows renders all items, skipping any item whose formatting fails.
func (e *Engine) itemRows(names []string, items []Item) ([][]string, error) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row, err := e.itemRow(names, item)
		if err != nil {
			if e.skippable(err) {
				continue
			}
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// itemMap resolves the values of one item keyed by bare field name, for the
// structured output formats.
func (e *Engine) itemMap(names []string, item Item) (map[string]any, error) {
	m := e.NewMapping(item, nil)
	out := make(map[string]any, len(names))
	for _, name := range names {
		val, err := m.Resolve(name)
		if err != nil {
			return nil, err
		}
		out[bareName(name)] = val
	}
	return out, nil
}

func (e *Engine) itemMaps(names []string, items []Item) ([]map[string]any, error) {
	maps := make([]map[string]any, 0, len(items))
	for _, item := range items {
		mp, err := e.itemMap(names, item)
		if err != nil {
			if e.skippable(err) {
				continue
			}
			return nil, err
		}
		maps = append(maps, mp)
	}
	return maps, nil
}

// skippable reports whether a per-item failure should skip the item, with
// a logged warning, rather than abort the batch.
func (e *Engine) skippable(err error) bool {
	if errors.Is(err, ErrFormatting) || errors.Is(err, ErrMissingField) || errors.Is(err, ErrTemplateExpand) {
		e.log.Warn("skipping item", zap.Error(err))
		return true
	}
	return false
}

func bareName(spec string) string {
	name, _, _ := strings.Cut(spec, ".")
	return name
}
