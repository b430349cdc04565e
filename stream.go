package pyrosimple

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strings"
)

// WriteIter renders items from an iterator as they arrive. Formats where
// items are independent (CSV, TSV, JSONL, Plain, List, template=) write
// each item immediately; formats that need all data for column layout
// (Table, Markdown), a single document (JSON, YAML) or inter-item
// separators (ENV) collect first.
func (e *Engine) WriteIter(w io.Writer, f Format, fields string, seq iter.Seq[Item]) error {
	switch f {
	case Table, Markdown, JSON, YAML, ENV:
		return e.streamCollect(w, f, fields, seq)
	case CSV, TSV:
		return e.streamRows(w, f, fields, seq)
	case JSONL, Plain, List:
		return e.streamEach(w, f, fields, seq)
	default:
		if strings.HasPrefix(string(f), templatePrefix) {
			return e.streamEach(w, f, fields, seq)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteChan renders items from a channel. It is a thin wrapper around
// [Engine.WriteIter].
func (e *Engine) WriteChan(w io.Writer, f Format, fields string, ch <-chan Item) error {
	return e.WriteIter(w, f, fields, chanToIter(ch))
}

func chanToIter(ch <-chan Item) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func (e *Engine) streamCollect(w io.Writer, f Format, fields string, seq iter.Seq[Item]) error {
	var items []Item
	for item := range seq {
		items = append(items, item)
	}
	return e.Write(w, f, fields, items...)
}

// streamRows writes the header once, then one row per item.
func (e *Engine) streamRows(w io.Writer, f Format, fields string, seq iter.Seq[Item]) error {
	first := true
	for item := range seq {
		if first {
			first = false
			if err := e.Write(w, f, fields, item); err != nil {
				return err
			}
			continue
		}
		if err := e.writeRowOnly(w, f, fields, item); err != nil {
			return err
		}
	}
	if first {
		// No items: still emit the header line.
		return e.Write(w, f, fields)
	}
	return nil
}

func (e *Engine) writeRowOnly(w io.Writer, f Format, fields string, item Item) error {
	names, err := e.ValidateFieldList(fields, true, nil)
	if err != nil {
		return err
	}
	rows, err := e.itemRows(names, []Item{item})
	if err != nil || len(rows) == 0 {
		return err
	}
	switch f {
	case CSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(rows[0]); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		_, err = fmt.Fprintln(w, strings.Join(rows[0], "\t"))
		return err
	}
}

// streamEach renders every item as an independent unit through the regular
// writer.
func (e *Engine) streamEach(w io.Writer, f Format, fields string, seq iter.Seq[Item]) error {
	for item := range seq {
		if err := e.Write(w, f, fields, item); err != nil {
			return err
		}
	}
	return nil
}
