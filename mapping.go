package pyrosimple

import (
	"fmt"
	"strings"
)

// Mapping resolves format specs against one backing item and a defaults
// mapping. Instances are scoped to a single render call and hold no shared
// mutable state.
//
// A nil item selects header mode: Resolve returns column labels (the
// upper-cased field name, or the literal "%" for the reserved "pc" key) and
// never invokes any formatter.
type Mapping struct {
	eng      *Engine
	item     Item
	defaults map[string]any
}

// NewMapping binds item (or nil for header mode) and defaults. The reserved
// "pc" default is seeded with the literal percent sign so interpolation
// templates can reference it.
func (e *Engine) NewMapping(item Item, defaults map[string]any) *Mapping {
	d := make(map[string]any, len(defaults)+1)
	for k, v := range defaults {
		d[k] = v
	}
	if _, ok := d["pc"]; !ok {
		d["pc"] = "%"
	}
	return &Mapping{eng: e, item: item, defaults: d}
}

// Resolve evaluates a format spec of the shape "field[.fmt1[.fmt2...]]".
// A leading "raw" spec disables the field's intrinsic formatter; explicitly
// chained formatters always apply, left to right, in the order written.
func (m *Mapping) Resolve(spec string) (any, error) {
	field := spec
	var chain []FormatFunc
	haveRaw := false
	if i := strings.IndexByte(spec, '.'); i >= 0 {
		field = spec[:i]
		specs := strings.Split(spec[i+1:], ".")
		if specs[0] == RawSpec {
			haveRaw = true
			specs = specs[1:]
		}
		for _, name := range specs {
			fn, ok := chainFormatter(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q for %q", ErrUnknownFormatSpec, name, field)
			}
			chain = append(chain, fn)
		}
	}

	// Resolution order: registered field, then defaults, then the dynamic
	// registration hook. A defaults-only name must never trigger the hook.
	def, known := m.eng.fields.get(field)
	if !known {
		if _, isDefault := m.defaults[field]; !isDefault {
			if def, known = m.eng.fields.Lookup(field); !known {
				return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
			}
		}
	}
	if known && def.Formatter != nil && !haveRaw {
		// Intrinsic formatter is the innermost step.
		chain = append([]FormatFunc{def.Formatter}, chain...)
	}

	if m.item == nil {
		if field == "pc" {
			return "%", nil
		}
		return strings.ToUpper(field), nil
	}

	var val any
	var found bool
	if known {
		val, found = def.value(m.item)
	} else {
		val, found = m.item.Field(field)
	}
	if !found {
		if val, found = m.defaults[field]; !found {
			return nil, fmt.Errorf("%w: %q on %v", ErrMissingField, field, m.item)
		}
	}

	out := val
	for _, fn := range chain {
		var err error
		if out, err = fn(out); err != nil {
			return nil, &FormatError{Field: field, Value: val, Err: err}
		}
	}
	return out, nil
}
