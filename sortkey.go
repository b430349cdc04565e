package pyrosimple

import (
	"cmp"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ValidateFieldList makes sure every field in the comma-/space-separated
// list exists. With allowFmtSpecs, chained "field.fmt1.fmt2" entries are
// accepted and each chained name is checked against the catalog (the
// reserved "raw" spec aside). nameFilter, if any, rewrites each name before
// validation; sort validation uses it to strip direction markers.
func (e *Engine) ValidateFieldList(fields string, allowFmtSpecs bool, nameFilter func(string) string) ([]string, error) {
	split := strings.Fields(strings.ReplaceAll(fields, ",", " "))
	if nameFilter != nil {
		for i := range split {
			split[i] = nameFilter(split[i])
		}
	}
	for _, name := range split {
		bare := name
		if allowFmtSpecs && strings.Contains(name, ".") {
			var specs string
			bare, specs, _ = strings.Cut(name, ".")
			for _, spec := range strings.Split(specs, ".") {
				if _, ok := chainFormatter(spec); !ok && spec != RawSpec {
					return nil, fmt.Errorf("%w: %q in %q", ErrUnknownFormatSpec, spec, name)
				}
			}
		}
		if _, ok := e.fields.Lookup(bare); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, bare)
		}
	}
	return split, nil
}

// Comparator orders two items; negative means a sorts before b, zero means
// the items tie (stable under whatever secondary ordering the caller's sort
// uses). It is the shape [slices.SortStableFunc] expects.
type Comparator func(a, b Item) int

// ValidateSortFields validates a sort field list and compiles its
// comparator. A leading "-" on a field name reverses the sort order for
// that field.
func (e *Engine) ValidateSortFields(sortFields string) (Comparator, error) {
	descending := map[string]bool{}
	fields, err := e.ValidateFieldList(sortFields, false, func(name string) string {
		if strings.HasPrefix(name, "-") {
			name = name[1:]
			descending[name] = true
		}
		return name
	})
	if err != nil {
		return nil, err
	}

	order := make([]string, len(fields))
	for i, name := range fields {
		if descending[name] {
			name = "-" + name
		}
		order[i] = name
	}
	e.log.Debug("sorting order", zap.Strings("fields", order))

	return func(a, b Item) int {
		for _, field := range fields {
			c := compareValues(e.fieldValue(a, field), e.fieldValue(b, field))
			if c == 0 {
				continue
			}
			if descending[field] {
				return -c
			}
			return c
		}
		return 0
	}, nil
}

func (e *Engine) fieldValue(item Item, field string) any {
	var v any
	var ok bool
	if def, known := e.fields.Lookup(field); known {
		v, ok = def.value(item)
	} else {
		v, ok = item.Field(field)
	}
	if !ok {
		return nil
	}
	return v
}

// Kind ranks give mixed-type comparisons a consistent strict weak ordering:
// within a rank values compare naturally, across ranks the rank decides.
func valueRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

func compareValues(a, b any) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		av, bv := a.(bool), b.(bool)
		switch {
		case av == bv:
			return 0
		case bv:
			return -1
		default:
			return 1
		}
	case 2:
		af, _ := toFloat(a)
		bf, _ := toFloat(b)
		return cmp.Compare(af, bf)
	case 3:
		return strings.Compare(a.(string), b.(string))
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}
