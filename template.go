package pyrosimple

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"text/template"

	"github.com/flosch/pongo2/v6"
	"github.com/mattn/go-runewidth"
)

// TemplateEngine tags which expansion strategy renders a [Template].
type TemplateEngine string

const (
	// EngineAuto selects the engine by content: a "{{" prefix picks
	// [EngineGo], a "{#" prefix picks [EngineDjango], anything else is
	// printf-style interpolation.
	EngineAuto TemplateEngine = ""
	// EngineGo is text/template with the full helper namespace.
	EngineGo TemplateEngine = "go"
	// EngineDjango is the self-contained Django/Jinja-style renderer; it
	// receives the item under "d" and no helper namespace.
	EngineDjango TemplateEngine = "django"
	// EngineInterp is printf-style interpolation of "%(field.fmt)s"
	// directives against a [Mapping].
	EngineInterp TemplateEngine = "interp"
)

// Template is an immutable output format specification: template source
// plus an optional explicit engine tag.
type Template struct {
	Source string
	Engine TemplateEngine
}

// NewTemplate wraps src with engine auto-detection.
func NewTemplate(src string) Template {
	return Template{Source: src}
}

func (t Template) kind() TemplateEngine {
	if t.Engine != EngineAuto {
		return t.Engine
	}
	switch {
	case strings.HasPrefix(t.Source, "{{"):
		return EngineGo
	case strings.HasPrefix(t.Source, "{#"):
		return EngineDjango
	default:
		return EngineInterp
	}
}

const fileTemplatePrefix = "file:"

// Preparse resolves template sources referencing external template files.
// A "file:NAME" source is read from the configured template directory;
// anything else passes through. I/O failures surface as
// [ErrTemplateSource], an unknown explicit engine tag as
// [ErrEngineUnavailable].
func (e *Engine) Preparse(src string) (Template, error) {
	t := NewTemplate(src)
	if name, ok := strings.CutPrefix(src, fileTemplatePrefix); ok {
		if e.tmplDir == "" {
			return Template{}, fmt.Errorf("%w: no template directory configured for %q", ErrTemplateSource, name)
		}
		data, err := os.ReadFile(filepath.Join(e.tmplDir, name))
		if err != nil {
			return Template{}, fmt.Errorf("%w: %v", ErrTemplateSource, err)
		}
		t = NewTemplate(string(data))
	}
	if err := t.check(); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (t Template) check() error {
	switch t.kind() {
	case EngineGo, EngineDjango, EngineInterp:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrEngineUnavailable, t.Engine)
	}
}

// FormatItem expands t for one item. A nil item renders the header line:
// field references produce upper-cased column labels, and no formatter is
// applied to them.
func (e *Engine) FormatItem(t Template, item Item, defaults map[string]any) (string, error) {
	switch t.kind() {
	case EngineGo:
		vars := map[string]any{"headers": item == nil}
		if item != nil {
			vars["d"] = item
		} else {
			hdr := map[string]any{}
			for _, name := range e.fields.Names() {
				hdr[name] = strings.ToUpper(name)
			}
			vars["d"] = hdr
			// Keep header cells as wide as a formatted value would be.
			for name, entry := range catalog {
				vars[name] = headerJustify(entry.fn)
			}
		}
		return e.ExpandTemplate(t, vars)
	case EngineDjango:
		return renderDjango(t, item)
	case EngineInterp:
		return e.interpolate(t.Source, item, defaults)
	default:
		return "", fmt.Errorf("%w: %q", ErrEngineUnavailable, t.Engine)
	}
}

// headerJustify wraps a catalog formatter into a header-mode stand-in that
// right-justifies its argument to the width of the formatter's zero-value
// output.
func headerJustify(fn FormatFunc) func(any) string {
	return func(v any) string {
		zero, err := fn(0)
		w := len("N/A")
		if err == nil {
			w = runewidth.StringWidth(fmt.Sprint(zero))
		}
		return runewidth.FillLeft(fmt.Sprint(v), w)
	}
}

// ExpandTemplate renders a [EngineGo] template with the full namespace:
// every catalog formatter both under the grouped helper "h" and directly by
// short name, custom helpers under "c", and the caller's vars, which take
// precedence over all of the above on name collision.
//
// Any expansion failure is re-raised as one [ExpandError] carrying the
// annotated template source.
func (e *Engine) ExpandTemplate(t Template, vars map[string]any) (string, error) {
	formatters := templateFormatters()
	funcs := template.FuncMap{}
	ns := map[string]any{}
	for name, v := range formatters {
		ns[name] = v
		funcs[name] = v
	}
	ns["h"] = formatters
	ns["c"] = e.helpers
	for name, v := range e.helpers {
		if reflect.ValueOf(v).Kind() == reflect.Func {
			funcs[name] = v
		}
	}
	for name, v := range vars {
		ns[name] = v
		if reflect.ValueOf(v).Kind() == reflect.Func {
			funcs[name] = v
		}
	}

	tmpl, err := template.New("output").Funcs(funcs).Option("missingkey=error").Parse(t.Source)
	if err != nil {
		return "", expandError(err, t.Source)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ns); err != nil {
		return "", expandError(err, t.Source)
	}
	return buf.String(), nil
}

func renderDjango(t Template, item Item) (string, error) {
	tpl, err := pongo2.FromString(t.Source)
	if err != nil {
		return "", expandError(err, t.Source)
	}
	out, err := tpl.Execute(pongo2.Context{"d": item})
	if err != nil {
		return "", expandError(err, t.Source)
	}
	return out, nil
}

func expandError(err error, source string) error {
	return &ExpandError{
		Kind:   fmt.Sprintf("%T", err),
		Source: source,
		Err:    err,
	}
}

// interpDirective matches one "%(field.fmt)s"-style interpolation directive or
// an escaped percent sign.
var interpDirective = regexp.MustCompile(`%\(([._a-zA-Z0-9]+)\)([-#+0 ]?[0-9]*(?:\.[0-9]+)?[a-zA-Z])|%%`)

// headerNumericDirective matches numeric/type-specific conversion verbs so
// header rendering can rewrite them to plain string conversions.
var headerNumericDirective = regexp.MustCompile(`(\([_.a-zA-Z0-9]+\)[-#+0 ]?[0-9]*?)[.0-9]*[diouxXeEfFgG]`)

func (e *Engine) interpolate(src string, item Item, defaults map[string]any) (string, error) {
	if item == nil {
		// Headers are labels; numeric verbs would fail on them.
		src = headerNumericDirective.ReplaceAllString(src, "${1}s")
	}
	m := e.NewMapping(item, defaults)
	var firstErr error
	out := interpDirective.ReplaceAllStringFunc(src, func(match string) string {
		if match == "%%" {
			return "%"
		}
		groups := interpDirective.FindStringSubmatch(match)
		spec, verb := groups[1], groups[2]
		val, err := m.Resolve(spec)
		if err == nil {
			var s string
			if s, err = applyVerb(verb, val); err == nil {
				return s
			}
			err = &FormatError{Field: spec, Value: val, Err: err}
		}
		if firstErr == nil {
			firstErr = err
		}
		return match
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// applyVerb formats val with one printf conversion, coercing the value to
// the verb's type so the output never carries fmt's inline complaints.
func applyVerb(verb string, val any) (string, error) {
	letter := verb[len(verb)-1]
	flags := verb[:len(verb)-1]
	switch letter {
	case 'd', 'i', 'u':
		n, err := toInt(val)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%"+flags+"d", n), nil
	case 'o', 'x', 'X':
		n, err := toInt(val)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%"+flags+string(letter), n), nil
	case 'e', 'E', 'f', 'g', 'G':
		f, err := toFloat(val)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%"+flags+string(letter), f), nil
	case 'F':
		f, err := toFloat(val)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%"+flags+"f", f), nil
	case 's', 'v':
		return fmt.Sprintf("%"+flags+"s", fmt.Sprint(val)), nil
	default:
		return "", fmt.Errorf("unsupported conversion %%%s", verb)
	}
}
