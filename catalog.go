package pyrosimple

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatFunc is a single catalog transform applied to a raw field value.
// Transforms that render sizes, timestamps and durations never fail: invalid
// input degrades to an "N/A" placeholder right-justified to the width of the
// transform's zero-value output, so column-aligned output keeps stable widths.
type FormatFunc func(v any) (any, error)

// RawSpec is the reserved pseudo-spec that switches off a field's intrinsic
// formatter. It is valid in format specs and field lists but is not a
// catalog member.
const RawSpec = "raw"

type catalogEntry struct {
	fn  FormatFunc
	doc string
	// tmpl is the value exposed to template namespaces; defaults to fn.
	// The subst entry overrides it with the two-argument constructor.
	tmpl any
}

// The catalog is immutable after process start. Chain formatters in format
// specs are resolved against it by short name.
var catalog = map[string]catalogEntry{
	"sz":       {fn: fmtSz, doc: "Format a byte sized value."},
	"iso":      {fn: fmtIso, doc: "Format a UNIX timestamp to an ISO datetime string."},
	"duration": {fn: fmtDuration, doc: "Format a duration value in seconds to a readable form."},
	"delta":    {fn: fmtDelta, doc: "Format a UNIX timestamp to a delta (relative to now)."},
	"pc":       {fn: fmtPc, doc: "Scale a ratio value to percent."},
	"strip":    {fn: fmtStrip, doc: "Strip leading and trailing whitespace."},
	"subst":    {fn: fmtSubstChain, doc: "Replace regex with string.", tmpl: Subst},
	"mtime":    {fn: fmtMtime, doc: "Modification time of a path."},
	"pathbase": {fn: fmtPathbase, doc: "Base name of a path."},
	"pathname": {fn: fmtPathname, doc: "Base name of a path, without its extension."},
	"pathext":  {fn: fmtPathext, doc: "Extension of a path (including the '.')."},
	"pathdir":  {fn: fmtPathdir, doc: "Directory containing the given path."},
	"json":     {fn: fmtJSON, doc: "JSON serialization."},
}

// Help is one catalog entry's documentation, as returned by [FormatterHelp].
type Help struct {
	Name string
	Doc  string
}

// FormatterHelp enumerates the format specifiers and their documentation,
// the reserved "raw" spec first, the catalog sorted by name after it.
func FormatterHelp() []Help {
	result := []Help{{Name: RawSpec, Doc: "Switch off the default field formatter."}}
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result = append(result, Help{Name: name, Doc: catalog[name].doc})
	}
	return result
}

// chainFormatter resolves a catalog member for use in a formatter chain.
func chainFormatter(name string) (FormatFunc, bool) {
	entry, ok := catalog[name]
	if !ok {
		return nil, false
	}
	return entry.fn, true
}

// templateFormatters returns the namespace values exposed to templates.
func templateFormatters() map[string]any {
	out := make(map[string]any, len(catalog))
	for name, entry := range catalog {
		if entry.tmpl != nil {
			out[name] = entry.tmpl
		} else {
			out[name] = entry.fn
		}
	}
	return out
}

const (
	sizeWidth     = 10
	durationWidth = 10
	deltaWidth    = 15
	isoLayout     = "2006-01-02 15:04:05"
)

// naRJust right-justifies "N/A" to the display width of the given
// zero-value rendering.
func naRJust(zero string) string {
	return runewidth.FillLeft("N/A", runewidth.StringWidth(zero))
}

func humanSize(b float64) string {
	return runewidth.FillLeft(humanize.IBytes(uint64(b)), sizeWidth)
}

func isoDatetime(secs float64) string {
	return time.Unix(int64(secs), 0).UTC().Format(isoLayout)
}

func humanDuration(secs float64) string {
	sign := ""
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	total := int64(secs)
	parts := []struct {
		unit string
		div  int64
	}{
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}
	var out []string
	for _, p := range parts {
		if n := total / p.div; n > 0 || (p.unit == "s" && len(out) == 0) {
			out = append(out, strconv.FormatInt(n, 10)+p.unit)
			total %= p.div
		}
		if len(out) == 2 {
			break
		}
	}
	return runewidth.FillLeft(sign+strings.Join(out, " "), durationWidth)
}

func humanDelta(ts float64) string {
	return runewidth.FillLeft(humanize.Time(time.Unix(int64(ts), 0)), deltaWidth)
}

func fmtSz(v any) (any, error) {
	f, err := toFloat(v)
	if err != nil || f < 0 {
		return naRJust(humanSize(0)), nil
	}
	return humanSize(f), nil
}

func fmtIso(v any) (any, error) {
	f, err := toFloat(v)
	if err != nil {
		return naRJust(isoDatetime(0)), nil
	}
	return isoDatetime(f), nil
}

func fmtDuration(v any) (any, error) {
	f, err := toFloat(v)
	if err != nil {
		return naRJust(humanDuration(0)), nil
	}
	return humanDuration(f), nil
}

func fmtDelta(v any) (any, error) {
	f, err := toFloat(v)
	if err != nil {
		return naRJust(humanDelta(0)), nil
	}
	return humanDelta(f), nil
}

func fmtPc(v any) (any, error) {
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	return math.Round(f*10000) / 100, nil
}

func fmtStrip(v any) (any, error) {
	return strings.TrimSpace(fmt.Sprint(v)), nil
}

// Subst returns a transform substituting every match of pattern with repl.
// Empty input passes through unchanged. Templates call this constructor
// directly; as a plain chain spec, subst has no arguments to work with.
func Subst(pattern, repl string) FormatFunc {
	re := regexp.MustCompile(pattern)
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		if s == "" {
			return v, nil
		}
		return re.ReplaceAllString(s, repl), nil
	}
}

func fmtSubstChain(any) (any, error) {
	return nil, fmt.Errorf("subst requires a pattern and a replacement")
}

func fmtMtime(v any) (any, error) {
	p := pathArg(v)
	if p == "" {
		return 0.0, nil
	}
	fi, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	return float64(fi.ModTime().Unix()), nil
}

func fmtPathbase(v any) (any, error) {
	p := pathArg(v)
	if p == "" {
		return "", nil
	}
	return filepath.Base(p), nil
}

func fmtPathname(v any) (any, error) {
	p := pathArg(v)
	if p == "" {
		return "", nil
	}
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func fmtPathext(v any) (any, error) {
	p := pathArg(v)
	if p == "" {
		return "", nil
	}
	return filepath.Ext(p), nil
}

func fmtPathdir(v any) (any, error) {
	p := pathArg(v)
	if p == "" || !strings.Contains(p, "/") {
		return "", nil
	}
	return filepath.Dir(p), nil
}

func fmtJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		// Non-standard value kinds in the item model fall back to their
		// string form.
		s, ok := v.(fmt.Stringer)
		if !ok {
			return nil, err
		}
		data, err = json.Marshal(s.String())
		if err != nil {
			return nil, err
		}
	}
	return string(data), nil
}

func pathArg(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// toFloat coerces numeric input of any width, plus numeric strings.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("not a number: %v (%T)", v, v)
	}
}

func toInt(v any) (int64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
