package pyrosimple

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrUnknownField means a field name is not in the registry, not covered
	// by the defaults mapping, and dynamic registration declined it.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownFormatSpec means a chained formatter name is not in the catalog.
	ErrUnknownFormatSpec = errors.New("unknown format specification")

	// ErrMissingField means the property is absent on the backing item and
	// has no default.
	ErrMissingField = errors.New("missing field")

	// ErrFormatting wraps a failure inside a formatter chain; see [FormatError].
	ErrFormatting = errors.New("formatting failed")

	// ErrTemplateExpand wraps a template engine failure; see [ExpandError].
	ErrTemplateExpand = errors.New("template expansion failed")

	// ErrTemplateSource means an external template source could not be read.
	ErrTemplateSource = errors.New("cannot read template")

	// ErrEngineUnavailable means a template carries an engine tag this
	// build does not provide a renderer for.
	ErrEngineUnavailable = errors.New("template engine unavailable")

	// ErrUnsupportedFormat means an unknown output format string.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// FormatError reports a failure while applying a formatter chain to one
// field value. It carries the field name and the raw value so batch callers
// can log a single diagnostic per item and continue.
type FormatError struct {
	Field string
	Value any
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("while formatting %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports true for [ErrFormatting] so errors.Is works without errors.As.
func (e *FormatError) Is(target error) bool { return target == ErrFormatting }

// ExpandError reports a template engine failure. Source holds the template
// text; the message annotates it with line numbers and, when the underlying
// error reports a column, a caret-style marker.
type ExpandError struct {
	Kind   string
	Source string
	Err    error
}

func (e *ExpandError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %v in template:\n", e.Kind, e.Err)
	if col, ok := errorColumn(e.Err); ok {
		sb.WriteString(strings.Repeat(" ", col+4) + "vVv\n")
	}
	for i, line := range strings.Split(e.Source, "\n") {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, line)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e *ExpandError) Unwrap() error { return e.Err }

func (e *ExpandError) Is(target error) bool { return target == ErrTemplateExpand }

// Template engines report positions in message text only. text/template
// execution errors carry "template: NAME:LINE:COL:", pongo2 reports
// "Line X Col Y", and plain prose errors may say "column N".
var errorPositions = []*regexp.Regexp{
	regexp.MustCompile(`^template: [^:]*:[0-9]+:([0-9]+):`),
	regexp.MustCompile(`\bCol ([0-9]+)\b`),
	regexp.MustCompile(`\bcolumn ([0-9]+)\b`),
}

// errorColumn extracts the column number an engine error reports, if any.
func errorColumn(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	msg := err.Error()
	for _, re := range errorPositions {
		if m := re.FindStringSubmatch(msg); m != nil {
			col, convErr := strconv.Atoi(m[1])
			if convErr != nil {
				continue
			}
			return col, true
		}
	}
	return 0, false
}
