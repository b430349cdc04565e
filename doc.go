// Package pyrosimple formats, templates and sorts download items from a
// torrent client daemon.
//
// The package resolves field names against an extensible [Registry], applies
// chains of named formatters from an immutable catalog, expands output
// templates through one of three engines, and compiles multi-field sort
// comparators. The central object is [Engine], built once via [New] and safe
// for concurrent use.
//
// # Format Specs
//
// A format spec is a dotted string naming a field plus zero or more chained
// formatter names:
//
//	size            raw value through the field's intrinsic formatter
//	size.raw        intrinsic formatter switched off
//	path.pathbase   chained catalog formatter
//	loaded.raw.delta.strip
//
// Chained formatters apply left to right, after the intrinsic formatter
// unless the reserved "raw" spec leads the chain. [FormatterHelp] lists the
// catalog. Size, timestamp and duration formatters degrade to an "N/A"
// placeholder of stable width on invalid input, so column output stays
// aligned.
//
// A [Mapping] binds one item (or nil) plus per-call defaults and resolves
// specs via [Mapping.Resolve]. With a nil item it renders header labels: the
// upper-cased field name, or the literal "%" for the reserved "pc" key.
//
// # Templates
//
// [Engine.FormatItem] dispatches on the template:
//
//   - "{{" prefix (or [EngineGo] tag) — Go text/template, with every
//     catalog formatter available as a function and under the helper map
//     "h", custom helpers under "c", and the item under "d".
//   - "{#" prefix (or [EngineDjango] tag) — a Django/Jinja-style template,
//     rendered self-contained with the item under "d".
//   - anything else — printf-style interpolation of "%(field.fmt)s"
//     directives.
//
// [Engine.Preparse] resolves "file:NAME" sources against the configured
// template directory.
//
// # Field Lists and Sorting
//
// [Engine.ValidateFieldList] checks comma-/space-separated field lists,
// optionally with chained format specs. [Engine.ValidateSortFields] compiles
// a [Comparator] from a field list where a leading "-" marks a field as
// descending:
//
//	cmp, err := eng.ValidateSortFields("-size name")
//	slices.SortStableFunc(items, cmp)
//
// # Bulk Output
//
// [Engine.Write] renders a field list over many items in one of several
// formats (Table, CSV, TSV, JSON, JSONL, YAML, List, ENV, Markdown, Plain,
// or a parameterized template= format); [Engine.WriteIter] and
// [Engine.WriteChan] stream. A formatting failure on one item is logged and
// skips that item only.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnknownField], [ErrUnknownFormatSpec], [ErrMissingField] —
//     validation and resolution failures, surfaced immediately
//   - [ErrFormatting] — a formatter chain failed; carried by [FormatError]
//     with field name and raw value
//   - [ErrTemplateExpand] — a template engine failed; carried by
//     [ExpandError] with the line-annotated source
//   - [ErrTemplateSource], [ErrEngineUnavailable] — template loading
//   - [ErrUnsupportedFormat] — unknown bulk output format
package pyrosimple
