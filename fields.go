package pyrosimple

import (
	"sort"
	"sync"
)

// Item is anything offering named-property lookup with a distinguishable
// not-found signal. Download items from a client daemon, plain maps and
// test stubs all satisfy it.
type Item interface {
	// Field returns the named property, or false when the item has no
	// such property.
	Field(name string) (any, bool)
}

// ItemMap is a map-backed [Item], the usual shape for items decoded from a
// daemon response.
type ItemMap map[string]any

// Field implements [Item].
func (m ItemMap) Field(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// FieldDefinition describes one named item field: an optional intrinsic
// formatter applied before any chained format specs, and an optional
// resolver overriding the plain property lookup.
type FieldDefinition struct {
	Name      string
	Doc       string
	Formatter FormatFunc
	Resolve   func(Item) (any, bool)
}

func (d FieldDefinition) value(item Item) (any, bool) {
	if d.Resolve != nil {
		return d.Resolve(item)
	}
	return item.Field(d.Name)
}

// RegisterFunc is the dynamic field registration hook. It is invoked once
// when a field name is otherwise unknown; returning true makes the name
// resolvable for the remainder of the process.
type RegisterFunc func(name string) bool

// Registry is the process-wide field registry. It is append-only: fields
// may be added during a run, never removed, so concurrent lookups only ever
// observe addition.
type Registry struct {
	mu       sync.RWMutex
	fields   map[string]FieldDefinition
	register RegisterFunc
}

// NewRegistry returns an empty registry. Most callers want
// [DefaultRegistry] instead.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]FieldDefinition)}
}

// Add registers a field definition, replacing any previous definition of
// the same name.
func (r *Registry) Add(def FieldDefinition) {
	r.mu.Lock()
	r.fields[def.Name] = def
	r.mu.Unlock()
}

// SetRegisterHook installs the dynamic registration hook tried on lookup
// misses.
func (r *Registry) SetRegisterHook(fn RegisterFunc) {
	r.mu.Lock()
	r.register = fn
	r.mu.Unlock()
}

// get returns the registered definition for name without trying the
// dynamic registration hook.
func (r *Registry) get(name string) (FieldDefinition, bool) {
	r.mu.RLock()
	def, ok := r.fields[name]
	r.mu.RUnlock()
	return def, ok
}

// Lookup returns the definition for name. On a miss the dynamic
// registration hook is tried once; when the hook accepts the name but adds
// no definition itself, a plain property-lookup definition is recorded.
func (r *Registry) Lookup(name string) (FieldDefinition, bool) {
	r.mu.RLock()
	def, ok := r.fields[name]
	hook := r.register
	r.mu.RUnlock()
	if ok {
		return def, true
	}
	if hook == nil || !hook(name) {
		return FieldDefinition{}, false
	}
	r.mu.Lock()
	def, ok = r.fields[name]
	if !ok {
		def = FieldDefinition{Name: name}
		r.fields[name] = def
	}
	r.mu.Unlock()
	return def, true
}

// Names returns all registered field names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry seeded with the standard download item
// fields.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []FieldDefinition{
		{Name: "hash", Doc: "info hash"},
		{Name: "name", Doc: "name (file or root directory)"},
		{Name: "size", Doc: "data size", Formatter: fmtSz},
		{Name: "done", Doc: "completion in percent"},
		{Name: "ratio", Doc: "normalized ratio"},
		{Name: "up", Doc: "upload rate", Formatter: fmtSz},
		{Name: "down", Doc: "download rate", Formatter: fmtSz},
		{Name: "uploaded", Doc: "amount of uploaded data", Formatter: fmtSz},
		{Name: "xfer", Doc: "transfer rate", Formatter: fmtSz},
		{Name: "alias", Doc: "tracker alias or domain"},
		{Name: "tracker", Doc: "first in the list of announce URLs"},
		{Name: "message", Doc: "current tracker message"},
		{Name: "path", Doc: "path to download data"},
		{Name: "realpath", Doc: "real path to download data"},
		{Name: "directory", Doc: "directory containing download data"},
		{Name: "metafile", Doc: "path to the metafile"},
		{Name: "completed", Doc: "time download was finished", Formatter: fmtIso},
		{Name: "loaded", Doc: "time metafile was loaded", Formatter: fmtIso},
		{Name: "started", Doc: "time download was started", Formatter: fmtIso},
		{Name: "stopped", Doc: "time download was stopped", Formatter: fmtIso},
		{Name: "active", Doc: "last time a peer was connected", Formatter: fmtIso},
		{Name: "seedtime", Doc: "total seeding time after completion", Formatter: fmtDuration},
		{Name: "leechtime", Doc: "time taken from start to completion", Formatter: fmtDuration},
		{Name: "prio", Doc: "priority (0=off, 1=low, 2=normal, 3=high)"},
		{Name: "tagged", Doc: "has certain tags?"},
		{Name: "views", Doc: "views this item is attached to"},
		{Name: "is_complete", Doc: "download complete?"},
		{Name: "is_open", Doc: "download open?"},
		{Name: "is_active", Doc: "download active?"},
		{Name: "is_ignored", Doc: "ignore commands?"},
		{Name: "is_multi_file", Doc: "single- or multi-file download?"},
		{Name: "is_private", Doc: "private flag set (no DHT/PEX)?"},
	} {
		r.Add(def)
	}
	return r
}
