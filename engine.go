package pyrosimple

import "go.uber.org/zap"

// Engine ties the immutable formatter catalog to a field registry, custom
// template helpers and a template directory. It is safe for concurrent use;
// the only post-construction mutation it tolerates is registry append.
type Engine struct {
	fields  *Registry
	helpers map[string]any
	tmplDir string
	log     *zap.Logger
}

// Config carries the collaborators an [Engine] is built from. Every field
// is optional.
type Config struct {
	// Registry resolves field names; defaults to [DefaultRegistry].
	Registry *Registry
	// Helpers is the custom helper namespace exposed to templates under "c".
	Helpers map[string]any
	// TemplateDir is where "file:NAME" template sources are loaded from.
	TemplateDir string
	// Logger receives sort-order and per-item failure diagnostics;
	// defaults to a no-op logger.
	Logger *zap.Logger
}

// New builds an engine from cfg.
func New(cfg Config) *Engine {
	e := &Engine{
		fields:  cfg.Registry,
		helpers: cfg.Helpers,
		tmplDir: cfg.TemplateDir,
		log:     cfg.Logger,
	}
	if e.fields == nil {
		e.fields = DefaultRegistry()
	}
	if e.helpers == nil {
		e.helpers = map[string]any{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Fields returns the engine's field registry.
func (e *Engine) Fields() *Registry { return e.fields }
