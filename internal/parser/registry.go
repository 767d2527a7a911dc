package parser

import "sync"

// Registry manages a collection of language parsers.
type Registry struct {
	mu       sync.RWMutex
	parsers  map[Language]Parser
	extIndex map[string]Parser
	order    []Language
}

// NewRegistry creates a new parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:  make(map[Language]Parser),
		extIndex: make(map[string]Parser),
		order:    make([]Language, 0),
	}
}

// Register adds a parser to the registry, indexing it by language and
// file extensions. Re-registering a language replaces the previous parser.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lang := p.Language()
	if _, exists := r.parsers[lang]; !exists {
		r.order = append(r.order, lang)
	}
	r.parsers[lang] = p
	for _, ext := range p.Extensions() {
		r.extIndex[ext] = p
	}
}

// Get retrieves a parser by language.
func (r *Registry) Get(lang Language) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[lang]
	return p, ok
}

// GetByExtension retrieves a parser by file extension (e.g. ".py").
func (r *Registry) GetByExtension(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.extIndex[ext]
	return p, ok
}

// Languages returns the registered languages in registration order.
func (r *Registry) Languages() []Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Language, len(r.order))
	copy(out, r.order)
	return out
}

// SupportedExtensions returns all file extensions that have a registered
// parser, in registration order.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var exts []string
	for _, lang := range r.order {
		exts = append(exts, r.parsers[lang].Extensions()...)
	}
	return exts
}
