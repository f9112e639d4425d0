// Package generator emits target binding source text from a fully-concrete
// Module. The pybind11 backend is the only implementation; the Backend
// contract keeps a second target runtime substitutable without touching the
// parser or the instantiator.
package generator

import "idlwrap/pkg/ast"

// Options are the generation inputs besides the module tree itself.
type Options struct {
	// ModuleName is the name the generated extension module registers under.
	ModuleName string
	// UseBoost selects the boost smart-pointer calling convention instead of
	// the standard library one.
	UseBoost bool
	// TopNamespaces is an allow-list of top-level namespaces to expose.
	// Empty exposes everything.
	TopNamespaces []string
	// IgnoreClasses names classes to omit from generation, e.g. those bound
	// by hand elsewhere.
	IgnoreClasses []string
	// Template is the output template text carrying the placeholder tokens.
	Template string
}

// Backend generates binding source for one target runtime. Generation is
// deterministic: two runs over identical inputs yield byte-identical output.
type Backend interface {
	Generate(module *ast.Module, opts Options) (string, error)
}

// GenerationError reports a defect the generator cannot work around: a
// template missing a required placeholder, a generic declaration that
// survived instantiation, an unmapped operator token, or a base class that
// is ignored or missing.
type GenerationError struct {
	Detail string
}

func (e *GenerationError) Error() string {
	return "generation error: " + e.Detail
}
