// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains Registries: the run-scoped lookup tables the Definition Parser
// populates and the Expander consults while walking a source file.
package expander

import (
	"macten/declmacro"
	"macten/procmacro"
)

// Registries owns every macro name this run knows about, split by kind.
type Registries struct {
	Declarative map[string]*declmacro.Template
	Procedural  map[string]*procmacro.Profile
}

// NewRegistries returns an empty Registries ready to be populated.
func NewRegistries() *Registries {
	return &Registries{
		Declarative: map[string]*declmacro.Template{},
		Procedural:  map[string]*procmacro.Profile{},
	}
}

// HasMacro reports whether name is known, declarative or procedural.
func (r *Registries) HasMacro(name string) bool {
	if _, ok := r.Declarative[name]; ok {
		return true
	}
	_, ok := r.Procedural[name]
	return ok
}

// AddDeclarative registers a declarative template under its own name.
func (r *Registries) AddDeclarative(t *declmacro.Template) {
	r.Declarative[t.Name] = t
}

// AddProcedural registers a procedural profile under its own name.
func (r *Registries) AddProcedural(p *procmacro.Profile) {
	r.Procedural[p.Name] = p
}
