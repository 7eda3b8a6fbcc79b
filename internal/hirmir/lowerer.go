// Package hirmir lowers an analyzed HIR module into MIR, including
// type compilation and the concrete-specialization registry for
// polymorphic list/map/function shapes.
package hirmir

import (
	"github.com/lucid-lang/lucidc/internal/config"
	"github.com/lucid-lang/lucidc/internal/mir"
	"github.com/lucid-lang/lucidc/internal/types"
)

// Lowerer holds the state threaded through one module's HIR→MIR
// lowering: the prelude-name configuration, the type context used to
// canonicalize before lowering a type, and the growing table of
// concrete list/map/function specializations discovered along the
// way.
type Lowerer struct {
	Config *config.CompileConfiguration
	Ctx    *types.Context

	specializations map[string]*mir.RecordDefinition
	order           []string
}

// New builds a Lowerer for a single module.
func New(cfg *config.CompileConfiguration, ctx *types.Context) *Lowerer {
	return &Lowerer{Config: cfg, Ctx: ctx, specializations: map[string]*mir.RecordDefinition{}}
}

// registerSpecialization records a concrete record definition the
// first time its name is seen; later registrations with the same name
// are no-ops, since two equal types always derive the same name.
func (l *Lowerer) registerSpecialization(def *mir.RecordDefinition) {
	if _, ok := l.specializations[def.Name]; ok {
		return
	}
	l.specializations[def.Name] = def
	l.order = append(l.order, def.Name)
}

// Specializations returns every concrete record registered so far, in
// first-discovered order (deterministic given a deterministic walk).
func (l *Lowerer) Specializations() []*mir.RecordDefinition {
	out := make([]*mir.RecordDefinition, len(l.order))
	for i, name := range l.order {
		out[i] = l.specializations[name]
	}
	return out
}
