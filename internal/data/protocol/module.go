package protocol

import (
	"sort"

	"github.com/atomicstack/gametools-console/internal/data/wire"
)

// ModuleID names a module that can run on the remote target.
type ModuleID int16

const (
	ModuleCookSpy ModuleID = 1
)

type module struct {
	name string
	// packParams writes the module-specific activation parameters.
	packParams func(w *wire.Writer, params map[string]any) error
	// unpackData reads the module-specific payload of a data frame.
	unpackData func(r *wire.Reader) (map[string]any, bool)
}

var modules = map[ModuleID]module{
	ModuleCookSpy: {
		name:       "CookSpy",
		packParams: func(*wire.Writer, map[string]any) error { return nil },
		unpackData: func(r *wire.Reader) (map[string]any, bool) {
			crit, ok := r.ReadInt8()
			if !ok {
				return nil, false
			}
			return map[string]any{"CritChance": crit}, true
		},
	},
}

// String returns the module's name, or "" when unknown.
func (m ModuleID) String() string {
	return modules[m].name
}

// Known reports whether the catalog knows this module.
func (m ModuleID) Known() bool {
	_, ok := modules[m]
	return ok
}

// ModuleByName resolves a module by its name.
func ModuleByName(name string) (ModuleID, bool) {
	for id, mod := range modules {
		if mod.name == name {
			return id, true
		}
	}
	return 0, false
}

// ModuleNames lists the names of every known module, sorted.
func ModuleNames() []string {
	names := make([]string, 0, len(modules))
	for _, mod := range modules {
		names = append(names, mod.name)
	}
	sort.Strings(names)
	return names
}
