package generate

import (
	"fmt"

	"github.com/bldgen/bldgen/internal/model"
)

// Generator contributes methods for a single field. AppliesTo must decline
// any shape the generator cannot handle safely; Generate is only called after
// AppliesTo returned true and must produce well-formed methods.
type Generator interface {
	Name() string
	AppliesTo(f *model.FieldModel, c *Context) bool
	Generate(f *model.FieldModel, c *Context) []*model.MethodModel
}

// chain is the statically registered list of independent generators. Every
// applicable one runs for every field; a field may receive a direct setter, a
// format helper, and a supplier at the same time.
func chain() []Generator {
	return []Generator{
		directSetter{},
		formatHelper{},
		varargsHelper{},
		addHelper{},
		unwrapHelper{},
		supplierSetter{},
		arrayHelper{},
	}
}

// consumerChain is the mutually exclusive family of value-accepting consumer
// generators, highest priority first. Only the first applicable one
// contributes.
func consumerChain() []Generator {
	return []Generator{
		builderConsumer{},
		fieldConsumer{},
		listConsumer{},
		setConsumer{},
		mapConsumer{},
		stringBuilderConsumer{},
	}
}

// runChains attaches every method the chains contribute for f. An attach
// failure indicates a generator bug and aborts the current type.
func runChains(f *model.FieldModel, c *Context) error {
	for _, g := range chain() {
		if !g.AppliesTo(f, c) {
			continue
		}
		if err := f.Attach(g.Generate(f, c)...); err != nil {
			return fmt.Errorf("generator %s: %w", g.Name(), err)
		}
	}
	for _, g := range consumerChain() {
		if !g.AppliesTo(f, c) {
			continue
		}
		if err := f.Attach(g.Generate(f, c)...); err != nil {
			return fmt.Errorf("generator %s: %w", g.Name(), err)
		}
		break
	}
	return nil
}
