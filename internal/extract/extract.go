// Package extract derives the field set of a target type from its designated
// constructor and its setter methods.
package extract

import (
	"fmt"
	"strings"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

// Result is the extracted field set for one target type.
type Result struct {
	CtorName     string // "" when no designated constructor exists
	TargetIsPtr  bool   // constructor returns *T; also true without a constructor
	CtorFields   []*model.FieldModel
	SetterFields []*model.FieldModel
}

// Fields extracts the ordered constructor-field list and the setter-field
// list for t. Anomalous members are skipped or renamed with a diagnostic;
// extraction itself never fails.
func Fields(t *source.Target, opts config.Options, rep *diag.Reporter) Result {
	res := Result{TargetIsPtr: true}

	ctorName := opts.Constructor
	if ctorName == "" {
		ctorName = "New" + t.Name
	}

	if ctor, ok := findFunc(t.Funcs, ctorName); ok {
		switch {
		case ctor.Unresolved:
			rep.Warnf(t.Name, "constructor %s has a parameter or result shape the generator cannot model; building via field assignment instead", ctorName)
		case len(ctor.Results) != 1:
			// A (T, error) factory cannot be re-invoked from Build without
			// somewhere for the error to go.
			rep.Warnf(t.Name, "constructor %s returns %d values (want exactly the target type); building via field assignment instead", ctorName, len(ctor.Results))
		default:
			res.CtorName = ctorName
			_, res.TargetIsPtr = ctor.Results[0].(typeref.Pointer)
			for i, p := range ctor.Params {
				name := p.Name
				if name == "" {
					name = fmt.Sprintf("arg%d", i)
				}
				res.CtorFields = append(res.CtorFields, &model.FieldModel{
					Name:       source.Decap(name),
					SourceName: name,
					Type:       p.Type,
					NonNull:    typeref.NonNull(p.Type),
					Provenance: model.FromConstructor,
				})
			}
		}
	}

	res.SetterFields = setterFields(t, res.CtorFields, rep)

	for _, f := range append(append([]*model.FieldModel{}, res.CtorFields...), res.SetterFields...) {
		f.Getter = getterFor(t, f)
	}
	return res
}

// setterFields walks the eligible setter-shaped methods in declaration
// order, resolving storage-name conflicts by the documented renaming rule.
func setterFields(t *source.Target, ctorFields []*model.FieldModel, rep *diag.Reporter) []*model.FieldModel {
	fromCtor := make(map[string]struct{}, len(ctorFields))
	for _, f := range ctorFields {
		fromCtor[f.Name] = struct{}{}
	}

	byName := make(map[string]*model.FieldModel)
	var out []*model.FieldModel

	for _, m := range t.Methods {
		estimated, ok := setterField(m.Name)
		if !ok {
			continue
		}
		if m.Unresolved {
			rep.Warnf(t.Name, "setter %s uses a parameter shape the generator cannot model; skipping", m.Name)
			continue
		}
		if len(m.Params) != 1 || len(m.Results) != 0 {
			rep.Warnf(t.Name, "method %s is not setter-shaped (want exactly one parameter and no results); skipping", m.Name)
			continue
		}

		name := source.Decap(estimated)
		if _, taken := fromCtor[name]; taken {
			// Constructor wins over a setter for the same logical field.
			continue
		}

		fieldType := m.Params[0].Type
		if prev, seen := byName[name]; seen {
			if typeref.Equal(prev.Type, fieldType) {
				continue // same field, rediscovered
			}
			renamed := name + typeref.SimpleName(fieldType)
			rep.Warnf(t.Name,
				"setters produce conflicting field %q with types %s and %s; renaming the second to %q (duplicate setters with divergent types, or suppress one via the directive)",
				name, prev.Type.Key(), fieldType.Key(), renamed)
			name = renamed
		}

		f := &model.FieldModel{
			Name:       name,
			SourceName: estimated,
			Type:       fieldType,
			NonNull:    typeref.NonNull(fieldType),
			Provenance: model.FromSetter,
		}
		byName[f.Name] = f
		out = append(out, f)
	}
	return out
}

// setterField maps a method name to the estimated field name, or reports
// that the method is not setter-shaped at all.
func setterField(methodName string) (string, bool) {
	rest, ok := strings.CutPrefix(methodName, "Set")
	if !ok || rest == "" {
		return "", false
	}
	// SetX with a lowercase continuation (e.g. Settings) is a regular method.
	if rest[0] >= 'a' && rest[0] <= 'z' {
		return "", false
	}
	return rest, true
}

// getterFor links a field to a zero-parameter accessor named after it.
// Absence is not an error; the copy helper simply cannot seed that field.
func getterFor(t *source.Target, f *model.FieldModel) string {
	want := source.Cap(f.SourceName)
	for _, name := range []string{want, "Get" + want} {
		for _, m := range t.Methods {
			if m.Name == name && len(m.Params) == 0 && len(m.Results) == 1 && typeref.Equal(m.Results[0], f.Type) {
				return name
			}
		}
	}
	return ""
}

func findFunc(funcs []source.Func, name string) (source.Func, bool) {
	for _, f := range funcs {
		if f.Name == name {
			return f, true
		}
	}
	return source.Func{}, false
}
