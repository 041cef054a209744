package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/typeref"
)

// GoType renders a TypeRef as jennifer code. Qualified names go through
// jen.Qual so the rendered file imports exactly what it references; names in
// the file's own package render unqualified automatically.
func GoType(t typeref.TypeRef) *jen.Statement {
	switch v := t.(type) {
	case typeref.Named:
		if typeref.IsEmptyStruct(v) {
			return jen.Struct()
		}
		if v.PkgPath == "" {
			return jen.Id(v.Name)
		}
		return jen.Qual(v.PkgPath, v.Name)
	case typeref.Generic:
		args := make([]jen.Code, len(v.Args))
		for i, a := range v.Args {
			args[i] = GoType(a)
		}
		if len(args) == 0 {
			// Raw generic: render the outer name alone. Consumers are
			// required to have checked arity long before rendering.
			return GoType(v.Outer)
		}
		return GoType(v.Outer).Index(args...)
	case typeref.Slice:
		return jen.Index().Add(GoType(v.Elem))
	case typeref.Array:
		return jen.Index(jen.Lit(v.Len)).Add(GoType(v.Elem))
	case typeref.Map:
		return jen.Map(GoType(v.K)).Add(GoType(v.V))
	case typeref.Pointer:
		return jen.Op("*").Add(GoType(v.Elem))
	case typeref.Primitive:
		return jen.Id(v.Name)
	case typeref.TypeVar:
		return jen.Id(v.Name)
	default:
		return jen.Id("any")
	}
}
