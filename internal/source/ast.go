package source

import (
	"go/ast"
	"strconv"
	"strings"
	"unicode"

	"github.com/bldgen/bldgen/internal/typeref"
)

var builtinIdents = map[string]struct{}{
	"string": {}, "bool": {}, "byte": {}, "rune": {}, "int": {}, "int8": {}, "int16": {},
	"int32": {}, "int64": {}, "uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"uintptr": {}, "float32": {}, "float64": {}, "complex64": {}, "complex128": {}, "any": {},
	"comparable": {}, "error": {},
}

// scope carries what typeExprToRef needs to resolve identifiers in one file.
type scope struct {
	pkgPath    string
	imports    map[string]string // alias → import path
	typeParams map[string]struct{}
}

// typeExprToRef translates an ast type expression into a TypeRef. It returns
// false for shapes the pipeline does not model (functions, channels,
// anonymous non-empty structs); callers skip those with a diagnostic.
func typeExprToRef(expr ast.Expr, sc scope) (typeref.TypeRef, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		if _, ok := builtinIdents[t.Name]; ok {
			return typeref.Primitive{Name: t.Name}, true
		}
		if _, ok := sc.typeParams[t.Name]; ok {
			return typeref.TypeVar{Name: t.Name}, true
		}
		return typeref.Named{PkgPath: sc.pkgPath, Name: t.Name}, true

	case *ast.SelectorExpr:
		pkgIdent, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, false
		}
		path, ok := sc.imports[pkgIdent.Name]
		if !ok {
			return nil, false
		}
		return typeref.Named{PkgPath: path, Name: t.Sel.Name}, true

	case *ast.StarExpr:
		elem, ok := typeExprToRef(t.X, sc)
		if !ok {
			return nil, false
		}
		return typeref.Pointer{Elem: elem}, true

	case *ast.ArrayType:
		elem, ok := typeExprToRef(t.Elt, sc)
		if !ok {
			return nil, false
		}
		if t.Len == nil {
			return typeref.Slice{Elem: elem}, true
		}
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok {
			return nil, false
		}
		n, err := strconv.Atoi(lit.Value)
		if err != nil {
			return nil, false
		}
		return typeref.Array{Len: n, Elem: elem}, true

	case *ast.MapType:
		k, ok := typeExprToRef(t.Key, sc)
		if !ok {
			return nil, false
		}
		v, ok := typeExprToRef(t.Value, sc)
		if !ok {
			return nil, false
		}
		return typeref.Map{K: k, V: v}, true

	case *ast.StructType:
		// Only the empty struct leaf (set values) is representable.
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return typeref.EmptyStruct(), true
		}
		return nil, false

	case *ast.IndexExpr:
		outer, ok := genericOuter(t.X, sc)
		if !ok {
			return nil, false
		}
		arg, ok := typeExprToRef(t.Index, sc)
		if !ok {
			return nil, false
		}
		return typeref.Generic{Outer: outer, Args: []typeref.TypeRef{arg}}, true

	case *ast.IndexListExpr:
		outer, ok := genericOuter(t.X, sc)
		if !ok {
			return nil, false
		}
		args := make([]typeref.TypeRef, 0, len(t.Indices))
		for _, idx := range t.Indices {
			a, ok := typeExprToRef(idx, sc)
			if !ok {
				return nil, false
			}
			args = append(args, a)
		}
		return typeref.Generic{Outer: outer, Args: args}, true

	default:
		return nil, false
	}
}

func genericOuter(expr ast.Expr, sc scope) (typeref.Named, bool) {
	base, ok := typeExprToRef(expr, sc)
	if !ok {
		return typeref.Named{}, false
	}
	n, ok := base.(typeref.Named)
	return n, ok
}

// fileImports builds the alias → path map for one file.
func fileImports(file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := path[strings.LastIndex(path, "/")+1:]
		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			alias = imp.Name.Name
		}
		out[alias] = path
	}
	return out
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		txt := strings.TrimSpace(strings.Trim(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/"))
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Decap lowercases the leading identifier run: Name → name, URL → url,
// URLValue → urlValue. It is how setter and parameter names become field
// storage names.
func Decap(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == len(r):
		return strings.ToLower(s)
	case n == 1:
		return strings.ToLower(string(r[0])) + string(r[1:])
	default:
		// leading acronym followed by a lowercase continuation: keep the
		// last upper rune with the next word (URLValue → urlValue)
		return strings.ToLower(string(r[:n-1])) + string(r[n-1:])
	}
}

// Cap uppercases the first rune: name → Name.
func Cap(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
