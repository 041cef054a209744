// Package source adapts the Go toolchain's introspection facilities for the
// builder pipeline: it loads packages, finds directive-annotated structs,
// collects their constructors, setters, and getters, and translates ast type
// expressions into TypeRef values.
package source

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/typeref"
)

// Directive is the comment marker that opts a struct into builder
// generation, optionally followed by key=value options.
const Directive = "bldgen:builder"

// NamedParam is one function or method parameter with its resolved type.
type NamedParam struct {
	Name string
	Type typeref.TypeRef
}

// Func is a package-level function or a method of the target type.
// Unresolved marks members whose signature uses a shape the type model does
// not cover; the extractor skips those with a diagnostic.
type Func struct {
	Name       string
	Params     []NamedParam
	Results    []typeref.TypeRef
	Unresolved bool
}

// Target is one annotated type together with everything the extractor needs.
// Err carries a shape or directive error detected at load time; such a
// target is reported and skipped without affecting its siblings.
type Target struct {
	Name       string
	PkgPath    string
	PkgName    string
	Dir        string
	Doc        string
	TypeParams []NamedParam // name + constraint of each declared type parameter
	Directive  config.Directive
	Err        error

	Funcs   []Func // package-level functions returning the target type
	Methods []Func // methods declared on the target type
}

// Ref returns the TypeRef for the target type itself.
func (t *Target) Ref() typeref.Named {
	return typeref.Named{PkgPath: t.PkgPath, Name: t.Name}
}

// Load scans dir (recursively) for annotated types. Shape and directive
// problems are recorded on the affected Target rather than failing the scan.
// The returned Index covers every struct type seen, annotated or not.
func Load(dir string) ([]*Target, *Index, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.LoadImports | packages.LoadAllSyntax,
		Dir:  dir,
		Fset: token.NewFileSet(),
	}, "./...")
	if err != nil {
		return nil, nil, err
	}

	ix := NewIndex()
	var targets []*Target
	for _, pkg := range pkgs {
		targets = append(targets, loadPackage(pkg, ix)...)
	}
	return targets, ix, nil
}

func loadPackage(pkg *packages.Package, ix *Index) []*Target {
	var targets []*Target
	dir := ""
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		sc := scope{pkgPath: pkg.PkgPath, imports: fileImports(file)}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			genDoc := commentText(gen.Doc)
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, isStruct := ts.Type.(*ast.StructType); isStruct && !ts.Assign.IsValid() {
					ix.AddStruct(typeref.Named{PkgPath: pkg.PkgPath, Name: ts.Name.Name})
				}
				doc := genDoc
				if txt := commentText(ts.Doc); txt != "" {
					if doc == "" {
						doc = txt
					} else {
						doc += "\n" + txt
					}
				}
				args, found := directiveArgs(doc)
				if !found {
					continue
				}
				targets = append(targets, newTarget(pkg, ts, dir, doc, args, sc))
			}
		}
	}

	// Second pass: constructors and methods may live in any file of the
	// package, so collect them after all targets are known.
	for _, t := range targets {
		collectMembers(pkg, t)
	}
	return targets
}

// directiveArgs finds the directive line in a doc comment and returns its
// key=value arguments.
func directiveArgs(doc string) ([]string, bool) {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == Directive {
			return nil, true
		}
		if strings.HasPrefix(line, Directive+" ") {
			return strings.Fields(strings.TrimPrefix(line, Directive+" ")), true
		}
	}
	return nil, false
}

func newTarget(pkg *packages.Package, ts *ast.TypeSpec, dir, doc string, args []string, sc scope) *Target {
	t := &Target{
		Name:    ts.Name.Name,
		PkgPath: pkg.PkgPath,
		PkgName: pkg.Name,
		Dir:     dir,
		Doc:     doc,
	}

	// Shape validation happens before any extraction work. Aliases are
	// rejected first: their underlying expression can be any type at all.
	if ts.Assign.IsValid() {
		t.Err = &ShapeError{Target: t.Name, Decl: "a type alias", Message: "builders are generated for defined struct types only"}
		return t
	}
	switch ts.Type.(type) {
	case *ast.StructType:
	case *ast.InterfaceType:
		t.Err = &ShapeError{Target: t.Name, Decl: "an interface", Message: "builders are generated for struct types only"}
		return t
	default:
		t.Err = &ShapeError{Target: t.Name, Decl: "a non-struct declaration", Message: "builders are generated for struct types only"}
		return t
	}

	if ts.TypeParams != nil {
		for _, fp := range ts.TypeParams.List {
			constraint, ok := typeExprToRef(fp.Type, sc)
			if !ok {
				constraint = typeref.Primitive{Name: "any"}
			}
			for _, name := range fp.Names {
				t.TypeParams = append(t.TypeParams, NamedParam{Name: name.Name, Type: constraint})
			}
		}
	}

	d, err := config.ParseDirective(t.Name, args)
	if err != nil {
		t.Err = err
		return t
	}
	t.Directive = d
	return t
}

// collectMembers walks every file of the package for functions returning the
// target type and methods declared on it.
func collectMembers(pkg *packages.Package, t *Target) {
	if t.Err != nil {
		return
	}
	params := make(map[string]struct{}, len(t.TypeParams))
	for _, p := range t.TypeParams {
		params[p.Name] = struct{}{}
	}

	for _, file := range pkg.Syntax {
		sc := scope{pkgPath: pkg.PkgPath, imports: fileImports(file), typeParams: params}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if fn.Recv == nil {
				if f, ok := funcFor(fn, t, sc); ok {
					t.Funcs = append(t.Funcs, f)
				}
				continue
			}
			if recvNamed(fn.Recv) == t.Name {
				t.Methods = append(t.Methods, funcOf(fn, sc))
			}
		}
	}
}

// funcFor keeps package-level functions whose first result is the target
// type, by value or pointer. Those are constructor candidates.
func funcFor(fn *ast.FuncDecl, t *Target, sc scope) (Func, bool) {
	if fn.Type.Results == nil || len(fn.Type.Results.List) == 0 {
		return Func{}, false
	}
	f := funcOf(fn, sc)
	if len(f.Results) == 0 {
		return Func{}, false
	}
	res := f.Results[0]
	if p, ok := res.(typeref.Pointer); ok {
		res = p.Elem
	}
	// Generic constructors return Box[T]; match on the outer name.
	if g, ok := res.(typeref.Generic); ok {
		res = g.Outer
	}
	if !typeref.Equal(res, t.Ref()) {
		return Func{}, false
	}
	return f, true
}

// funcOf translates a declaration's signature, flagging shapes the type
// model does not cover.
func funcOf(fn *ast.FuncDecl, sc scope) Func {
	f := Func{Name: fn.Name.Name}

	for _, field := range fn.Type.Params.List {
		tr, ok := typeExprToRef(field.Type, sc)
		if !ok {
			f.Unresolved = true
			continue
		}
		if len(field.Names) == 0 {
			f.Params = append(f.Params, NamedParam{Name: "", Type: tr})
			continue
		}
		for _, name := range field.Names {
			f.Params = append(f.Params, NamedParam{Name: name.Name, Type: tr})
		}
	}

	if fn.Type.Results != nil {
		for _, field := range fn.Type.Results.List {
			tr, ok := typeExprToRef(field.Type, sc)
			if !ok {
				f.Unresolved = true
				continue
			}
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				f.Results = append(f.Results, tr)
			}
		}
	}
	return f
}

func recvNamed(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	// drop generic receiver instantiation: Foo[T]
	switch e := expr.(type) {
	case *ast.IndexExpr:
		expr = e.X
	case *ast.IndexListExpr:
		expr = e.X
	}
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}
