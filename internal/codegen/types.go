package codegen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"

	"github.com/dave/jennifer/jen"
)

// importName is how an import path is written in the generated file.
type importName struct {
	name  string
	alias bool
}

// ImportResolver resolves the package names used in a file to import paths,
// and records the imports that generated code refers to.
type ImportResolver struct {
	// local name to import path
	paths map[string]string
	// import path to package name, as reported by the loader
	names map[string]string
	// local name given by an import alias, by import path
	aliases map[string]string

	used map[string]importName
}

// NewImportResolver indexes the imports of file by the name they are
// referred to with. names maps import paths to their package names; an
// unaliased import whose package name is unknown cannot be resolved.
func NewImportResolver(file *ast.File, names map[string]string) *ImportResolver {
	r := &ImportResolver{
		paths:   make(map[string]string, len(file.Imports)),
		names:   names,
		aliases: make(map[string]string),
		used:    make(map[string]importName),
	}
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			r.paths[imp.Name.Name] = importPath
			r.aliases[importPath] = imp.Name.Name
			continue
		}
		if name, ok := names[importPath]; ok {
			r.paths[name] = importPath
		}
	}
	return r
}

// Resolve returns the import path for a package name used in the file.
func (r *ImportResolver) Resolve(pkgName string) (string, bool) {
	importPath, ok := r.paths[pkgName]
	return importPath, ok
}

// use records that generated code refers to importPath.
func (r *ImportResolver) use(importPath string) {
	if name, ok := r.names[importPath]; ok {
		r.used[importPath] = importName{name: name}
		return
	}
	if alias, ok := r.aliases[importPath]; ok {
		r.used[importPath] = importName{name: alias, alias: true}
	}
}

// usedImports returns the imports recorded by use.
func (r *ImportResolver) usedImports() map[string]importName {
	return r.used
}

// typeError is a type expression that cannot be written to the generated file.
type typeError struct {
	pos token.Pos
	msg string
}

func (e typeError) Error() string {
	return e.msg
}

func unsupported(expr ast.Expr) error {
	return typeError{pos: expr.Pos(), msg: fmt.Sprintf("unsupported inner type %s", exprString(expr))}
}

// typeCode converts a type expression into jen code, qualifying selectors with
// their resolved import paths. It fails for expressions it cannot emit.
func typeCode(expr ast.Expr, resolver *ImportResolver) (*jen.Statement, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name), nil

	case *ast.ParenExpr:
		return typeCode(t.X, resolver)

	case *ast.StarExpr:
		elem, err := typeCode(t.X, resolver)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(elem), nil

	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, unsupported(expr)
		}
		importPath, ok := resolver.Resolve(pkg.Name)
		if !ok {
			return nil, typeError{pos: pkg.Pos(), msg: fmt.Sprintf("cannot resolve the import of package %s", pkg.Name)}
		}
		resolver.use(importPath)
		return jen.Qual(importPath, t.Sel.Name), nil

	case *ast.ArrayType:
		elem, err := typeCode(t.Elt, resolver)
		if err != nil {
			return nil, err
		}
		if t.Len == nil {
			return jen.Index().Add(elem), nil
		}
		switch n := t.Len.(type) {
		case *ast.BasicLit:
			if n.Kind == token.INT {
				return jen.Index(jen.Op(n.Value)).Add(elem), nil
			}
		case *ast.Ident:
			return jen.Index(jen.Id(n.Name)).Add(elem), nil
		}
		return nil, unsupported(expr)

	case *ast.MapType:
		key, err := typeCode(t.Key, resolver)
		if err != nil {
			return nil, err
		}
		value, err := typeCode(t.Value, resolver)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(value), nil

	case *ast.ChanType:
		value, err := typeCode(t.Value, resolver)
		if err != nil {
			return nil, err
		}
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(value), nil
		case ast.RECV:
			return jen.Op("<-").Chan().Add(value), nil
		default:
			return jen.Chan().Add(value), nil
		}

	case *ast.FuncType:
		if t.TypeParams != nil {
			return nil, unsupported(expr)
		}
		return signature(jen.Func(), t, resolver)

	case *ast.InterfaceType:
		elems, err := interfaceElems(t, resolver)
		if err != nil {
			return nil, err
		}
		return jen.Interface(elems...), nil

	case *ast.StructType:
		fields, err := structFields(t, resolver)
		if err != nil {
			return nil, err
		}
		return jen.Struct(fields...), nil

	case *ast.IndexExpr:
		return instantiate(t.X, []ast.Expr{t.Index}, resolver)

	case *ast.IndexListExpr:
		return instantiate(t.X, t.Indices, resolver)

	default:
		return nil, unsupported(expr)
	}
}

// instantiate emits a generic type instantiation such as Pair[string, int].
func instantiate(base ast.Expr, args []ast.Expr, resolver *ImportResolver) (*jen.Statement, error) {
	code, err := typeCode(base, resolver)
	if err != nil {
		return nil, err
	}
	types := make([]jen.Code, 0, len(args))
	for _, arg := range args {
		c, err := typeCode(arg, resolver)
		if err != nil {
			return nil, err
		}
		types = append(types, c)
	}
	return code.Types(types...), nil
}

// signature appends the parameters and results of ft to s.
func signature(s *jen.Statement, ft *ast.FuncType, resolver *ImportResolver) (*jen.Statement, error) {
	params, err := fieldList(ft.Params, resolver)
	if err != nil {
		return nil, err
	}
	s = s.Params(params...)

	if ft.Results == nil || len(ft.Results.List) == 0 {
		return s, nil
	}
	results, err := fieldList(ft.Results, resolver)
	if err != nil {
		return nil, err
	}
	if len(ft.Results.List) == 1 && len(ft.Results.List[0].Names) == 0 {
		return s.Add(results[0]), nil
	}
	return s.Params(results...), nil
}

// fieldList emits parameters or results, keeping their names.
func fieldList(fl *ast.FieldList, resolver *ImportResolver) ([]jen.Code, error) {
	if fl == nil {
		return nil, nil
	}

	var out []jen.Code
	for _, field := range fl.List {
		var typ *jen.Statement
		var err error
		if ell, ok := field.Type.(*ast.Ellipsis); ok {
			typ, err = typeCode(ell.Elt, resolver)
			if typ != nil {
				typ = jen.Op("...").Add(typ)
			}
		} else {
			typ, err = typeCode(field.Type, resolver)
		}
		if err != nil {
			return nil, err
		}

		if len(field.Names) == 0 {
			out = append(out, typ)
			continue
		}
		for _, name := range field.Names {
			out = append(out, jen.Id(name.Name).Add(typ))
		}
	}
	return out, nil
}

// interfaceElems emits the methods and embedded interfaces of an interface.
// Type sets such as ~int only constrain type parameters and are rejected.
func interfaceElems(it *ast.InterfaceType, resolver *ImportResolver) ([]jen.Code, error) {
	if it.Methods == nil {
		return nil, nil
	}

	var out []jen.Code
	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			embedded, err := typeCode(field.Type, resolver)
			if err != nil {
				return nil, err
			}
			out = append(out, embedded)
			continue
		}

		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			return nil, unsupported(field.Type)
		}
		method, err := signature(jen.Id(field.Names[0].Name), ft, resolver)
		if err != nil {
			return nil, err
		}
		out = append(out, method)
	}
	return out, nil
}

// structFields emits the fields of a struct type literal with their tags.
func structFields(st *ast.StructType, resolver *ImportResolver) ([]jen.Code, error) {
	if st.Fields == nil {
		return nil, nil
	}

	var out []jen.Code
	for _, field := range st.Fields.List {
		typ, err := typeCode(field.Type, resolver)
		if err != nil {
			return nil, err
		}

		var f *jen.Statement
		if len(field.Names) == 0 {
			f = jen.Add(typ)
		} else {
			names := make([]jen.Code, 0, len(field.Names))
			for _, name := range field.Names {
				names = append(names, jen.Id(name.Name))
			}
			f = jen.List(names...).Add(typ)
		}

		if field.Tag != nil {
			tag, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				return nil, unsupported(st)
			}
			f = f.Lit(tag)
		}
		out = append(out, f)
	}
	return out, nil
}
