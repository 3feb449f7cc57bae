package codegen

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/fatih/structtag"

	"github.com/ecordell/pipelinegen/internal/attrs"
	"github.com/ecordell/pipelinegen/internal/diagnostic"
)

// Target is a type declaration selected for generation.
type Target struct {
	File *ast.File
	Spec *ast.TypeSpec
	// Doc is the comment the derive directive is read from.
	Doc *ast.CommentGroup

	// ImportNames maps import paths to package names.
	ImportNames map[string]string
}

// FindTargets returns the type declarations of pkg to generate for. If names
// is empty, types carrying the derive directive or a pipeline field tag are
// selected; otherwise the types with the given names are.
func FindTargets(pkg *Package, names []string) []Target {
	filter := make(map[string]struct{}, len(names))
	for _, name := range names {
		filter[name] = struct{}{}
	}

	found := make([]Target, 0)
	for _, file := range pkg.Files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}

				if len(filter) > 0 {
					if _, ok := filter[ts.Name.Name]; !ok {
						continue
					}
				} else if _, _, ok := attrs.FindDirective(doc); !ok && !hasPipelineTag(ts) {
					continue
				}

				found = append(found, Target{File: file, Spec: ts, Doc: doc, ImportNames: pkg.ImportNames})
			}
		}
	}
	return found
}

func hasPipelineTag(ts *ast.TypeSpec) bool {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return false
	}
	for _, field := range st.Fields.List {
		if field.Tag == nil {
			continue
		}
		tag, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			continue
		}
		tags, err := structtag.Parse(tag)
		if err != nil {
			continue
		}
		if _, err := tags.Get(attrs.TagKey); err == nil {
			return true
		}
	}
	return false
}

// Descriptor is the validated shape of an annotated struct.
type Descriptor struct {
	Name       string
	TypeParams []string
	Receiver   string
	Field      string
	Inner      ast.Expr
	OptionPath string
	Attrs      attrs.Set

	// Warnings are non-fatal diagnostics, such as unknown attribute keys.
	Warnings []*diagnostic.Diagnostic

	inner   *jen.Statement
	imports map[string]importName
}

// Describe validates that t is a struct with a single field of type
// Option[T] and returns its Descriptor.
func Describe(fset *token.FileSet, t Target, opts Options) (*Descriptor, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	ts := t.Spec
	set, hasDirective, err := directiveAttrs(fset, t.Doc)
	if err != nil {
		return nil, err
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, diagnostic.Errorf(fset, ts.Name.Pos(), "expected a struct type")
	}

	named := 0
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, diagnostic.Errorf(fset, ts.Name.Pos(), "expected a struct with named fields")
		}
		named += len(field.Names)
	}
	if named != 1 {
		return nil, diagnostic.Errorf(fset, ts.Name.Pos(), "expected a struct with exactly one named field")
	}
	field := st.Fields.List[0]
	if field.Names[0].Name == "_" {
		return nil, diagnostic.Errorf(fset, field.Names[0].Pos(), "expected a struct with exactly one named field, found a blank field")
	}

	if field.Tag != nil {
		tag, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			return nil, diagnostic.Errorf(fset, field.Tag.Pos(), "invalid struct tag %s", field.Tag.Value)
		}
		tagSet, hasTag, err := attrs.ParseTag(fset, field.Tag.Pos(), tag)
		if err != nil {
			return nil, err
		}
		if hasTag {
			if hasDirective {
				return nil, diagnostic.Errorf(fset, field.Tag.Pos(), "pipeline attributes given both in %s and in the struct tag", attrs.Directive)
			}
			set = tagSet
		}
	}

	resolver := NewImportResolver(t.File, t.ImportNames)
	inner, err := innerType(fset, field.Type, resolver, opts)
	if err != nil {
		return nil, err
	}
	resolver.use(opts.OptionPackage)

	innerCode, err := typeCode(inner, resolver)
	if err != nil {
		var te typeError
		if errors.As(err, &te) {
			return nil, diagnostic.Errorf(fset, te.pos, "%s", te.msg)
		}
		return nil, err
	}

	d := &Descriptor{
		Name:       ts.Name.Name,
		TypeParams: typeParamNames(ts),
		Field:      field.Names[0].Name,
		Inner:      inner,
		OptionPath: opts.OptionPackage,
		Attrs:      set,
		inner:      innerCode,
		imports:    resolver.usedImports(),
	}
	d.Receiver = receiverName(d.Name, d.TypeParams)

	for _, pair := range set.Others {
		d.Warnings = append(d.Warnings, diagnostic.Warningf(fset, pair.Pos, "unknown pipeline attribute key '%s'", pair.Key))
	}

	return d, nil
}

func directiveAttrs(fset *token.FileSet, doc *ast.CommentGroup) (attrs.Set, bool, error) {
	text, pos, ok := attrs.FindDirective(doc)
	if !ok {
		return attrs.Set{}, false, nil
	}
	set, err := attrs.ParseDirective(fset, pos, text)
	return set, true, err
}

// innerType extracts T from a field of type Option[T].
func innerType(fset *token.FileSet, expr ast.Expr, resolver *ImportResolver, opts Options) (ast.Expr, error) {
	name := opts.optionName()

	switch t := expr.(type) {
	case *ast.IndexExpr:
		if isOption(t.X, resolver, opts) {
			return t.Index, nil
		}
	case *ast.IndexListExpr:
		if isOption(t.X, resolver, opts) {
			return nil, diagnostic.Errorf(fset, t.Lbrack, "expected %s[T] with a single concrete type argument", name)
		}
	case *ast.SelectorExpr:
		if isOption(t, resolver, opts) {
			return nil, diagnostic.Errorf(fset, t.Sel.Pos(), "expected bracketed type argument, as in %s[T]", name)
		}
	}

	return nil, diagnostic.Errorf(fset, expr.Pos(), "expected field of type %s[T]", name)
}

func isOption(expr ast.Expr, resolver *ImportResolver, opts Options) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Option" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	importPath, ok := resolver.Resolve(pkg.Name)
	return ok && importPath == opts.OptionPackage
}

func typeParamNames(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range ts.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// receiverName is the lowercased first letter of the type name, unless that
// is a blank or a type parameter name.
func receiverName(typeName string, typeParams []string) string {
	r := []rune(typeName)
	name := string(unicode.ToLower(r[0]))

	taken := name == "_"
	for _, tp := range typeParams {
		if tp == name {
			taken = true
		}
	}
	if taken {
		return "recv"
	}
	return name
}

func exprString(expr ast.Expr) string {
	return types.ExprString(expr)
}
