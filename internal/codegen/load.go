package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/packages"
)

// loadMode loads syntax only; the package may call methods that generation
// has not written yet, so it cannot be type checked.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Package is the parsed source of the package being generated for.
type Package struct {
	Name    string
	PkgPath string
	Fset    *token.FileSet
	Files   []*ast.File

	// ImportNames maps the import paths used by Files to package names.
	ImportNames map[string]string
}

// Load parses the Go package in dir.
func Load(dir string) (*Package, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
		Fset: token.NewFileSet(),
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	names, err := importNames(dir, pkg.Syntax)
	if err != nil {
		return nil, err
	}

	return &Package{
		Name:        pkg.Name,
		PkgPath:     pkg.PkgPath,
		Fset:        cfg.Fset,
		Files:       pkg.Syntax,
		ImportNames: names,
	}, nil
}

// importNames looks up the package names of the imports of files. Imports
// that cannot be loaded are left out.
func importNames(dir string, files []*ast.File) (map[string]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, file := range files {
		for _, imp := range file.Imports {
			importPath, err := strconv.Unquote(imp.Path.Value)
			if err != nil || importPath == "C" {
				continue
			}
			if _, ok := seen[importPath]; ok {
				continue
			}
			seen[importPath] = struct{}{}
			paths = append(paths, importPath)
		}
	}

	names := make(map[string]string, len(paths))
	if len(paths) == 0 {
		return names, nil
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: dir}, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load imports of %s: %w", dir, err)
	}
	for _, pkg := range pkgs {
		if pkg.Name != "" && len(pkg.Errors) == 0 {
			names[pkg.PkgPath] = pkg.Name
		}
	}
	return names, nil
}
