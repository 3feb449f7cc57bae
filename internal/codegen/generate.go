// Package codegen generates chained Process methods for structs that wrap a
// single pipeline.Option field.
//
// For each selected struct, and each n in StepCounts, a method
//
//	func (r *T) ProcessN(step1, ..., stepN-1 func(V) pipeline.Option[V]) pipeline.Option[V]
//
// is written. It copies the field and applies the steps in order, returning
// None as soon as the value is absent or a step returns None.
package codegen

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/ecordell/pipelinegen/internal/diagnostic"
)

// Result is the outcome of a successful generation.
type Result struct {
	Descriptors []*Descriptor
	Warnings    []*diagnostic.Diagnostic
}

// Generate validates the selected types of pkg. Nothing is generated unless
// every type is valid.
func Generate(pkg *Package, names []string, opts Options) (*Result, error) {
	targets := FindTargets(pkg, names)
	if len(targets) == 0 {
		return nil, errors.New("no types found")
	}

	found := make(map[string]struct{}, len(targets))
	res := &Result{}
	for _, t := range targets {
		d, err := Describe(pkg.Fset, t, opts)
		if err != nil {
			return nil, err
		}
		found[d.Name] = struct{}{}
		res.Descriptors = append(res.Descriptors, d)
		res.Warnings = append(res.Warnings, d.Warnings...)
	}

	for _, name := range names {
		if _, ok := found[name]; !ok {
			return nil, fmt.Errorf("type %s not found in package %s", name, pkg.Name)
		}
	}

	return res, nil
}

// Render writes the generated file for descs, in package pkgName with import
// path pkgPath, to w.
func Render(w io.Writer, pkgPath, pkgName string, descs []*Descriptor, opts Options) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	buf := jen.NewFilePathName(pkgPath, pkgName)
	buf.HeaderComment(opts.Header)

	for _, d := range descs {
		for importPath, in := range d.imports {
			if in.alias {
				buf.ImportAlias(importPath, in.name)
			} else {
				buf.ImportName(importPath, in.name)
			}
		}
	}

	first := true
	for _, d := range descs {
		for _, n := range StepCounts {
			if !first {
				buf.Line()
			}
			first = false
			writeProcess(buf, d, n, opts)
		}
	}

	return buf.Render(w)
}

func (d *Descriptor) optionType() *jen.Statement {
	return jen.Qual(d.OptionPath, "Option").Types(d.inner)
}

func (d *Descriptor) stepType() *jen.Statement {
	return jen.Func().Params(d.inner).Add(d.optionType())
}

func (d *Descriptor) receiverType() *jen.Statement {
	typ := jen.Id(d.Name)
	if len(d.TypeParams) == 0 {
		return typ
	}
	return typ.TypesFunc(func(grp *jen.Group) {
		for _, tp := range d.TypeParams {
			grp.Id(tp)
		}
	})
}

// writeProcess writes the method running n-1 steps.
func writeProcess(buf *jen.File, d *Descriptor, n int, opts Options) {
	methodName := fmt.Sprintf("%s%d", opts.MethodPrefix, n)
	steps := n - 1

	if d.Attrs.Skip {
		buf.Comment(fmt.Sprintf("%s always returns None: processing is disabled for %s", methodName, d.Name))
	} else {
		buf.Comment(fmt.Sprintf("%s passes a copy of %s through %d steps, returning None as soon as a step does", methodName, d.Field, steps))
	}

	buf.Func().Params(jen.Id(d.Receiver).Op("*").Add(d.receiverType())).Id(methodName).ParamsFunc(func(grp *jen.Group) {
		for i := 1; i <= steps; i++ {
			name := stepName(i)
			if d.Attrs.Skip {
				name = "_"
			}
			grp.Id(name).Add(d.stepType())
		}
	}).Add(d.optionType()).BlockFunc(func(grp *jen.Group) {
		if d.Attrs.Skip {
			grp.Return(jen.Qual(d.OptionPath, "None").Types(d.inner).Call())
			return
		}

		if ms, ok := d.Attrs.Timeout.Get(); ok {
			grp.Qual(d.OptionPath, "AnnounceTimeout").Call(jen.Op(strconv.FormatUint(ms, 10)))
		}

		chain := jen.Id(d.Receiver).Dot(d.Field).Dot("Cloned").Call()
		for i := 1; i <= steps; i++ {
			chain = chain.Dot("AndThen").Call(jen.Id(stepName(i)))
		}
		grp.Return(chain)
	})
}

func stepName(i int) string {
	return fmt.Sprintf("step%d", i)
}
