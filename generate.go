package main

import (
	"bytes"
	"fmt"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ecordell/pipelinegen/internal/codegen"
)

type generateFlags struct {
	Output        string
	PackageName   string
	OptionPackage string
	Dump          bool
	Verbose       bool
}

// descriptorDump is the printable form of a codegen.Descriptor.
type descriptorDump struct {
	Name       string
	TypeParams []string
	Field      string
	Inner      string
	Attrs      string
}

func runGenerate(flags generateFlags, dir string, names []string, stderr io.Writer) error {
	logger := newLogger(flags.Verbose, stderr)
	defer func() { _ = logger.Sync() }()

	opts, err := codegen.NewOptions()
	if err != nil {
		return err
	}
	if flags.OptionPackage != "" {
		opts.OptionPackage = flags.OptionPackage
	}

	pkg, err := codegen.Load(dir)
	if err != nil {
		return err
	}
	logger.Debug("loaded package", zap.String("path", pkg.PkgPath), zap.Int("files", len(pkg.Files)))

	res, err := codegen.Generate(pkg, names, opts)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Warn(w.Message, zap.Stringer("pos", w.Pos))
	}

	if flags.Dump {
		dumps := make([]descriptorDump, 0, len(res.Descriptors))
		for _, d := range res.Descriptors {
			dumps = append(dumps, descriptorDump{
				Name:       d.Name,
				TypeParams: d.TypeParams,
				Field:      d.Field,
				Inner:      types.ExprString(d.Inner),
				Attrs:      d.Attrs.String(),
			})
		}
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		cfg.Fdump(stderr, dumps)
	}

	pkgName, pkgPath, err := outputPackage(flags, dir, pkg)
	if err != nil {
		return err
	}

	typeNames := make([]string, 0, len(res.Descriptors))
	for _, d := range res.Descriptors {
		typeNames = append(typeNames, d.Name)
	}
	logger.Info(fmt.Sprintf("Generating pipeline methods for %s.%s...", pkgName, strings.Join(typeNames, ", ")),
		zap.String("output", flags.Output))

	var buf bytes.Buffer
	if err := codegen.Render(&buf, pkgPath, pkgName, res.Descriptors, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", flags.Output, err)
	}

	if err := os.WriteFile(flags.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("couldn't write %s: %w", flags.Output, err)
	}
	return nil
}

// outputPackage checks that the output file is part of the package being
// generated for, since methods can only be declared there, and returns that
// package's name and import path.
func outputPackage(flags generateFlags, dir string, pkg *codegen.Package) (string, string, error) {
	outputDir, err := filepath.Abs(filepath.Dir(flags.Output))
	if err != nil {
		return "", "", err
	}
	pkgDir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	if outputDir != pkgDir {
		return "", "", fmt.Errorf("output %s must be in the directory of package %s (%s)", flags.Output, pkg.Name, dir)
	}
	if flags.PackageName != "" && flags.PackageName != pkg.Name {
		return "", "", fmt.Errorf("--package %s does not match package %s being generated for", flags.PackageName, pkg.Name)
	}
	return pkg.Name, pkg.PkgPath, nil
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
