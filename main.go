// Package main implements pipelinegen, a code generator for chained
// Option pipelines in Go.
//
// pipelinegen looks for structs with exactly one field of type
// pipeline.Option[T] and generates methods that pass a copy of that field
// through a fixed number of fallible steps:
//   - Process3(step1, step2) runs two steps
//   - Process4(step1, step2, step3) runs three steps
//
// Each step is a func(T) pipeline.Option[T]. The chain stops at the first
// step that returns None.
//
// Usage:
//
//	pipelinegen [flags] <package-dir> [<struct-name>...]
//
// If no struct names are given, every type with a //pipeline:derive
// directive, or with a pipeline field tag, is generated for.
//
// Flags:
//
//	--output <path>
//	    Location where generated methods will be written, inside <package-dir> (required)
//	--package <name>
//	    Expected name of the package; generation fails if it differs (optional)
//	--option-package <import path>
//	    Import path of the package providing Option (default: github.com/ecordell/pipelinegen/pipeline)
//	--dump
//	    Print the parsed struct descriptors to stderr
//	--verbose
//	    Enable debug logging
//
// Example:
//
//	//go:generate go run github.com/ecordell/pipelinegen --output=pipeline_gen.go .
//
// Attributes:
//
// The directive takes an optional parenthesized list of attributes:
//   - skip, or skip = true|false - generate stubs that always return None
//   - timeout = <ms> - announce the timeout each time a method is called
//
// Other keys are accepted and ignored, with a warning.
//
// Example struct:
//
//	//pipeline:derive(timeout = 500)
//	type Amount struct {
//	    Value pipeline.Option[int]
//	}
//
// The same attributes can be given as a field tag instead:
//
//	type Amount struct {
//	    Value pipeline.Option[int] `pipeline:"timeout=500"`
//	}
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "pipelinegen [flags] <package-dir> [<struct-name>...]",
		Short: "Generate chained Option pipeline methods for single-field structs",
		Long: `pipelinegen generates Process3 and Process4 methods for structs with exactly
one field of type pipeline.Option[T]. Types are selected by name, or by a
//pipeline:derive directive or pipeline field tag when no names are given.`,
		Version:       version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(flags, args[0], args[1:], cmd.ErrOrStderr())
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	fs := cmd.Flags()
	fs.StringVar(&flags.Output, "output", "", "Location where generated methods will be written")
	fs.StringVar(&flags.PackageName, "package", "", "Expected name of the package being generated for")
	fs.StringVar(&flags.OptionPackage, "option-package", "", "Import path of the package providing Option")
	fs.BoolVar(&flags.Dump, "dump", false, "Print the parsed struct descriptors to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
