//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Lint mg.Namespace

// Go runs golangci-lint on the codebase
func (Lint) Go() error {
	fmt.Println("Running golangci-lint...")
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Format fails if any file is not gofmt'ed
func (Lint) Format() error {
	fmt.Println("Checking code formatting...")
	return listed("gofmt", "-l", "-s", "main.go", "generate.go", "internal", "pipeline", "example")
}

// Imports fails if imports are not grouped with the module's own packages last
func (Lint) Imports() error {
	fmt.Println("Checking import organization...")
	return listed("goimports", "-l", "-local", "github.com/ecordell/pipelinegen", "main.go", "generate.go", "internal", "pipeline", "example")
}

// All runs all linting checks
func (Lint) All() error {
	mg.Deps(Lint.Go, Lint.Format, Lint.Imports)
	return nil
}

// listed runs a command that prints offending files and fails if it printed any.
func listed(cmd string, args ...string) error {
	out, err := sh.Output(cmd, args...)
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("%s reported files that need fixing:\n%s", cmd, files)
	}
	return nil
}
