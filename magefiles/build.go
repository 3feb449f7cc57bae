//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Binary builds the pipelinegen binary
func (Build) Binary() error {
	fmt.Println("Building pipelinegen binary...")
	return sh.RunV("go", "build", "-ldflags", "-X main.version="+version(), "-o", "bin/pipelinegen", ".")
}

// Install installs pipelinegen to GOPATH/bin
func (Build) Install() error {
	fmt.Println("Installing pipelinegen...")
	return sh.RunV("go", "install", ".")
}

// Clean removes built artifacts
func (Build) Clean() error {
	fmt.Println("Cleaning build artifacts...")
	return sh.Rm("bin")
}

// version describes the checked out commit, or "dev" outside of git.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || out == "" {
		return "dev"
	}
	return out
}
