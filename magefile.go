//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Build compiles the ffbuild CLI.
func Build() error {
	mg.Deps(Vet)
	return sh.RunV("go", "build", "-o", "bin/ffbuild", "./cmd/ffbuild")
}

// CI runs everything the pipeline runs.
func CI() {
	mg.SerialDeps(Vet, Test, Build)
}
