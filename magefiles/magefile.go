//go:build mage

// Package main provides build targets for the asset cloner using Mage.
//
// Usage:
//
//	mage build    Compile asset-cloner to bin/
//	mage test     Run all tests
//	mage cover    Run tests with a coverage profile
//	mage swagger  Regenerate docs/swagger from handler annotations
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "asset-cloner"
	binaryDir  = "bin"
	coverFile  = "coverage.out"
)

// Build compiles the asset-cloner binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), ".")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs all tests and writes a coverage profile.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverFile)
}

// Swagger regenerates the API documentation.
func Swagger() error {
	return sh.RunV("swag", "init", "-g", "cmd/serve.go", "-o", "docs/swagger", "--outputTypes", "go")
}

// Lint runs golangci-lint.
func Lint() error {
	mg.Deps(Swagger)
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.Rm(coverFile)
}
