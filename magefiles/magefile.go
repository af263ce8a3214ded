//go:build mage

// Package main provides build targets for taskd using Mage.
//
// Usage:
//
//	mage build            Compile taskd to bin/
//	mage test             Run all tests
//	mage testShort        Run tests without the PostgreSQL containers
//	mage lint             Run go vet and golangci-lint
//	mage run              Build and serve on the default port
//	mage clean            Remove build artifacts
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "taskd"
	binaryDir  = "bin"
	cmdDir     = "./cmd/taskd"
	versionVar = "task-manager/internal/cli.Version"
)

// Build compiles the taskd binary to bin/, stamped with the git version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + versionVar + "=" + version()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs every test, including the PostgreSQL integration tests when
// Docker is available.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// TestShort runs the tests that need no external services.
func TestShort() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Lint runs go vet, then golangci-lint when it is installed.
func Lint() error {
	if err := sh.RunV(binGo, "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("golangci-lint", "version"); err != nil {
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Run builds and starts the server against the in-memory database.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}
