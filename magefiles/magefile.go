//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for eds-records developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "eds-records"
	cmdPkg  = "./cmd/eds-records"

	configFile = "eds-records.yaml"
	secretsDir = ".secrets"
)

// sampleConfig is written by Init when no config file exists.
const sampleConfig = `log_level: info
log_format: text

normalize:
  workers: 4
  # restricted_title: "Title hidden for guests"

fetch:
  timeout: 30s
  max_retries: 5
  secrets_dir: .secrets/

index:
  path: eds-records.db
  max_results: 20

server:
  addr: ":8080"
  max_body_bytes: 8388608
`

// Init creates the secrets directory and a starter config file.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	fmt.Println("  ", secretsDir+"/")

	if _, err := os.Stat(configFile); err == nil {
		fmt.Println("  ", configFile, "(kept)")
	} else {
		if err := os.WriteFile(configFile, []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configFile, err)
		}
		fmt.Println("  ", configFile)
	}
	fmt.Println("Project initialized. Put eds-session-token / eds-auth-token files in .secrets/.")
	return nil
}

// version returns the version stamped into the binary.
func version() string {
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		return v
	}
	return "dev"
}

// Build compiles the CLI binary into bin/. go-sqlite3 needs cgo.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version()
	env := map[string]string{"CGO_ENABLED": "1"}
	if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet on every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the test suite after vet.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints project metrics: Go package, source and test file counts
// plus JSON fixtures.
func Stats() error {
	var pkgs, prod, tests int
	seen := map[string]bool{}
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if dir := filepath.Dir(path); !seen[dir] {
			seen[dir] = true
			pkgs++
		}
		if strings.HasSuffix(path, "_test.go") {
			tests++
		} else {
			prod++
		}
		return nil
	})
	if err != nil {
		return err
	}
	fixtures, err := filepath.Glob(filepath.Join("internal", "*", "testdata", "*.json"))
	if err != nil {
		return err
	}

	fmt.Printf("Packages:          %d\n", pkgs)
	fmt.Printf("Go files (source): %d\n", prod)
	fmt.Printf("Go files (tests):  %d\n", tests)
	fmt.Printf("JSON fixtures:     %d\n", len(fixtures))
	return nil
}
