//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// binaryPath is where Build writes the insurapro binary.
var binaryPath = filepath.Join(binaryDir, binaryName)

// Build compiles the insurapro binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-trimpath", "-o", binaryPath, cmdDir)
}

// Clean removes bin/, the coverage profile and the Go build cache entries
// for this module.
func Clean() error {
	for _, path := range []string{binaryDir, coverFile} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install vets the module and installs insurapro into GOPATH/bin.
func Install() error {
	mg.Deps(Vet)
	return sh.RunV(binGo, "install", "-trimpath", cmdDir)
}
