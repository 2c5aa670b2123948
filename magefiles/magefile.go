//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the insurapro project using Mage.
//
// Usage:
//
//	mage build             Compile insurapro binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests with a coverage profile
//	mage lint              Run golangci-lint
//	mage vet               Run go vet
//	mage clean             Remove build artifacts
//	mage install           Vet, then install insurapro to GOPATH/bin
//	mage stats             Print Go LOC per package and documentation word counts
package main

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "insurapro"
	binaryDir  = "bin"
	cmdDir     = "./cmd/insurapro"
	coverFile  = "coverage.out"
)
