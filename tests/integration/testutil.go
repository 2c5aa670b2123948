// Package integration provides CLI integration tests for insurapro.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// insuraproBin is the path to the built insurapro binary.
	insuraproBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config
// directory and data file.
type TestEnv struct {
	t        *testing.T
	TempDir  string
	Config   string
	DataFile string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build insurapro: %v", buildErr)
	}
	if insuraproBin == "" {
		t.Fatal("insurapro binary not built (insuraproBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:        t,
		TempDir:  tempDir,
		Config:   filepath.Join(tempDir, "config"),
		DataFile: filepath.Join(tempDir, "crm_data.csv"),
	}
}

// CmdResult holds the result of an insurapro command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the insurapro CLI with the given stdin and arguments.
func (e *TestEnv) Run(stdin string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-file", e.DataFile}, args...)
	cmd := exec.Command(insuraproBin, allArgs...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run insurapro: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the insurapro CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run("", args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("insurapro %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// DataLines returns the data file split into lines.
func (e *TestEnv) DataLines() []string {
	e.t.Helper()
	data, err := os.ReadFile(e.DataFile)
	if err != nil {
		e.t.Fatalf("failed to read data file %s: %v", e.DataFile, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
