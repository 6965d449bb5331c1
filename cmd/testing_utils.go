// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments and
// capturing output.
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	logger "github.com/PolarWolf314/sitelock/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment changes into tempDir and restores the working
// directory and command state when the test ends.
func setupTestEnvironment(t *testing.T, tempDir string) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	ResetGlobalState()

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})
}

// runCLI executes the root command with args the way main does, returning
// stdout, stderr and the command error. A failing command's formatted error
// is written to stderr.
func runCLI(t *testing.T, verboseFlag, debugFlag bool, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	done := make(chan struct{}, 2)
	go func() { io.Copy(&stdout, stdoutReader); done <- struct{}{} }()
	go func() { io.Copy(&stderr, stderrReader); done <- struct{}{} }()

	cmd := createTestCLI(args, stdoutWriter, stderrWriter, verboseFlag, debugFlag)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderrWriter, FormatError(err))
	}

	stdoutWriter.Close()
	stderrWriter.Close()
	<-done
	<-done
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return stdout.String(), stderr.String(), err
}

// createTestCLI prepares RootCmd for testing with the specified args and flags.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command (needed for the real command implementations)
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	setCommandOutput(RootCmd, stdout, stderr)

	fullArgs := append([]string{}, args...)
	if verboseFlag {
		fullArgs = append(fullArgs, "--verbose")
	}
	if debugFlag {
		fullArgs = append(fullArgs, "--debug")
	}
	RootCmd.SetArgs(fullArgs)

	return RootCmd
}

// setCommandOutput points cmd and all its subcommands at stdout and stderr.
func setCommandOutput(cmd *cobra.Command, stdout, stderr io.Writer) {
	if stdout != nil {
		cmd.SetOut(stdout)
	}
	if stderr != nil {
		cmd.SetErr(stderr)
	}
	for _, child := range cmd.Commands() {
		setCommandOutput(child, stdout, stderr)
	}
}
