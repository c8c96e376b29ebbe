package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const integrationCommandTimeout = 60 * time.Second

func repositoryRoot(testInstance *testing.T) string {
	testInstance.Helper()
	rootPath, absoluteError := filepath.Abs("..")
	if absoluteError != nil {
		testInstance.Fatalf("unable to resolve repository root: %v", absoluteError)
	}
	return rootPath
}

func buildBinary(testInstance *testing.T) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), "contriblog")
	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	command.Dir = repositoryRoot(testInstance)
	command.Env = os.Environ()

	outputBytes, buildError := command.CombinedOutput()
	if buildError != nil {
		testInstance.Fatalf("unable to build binary: %v\n%s", buildError, outputBytes)
	}
	return binaryPath
}

func runBinary(testInstance *testing.T, binaryPath string, workingDirectory string, arguments ...string) string {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = os.Environ()

	outputBytes, runError := command.CombinedOutput()
	outputText := string(outputBytes)
	if runError != nil {
		testInstance.Fatalf("command failed: %v\n%s", runError, outputText)
	}
	return outputText
}

func requireGit(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}
