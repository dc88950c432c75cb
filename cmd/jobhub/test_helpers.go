package main

import (
	"os"
	"path/filepath"
	"testing"
)

func getBinaryPath(t *testing.T) string {
	binaryName := "jobhub"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/jobhub ./cmd/jobhub'", binaryPath)
	}

	return binaryPath
}
