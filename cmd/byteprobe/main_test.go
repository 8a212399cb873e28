package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// executeCmd runs the root command with args and returns its stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeInput writes data to a file in a temporary directory.
func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

// emptyConfig writes a configuration file without actions so that tests do
// not pick up a .byteprobe from the environment.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeInput(t, "byteprobe.yaml", []byte("hashes: [sha256]\n"))
}
