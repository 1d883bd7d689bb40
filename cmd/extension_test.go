package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	// 1. Create a temporary directory with an rbk-hello script.
	tempDir := t.TempDir()
	script := fmt.Sprintf(`#!/bin/sh
echo "%s=$%s"
echo "%s=$%s"
echo "%s=$%s"
echo "args=$*"
exit 3
`, EnvConfigFile, EnvConfigFile, EnvStore, EnvStore, EnvVerbose, EnvVerbose)
	if err := os.WriteFile(filepath.Join(tempDir, "rbk-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write rbk-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	// 2. Set the global flags.
	expectedStore := filepath.Join(tempDir, "book.json")
	defer setFlags(t, "rbk.yaml", expectedStore, true)()

	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	// 3. Run the extension.
	found, code := RunExtension("hello", []string{"a", "b"})
	if !found {
		t.Fatal("rbk-hello was not found")
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}

	for _, expectedLine := range []string{
		EnvConfigFile + "=rbk.yaml",
		EnvStore + "=" + expectedStore,
		EnvVerbose + "=true",
		"args=a b",
	} {
		if !strings.Contains(out.String(), expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, out.String())
		}
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("nope", nil); found {
		t.Error("RunExtension(nope) found an extension")
	}
}
