package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes method files into a fresh temporary directory and
// returns its path. Names are relative paths (e.g. "methods/svm.json"),
// which creates the subdirectory structure as needed. Contents are
// unindented first.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(Unindent(content)), 0o644))
	}
	return root
}

// Unindent removes common leading whitespace from a multi-line string,
// allowing for readable, indented snippets in Go tests.
func Unindent(s string) string {
	lines := strings.Split(s, "\n")

	// Remove leading/trailing empty lines that are common with multi-line literals
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	// Find the minimum indentation of non-empty lines
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n") + "\n"
	}

	var b strings.Builder
	for _, line := range lines {
		if len(line) >= minIndent {
			b.WriteString(line[minIndent:])
		} else {
			b.WriteString(strings.TrimSpace(line))
		}
		b.WriteRune('\n')
	}
	return b.String()
}
