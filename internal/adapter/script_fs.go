package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "remock.dev/pkg/remock/internal/model"
)

// ScriptFS abstracts class-script file access for the workflow.
type ScriptFS interface {
	ReadScript(path m.Path) (name, src string, err error)
}

// LocalScriptFS reads scripts from the local filesystem.
type LocalScriptFS struct{}

// NewLocalScriptFS constructs a LocalScriptFS.
func NewLocalScriptFS() *LocalScriptFS {
	return &LocalScriptFS{}
}

// ReadScript returns the script's display name (base name without extension)
// and its source text.
func (a *LocalScriptFS) ReadScript(path m.Path) (string, string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", "", fmt.Errorf("read script: %w", err)
	}

	base := filepath.Base(string(path))
	name := base[:len(base)-len(filepath.Ext(base))]

	return name, string(data), nil
}
