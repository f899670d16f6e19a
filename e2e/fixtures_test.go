//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory for candidate files and repositories
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteCandidates writes a line-per-candidate file into the workspace
func (tf *TUITestFramework) WriteCandidates(name string, lines ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	return path, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// CreateTestRepo creates a directory that discovery treats as a git repository
func (tf *TUITestFramework) CreateTestRepo(name string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	repoPath := filepath.Join(tf.workspace, "code", name)
	if err := os.MkdirAll(filepath.Join(repoPath, ".git"), 0755); err != nil {
		return "", err
	}
	return repoPath, nil
}
