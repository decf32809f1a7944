package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createTestRepo creates a temporary git repository and a Repository handle
// for it.
func createTestRepo(t *testing.T) (string, *gogit.Repository, *Repository) {
	t.Helper()

	tmpDir := t.TempDir()
	repo, err := gogit.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}

	reader, err := Open(Options{Path: tmpDir})
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}

	return tmpDir, repo, reader
}

// writeFile writes content to a path inside the repository worktree.
func writeFile(t *testing.T, repoPath, name, content string) {
	t.Helper()

	path := filepath.Join(repoPath, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

// addCommit stages the given files and commits them, returning the commit
// hash. Files must already exist in the worktree.
func addCommit(t *testing.T, repo *gogit.Repository, message string, files []string, when time.Time) plumbing.Hash {
	t.Helper()

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	for _, name := range files {
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}

	hash, err := w.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  when,
		},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	return hash
}

// commitFile writes a file and commits it in one step.
func commitFile(t *testing.T, repoPath string, repo *gogit.Repository, message, name, content string, when time.Time) plumbing.Hash {
	t.Helper()
	writeFile(t, repoPath, name, content)
	return addCommit(t, repo, message, []string{name}, when)
}
