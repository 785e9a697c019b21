// Package gitops shells out to git so the ledger data directory can keep a
// history of every save. All functions are no-frills wrappers; callers decide
// whether version control is enabled at all.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a git repository at dir.
func Init(dir string) error {
	_, err := runGit(dir, "init")
	return err
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// CommitAll stages everything in dir and commits it with the given message
// and author. Returns the short commit hash.
func CommitAll(dir, message, authorName, authorEmail string) (string, error) {
	if _, err := runGit(dir, "add", "-A"); err != nil {
		return "", err
	}

	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)
	if _, err := runGit(dir, "commit", "-m", message, "--author", author); err != nil {
		return "", err
	}

	return runGit(dir, "rev-parse", "--short", "HEAD")
}
