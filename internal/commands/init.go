package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/config"
	"github.com/splitbooks-dev/splitbooks/internal/gitops"
	"github.com/splitbooks-dev/splitbooks/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var household string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, household, useGit)
		},
	}

	cmd.Flags().StringVar(&household, "household", "", "household name (required)")
	_ = cmd.MarkFlagRequired("household")
	cmd.Flags().BoolVar(&useGit, "git", false, "track the data directory with git")

	return cmd
}

func runInit(dir, household string, useGit bool) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	cfg := config.Default(household)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the data file with the default taxonomy and payment methods so
	// the first 'add' has something to validate against.
	store := ledger.Open(filepath.Join(dir, cfg.Ledger.DataFile))
	if err := store.Save(); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	if useGit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		hash, err := gitops.CommitAll(dir, "init: "+household, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Printf("Initialized ledger for %s at %s (%s)\n", household, dir, hash)
		return nil
	}

	fmt.Printf("Initialized ledger for %s at %s\n", household, dir)
	return nil
}
