// Package commands wires the ledger engine to the splitbooks CLI.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/auditlog"
	"github.com/splitbooks-dev/splitbooks/internal/buildinfo"
	"github.com/splitbooks-dev/splitbooks/internal/config"
	"github.com/splitbooks-dev/splitbooks/internal/gitops"
	"github.com/splitbooks-dev/splitbooks/internal/ledger"
	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// envDir overrides the data directory when the --dir flag is not given.
const envDir = "SPLITBOOKS_DIR"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "splitbooks",
		Short:   "Shared-expense ledger for households",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "data directory (default $SPLITBOOKS_DIR or .)")

	resolve := func() string {
		if dir != "" {
			return dir
		}
		if env := os.Getenv(envDir); env != "" {
			return env
		}
		return "."
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(resolve),
		newUpdateCommand(resolve),
		newDeleteCommand(resolve),
		newListCommand(resolve),
		newShowCommand(resolve),
		newBalancesCommand(resolve),
		newBreakdownCommand(resolve),
		newOverviewCommand(resolve),
		newStatsCommand(resolve),
		newImportCommand(resolve),
		newAccountCommand(resolve),
		newRoommateCommand(resolve),
		newMethodCommand(resolve),
	)

	return rootCmd
}

// ledgerEnv bundles what most subcommands need: the resolved data directory,
// its config, and the opened store.
type ledgerEnv struct {
	dir   string
	cfg   *config.Config
	store *ledger.Store
}

func openEnv(dir string) (*ledgerEnv, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no %s in %s (run 'splitbooks init' first)", config.FileName, absDir)
	}
	if err != nil {
		return nil, err
	}

	store := ledger.Open(filepath.Join(absDir, cfg.Ledger.DataFile))
	return &ledgerEnv{dir: absDir, cfg: cfg, store: store}, nil
}

// recordChange appends an audit entry and, when enabled, commits the data
// directory. Audit or commit trouble is reported but never fails the
// operation that already persisted.
func (e *ledgerEnv) recordChange(action, details, txnID string) {
	entry := auditlog.Entry{
		Timestamp:     time.Now(),
		Actor:         e.cfg.Git.AuthorName,
		Action:        action,
		Details:       details,
		TransactionID: txnID,
	}
	if err := auditlog.Append(e.dir, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}

	if e.cfg.Git.AutoCommit && gitops.IsRepo(e.dir) {
		msg := "ledger: " + action
		if details != "" {
			msg += " " + details
		}
		if _, err := gitops.CommitAll(e.dir, msg, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
			fmt.Fprintf(os.Stderr, "warning: git commit: %v\n", err)
		}
	}
}

func printTransaction(t model.Transaction) {
	users := t.WhoWillUse
	if users == "" {
		users = "-"
	}
	fmt.Printf("%s  %10s  %-30s  paid by %-10s for %-20s  %s\n",
		t.Date, t.FormattedAmount(), t.Description, t.WhoPaid, users, t.ID)
}
