package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/csvimport"
	"github.com/splitbooks-dev/splitbooks/internal/importer"
)

func newImportCommand(resolve func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from files",
	}
	cmd.AddCommand(newImportCSVCommand(resolve), newImportStatementCommand(resolve))
	return cmd
}

func newImportCSVCommand(resolve func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a transaction CSV (Date, Description, Amount, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rules := csvimport.Rules{
				Roommates:      env.store.Roommates(),
				PaymentMethods: env.store.PaymentMethods(),
				SubAccounts:    env.store.Taxonomy().AllSubAccounts(),
			}
			candidates, rowErrs := csvimport.Parse(f, rules)

			imported := 0
			for _, txn := range candidates {
				t := txn
				if err := env.store.Add(&t); err != nil {
					rowErrs = append(rowErrs, fmt.Sprintf("%s (%s): %v", t.Description, t.Date, err))
					continue
				}
				imported++
			}

			if imported > 0 {
				env.recordChange("import", fmt.Sprintf("%d rows from %s", imported, args[0]), "")
			}

			fmt.Printf("Imported %d transaction(s)\n", imported)
			if len(rowErrs) > 0 {
				fmt.Printf("%d row(s) skipped:\n  %s\n", len(rowErrs), strings.Join(rowErrs, "\n  "))
			}
			return nil
		},
	}
}

func newImportStatementCommand(resolve func() string) *cobra.Command {
	var format string
	var whoPaid string

	cmd := &cobra.Command{
		Use:   "statement <file>",
		Short: "Import a bank statement CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q (have: %s)",
					format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			candidates, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing statement: %w", err)
			}

			imported := 0
			var skipped []string
			for _, c := range candidates {
				txn := c.Transaction()
				if txn.WhoPaid == "" {
					txn.WhoPaid = whoPaid
				}
				if err := env.store.Add(&txn); err != nil {
					skipped = append(skipped, fmt.Sprintf("%s (%s): %v", txn.Description, txn.Date, err))
					continue
				}
				imported++
			}

			if imported > 0 {
				env.recordChange("import", fmt.Sprintf("%d statement rows from %s", imported, args[0]), "")
			}

			fmt.Printf("Imported %d transaction(s)\n", imported)
			if len(skipped) > 0 {
				fmt.Printf("%d row(s) skipped:\n  %s\n", len(skipped), strings.Join(skipped, "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "statement format")
	cmd.Flags().StringVar(&whoPaid, "who-paid", "", "payer to assign to statement rows")

	return cmd
}
