package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/csvimport"
	"github.com/splitbooks-dev/splitbooks/internal/model"
)

func newAddCommand(resolve func() string) *cobra.Command {
	var (
		date       string
		desc       string
		amount     string
		account    string
		parent     string
		whoPaid    string
		whoWillUse string
		method     string
		txnType    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			amt, err := csvimport.ParseAmount(amount)
			if err != nil {
				return err
			}

			txn := model.Transaction{
				Date:            date,
				Description:     desc,
				Amount:          amt,
				Account:         account,
				ParentAccount:   parent,
				WhoPaid:         whoPaid,
				WhoWillUse:      whoWillUse,
				MethodOfPayment: method,
				Type:            model.Type(txnType),
			}
			if err := env.store.Add(&txn); err != nil {
				return fmt.Errorf("adding transaction: %w", err)
			}

			env.recordChange("add", txn.Description+" "+txn.FormattedAmount(), txn.ID)

			fmt.Printf("Added %s\n", txn.ID)
			if n := len(txn.Beneficiaries()); n > 1 {
				fmt.Printf("Split %d ways: %s each\n", n, txn.SplitAmount().StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(model.DateFormat), "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "description", "", "what the money was for (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 42.50 or $1,234.56 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&account, "account", "", "sub-account or parent category")
	cmd.Flags().StringVar(&parent, "parent", "", "parent category")
	cmd.Flags().StringVar(&whoPaid, "who-paid", "", "payer (default: configured default person)")
	cmd.Flags().StringVar(&whoWillUse, "who-will-use", "", "comma-separated beneficiaries (default: payer)")
	cmd.Flags().StringVar(&method, "method", "", "payment method (default: first configured)")
	cmd.Flags().StringVar(&txnType, "type", string(model.TypeExpense), "expense or income")

	return cmd
}
