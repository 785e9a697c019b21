package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/csvimport"
	"github.com/splitbooks-dev/splitbooks/internal/ledger"
	"github.com/splitbooks-dev/splitbooks/internal/model"
)

func newUpdateCommand(resolve func() string) *cobra.Command {
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
		Use:   "update <id>",
		Short: "Update fields of an existing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			// Only flags the user actually set become part of the update.
			var u ledger.Update
			if cmd.Flags().Changed("date") {
				u.Date = &date
			}
			if cmd.Flags().Changed("description") {
				u.Description = &desc
			}
			if cmd.Flags().Changed("amount") {
				amt, err := csvimport.ParseAmount(amount)
				if err != nil {
					return err
				}
				u.Amount = &amt
			}
			if cmd.Flags().Changed("account") {
				u.Account = &account
			}
			if cmd.Flags().Changed("parent") {
				u.ParentAccount = &parent
			}
			if cmd.Flags().Changed("who-paid") {
				u.WhoPaid = &whoPaid
			}
			if cmd.Flags().Changed("who-will-use") {
				u.WhoWillUse = &whoWillUse
			}
			if cmd.Flags().Changed("method") {
				u.MethodOfPayment = &method
			}
			if cmd.Flags().Changed("type") {
				t := model.Type(txnType)
				u.Type = &t
			}

			id := args[0]
			if err := env.store.UpdateTransaction(id, u); err != nil {
				return fmt.Errorf("updating %s: %w", id, err)
			}

			env.recordChange("update", "", id)
			fmt.Printf("Updated %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&desc, "description", "", "description")
	cmd.Flags().StringVar(&amount, "amount", "", "amount")
	cmd.Flags().StringVar(&account, "account", "", "sub-account or parent category")
	cmd.Flags().StringVar(&parent, "parent", "", "parent category")
	cmd.Flags().StringVar(&whoPaid, "who-paid", "", "payer")
	cmd.Flags().StringVar(&whoWillUse, "who-will-use", "", "comma-separated beneficiaries")
	cmd.Flags().StringVar(&method, "method", "", "payment method")
	cmd.Flags().StringVar(&txnType, "type", "", "expense or income")

	return cmd
}

func newDeleteCommand(resolve func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			id := args[0]
			if err := env.store.Delete(id); err != nil {
				return fmt.Errorf("deleting %s: %w", id, err)
			}

			env.recordChange("delete", "", id)
			fmt.Printf("Deleted %s\n", id)
			return nil
		},
	}
}
