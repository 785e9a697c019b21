package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/model"
	"github.com/splitbooks-dev/splitbooks/internal/query"
)

func newListCommand(resolve func() string) *cobra.Command {
	var (
		f        query.Filter
		txnType  string
		period   string
		calendar bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			f.Type = model.Type(txnType)

			// --period fills the date range unless explicit bounds were given.
			if period != "" && f.StartDate == "" && f.EndDate == "" {
				var w query.Window
				if calendar {
					w = query.CalendarWindow(query.Period(period), time.Now())
				} else {
					w = query.RollingWindow(query.Period(period), time.Now())
				}
				f.StartDate, f.EndDate = w.Start, w.End
			}

			txns := env.store.Filter(f)
			query.SortByDateDesc(txns)

			for _, t := range txns {
				printTransaction(t)
			}
			fmt.Printf("%d transaction(s)\n", len(txns))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.StartDate, "start", "", "start date (inclusive)")
	cmd.Flags().StringVar(&f.EndDate, "end", "", "end date (inclusive)")
	cmd.Flags().StringVar(&f.Description, "description", "", "description substring (case-insensitive)")
	cmd.Flags().StringVar(&f.WhoPaid, "who-paid", "", "exact payer")
	cmd.Flags().StringVar(&f.Account, "account", "", "exact sub-account")
	cmd.Flags().StringVar(&f.MethodOfPayment, "method", "", "exact payment method")
	cmd.Flags().StringVar(&f.ParentAccount, "parent", "", "exact parent category")
	cmd.Flags().StringVar(&f.Person, "person", "", "payer or beneficiary")
	cmd.Flags().StringVar(&txnType, "type", "", "expense or income")
	cmd.Flags().StringVar(&period, "period", "", "week, month, or quarter")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "use calendar week/month (90-day quarter) for --period")

	return cmd
}

func newShowCommand(resolve func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			txn, ok := env.store.Get(args[0])
			if !ok {
				return fmt.Errorf("no transaction with id %s", args[0])
			}

			fmt.Printf("ID:          %s\n", txn.ID)
			fmt.Printf("Date:        %s\n", txn.Date)
			fmt.Printf("Description: %s\n", txn.Description)
			fmt.Printf("Amount:      %s (%s)\n", txn.FormattedAmount(), txn.Type)
			fmt.Printf("Account:     %s (%s)\n", txn.Account, txn.ParentAccount)
			fmt.Printf("Paid by:     %s\n", txn.WhoPaid)
			fmt.Printf("For:         %s\n", txn.WhoWillUse)
			if n := len(txn.Beneficiaries()); n > 1 {
				fmt.Printf("Split:       %d ways, %s each\n", n, txn.SplitAmount().StringFixed(2))
			}
			fmt.Printf("Method:      %s\n", txn.MethodOfPayment)
			fmt.Printf("Created:     %s\n", txn.CreatedAt)
			fmt.Printf("Updated:     %s\n", txn.UpdatedAt)
			return nil
		},
	}
}
