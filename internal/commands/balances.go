package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/balance"
	"github.com/splitbooks-dev/splitbooks/internal/query"
)

func newBalancesCommand(resolve func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show each person's net balance across the whole ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			balances := balance.Calculate(env.store.Transactions())

			people := make([]string, 0, len(balances))
			for p := range balances {
				people = append(people, p)
			}
			sort.Strings(people)

			for _, p := range people {
				b := balances[p]
				switch {
				case b.IsPositive():
					fmt.Printf("%-15s %10s  is owed\n", p, b.StringFixed(2))
				case b.IsNegative():
					fmt.Printf("%-15s %10s  owes\n", p, b.Abs().StringFixed(2))
				default:
					fmt.Printf("%-15s %10s  settled\n", p, b.StringFixed(2))
				}
			}
			return nil
		},
	}
}

func newBreakdownCommand(resolve func() string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Per-roommate spent/owes/owed totals, excluding the default person",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			txns := env.store.Filter(query.Filter{StartDate: start, EndDate: end})
			breakdown := balance.RoommateBreakdown(txns, env.store.Roommates(), env.store.DefaultPerson())

			names := make([]string, 0, len(breakdown))
			for n := range breakdown {
				names = append(names, n)
			}
			sort.Strings(names)

			fmt.Printf("%-15s %10s %10s %10s %10s\n", "roommate", "spent", "owes", "owed", "balance")
			for _, n := range names {
				r := breakdown[n]
				fmt.Printf("%-15s %10s %10s %10s %10s\n",
					n, r.Spent.StringFixed(2), r.Owes.StringFixed(2), r.Owed.StringFixed(2), r.Balance.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (inclusive)")

	return cmd
}

func newOverviewCommand(resolve func() string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Spending and income totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			txns := env.store.Filter(query.Filter{StartDate: start, EndDate: end})
			o := balance.SpendingOverview(txns)

			fmt.Printf("Spent:  %s\n", o.TotalSpent.StringFixed(2))
			fmt.Printf("Income: %s\n", o.TotalIncome.StringFixed(2))
			fmt.Printf("Net:    %s\n", o.NetAmount.StringFixed(2))
			fmt.Printf("Transactions: %d\n", o.TransactionCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (inclusive)")

	return cmd
}
