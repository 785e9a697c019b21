package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/splitbooks-dev/splitbooks/internal/query"
	"github.com/splitbooks-dev/splitbooks/internal/stats"
)

func newStatsCommand(resolve func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Ledger statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			s := stats.Summarize(env.store)
			fmt.Printf("Transactions:      %d\n", s.TotalTransactions)
			fmt.Printf("Roommates:         %d\n", s.TotalRoommates)
			fmt.Printf("Sub-accounts:      %d\n", s.TotalSubAccounts)
			fmt.Printf("People owed money: %d\n", s.PositiveBalances)
			fmt.Printf("People who owe:    %d\n", s.NegativeBalances)
			fmt.Printf("Data file size:    %d bytes\n", s.DataFileSize)
			fmt.Printf("Last updated:      %s\n", s.LastUpdated)
			return nil
		},
	}

	cmd.AddCommand(newSpendingCommand(resolve), newCategoryCommand(resolve))
	return cmd
}

func newSpendingCommand(resolve func() string) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Expense totals by payer for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			s := stats.SpendingByPeriod(env.store.Transactions(), query.Period(period), time.Now())

			fmt.Printf("Total this %s: %s (%d transactions)\n", period, s.Total.StringFixed(2), s.TransactionCount)
			for _, person := range sortedKeys(s.ByPerson) {
				fmt.Printf("%-15s %10s\n", person, s.ByPerson[person].StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "month", "week, month, or quarter")
	return cmd
}

func newCategoryCommand(resolve func() string) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "category <parent>",
		Short: "Expense totals by sub-account for one parent category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(resolve())
			if err != nil {
				return err
			}

			s := stats.ParentAccountSpending(env.store.Transactions(), args[0], start, end)

			fmt.Printf("Total for %s: %s (%d transactions)\n", args[0], s.Total.StringFixed(2), s.TransactionCount)
			for _, sub := range sortedKeys(s.BySubAccount) {
				fmt.Printf("%-30s %10s\n", sub, s.BySubAccount[sub].StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start date (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (inclusive)")
	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
