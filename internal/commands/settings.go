package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAccountCommand(resolve func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the account hierarchy",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the account hierarchy",
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := openEnv(resolve())
				if err != nil {
					return err
				}
				tax := env.store.Taxonomy()
				for _, parent := range tax.Parents() {
					fmt.Printf("%s: %s\n", parent, strings.Join(tax.SubAccounts(parent), ", "))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add-parent <name>",
			Short: "Add a parent category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "add parent account", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.AddParentAccount(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove-parent <name>",
			Short: "Remove a parent category and its sub-accounts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "remove parent account", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.RemoveParentAccount(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "add <parent> <name>",
			Short: "Add a sub-account under a parent category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "add sub-account", args[1], func(env *ledgerEnv) (bool, error) {
					return env.store.AddSubAccount(args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <parent> <name>",
			Short: "Remove a sub-account from a parent category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "remove sub-account", args[1], func(env *ledgerEnv) (bool, error) {
					return env.store.RemoveSubAccount(args[0], args[1])
				})
			},
		},
	)

	return cmd
}

func newRoommateCommand(resolve func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roommate",
		Short: "Manage roommates and the default person",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show roommates",
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := openEnv(resolve())
				if err != nil {
					return err
				}
				defaultPerson := env.store.DefaultPerson()
				for _, r := range env.store.Roommates() {
					if r == defaultPerson {
						fmt.Printf("%s (default)\n", r)
					} else {
						fmt.Println(r)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a roommate",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "add roommate", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.AddRoommate(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a roommate",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "remove roommate", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.RemoveRoommate(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "set-default <name>",
			Short: "Set the default person (the primary ledger owner)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := openEnv(resolve())
				if err != nil {
					return err
				}
				if err := env.store.SetDefaultPerson(args[0]); err != nil {
					return err
				}
				env.recordChange("set default person", args[0], "")
				fmt.Printf("Default person is now %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

func newMethodCommand(resolve func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "method",
		Short: "Manage payment methods",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show payment methods",
			RunE: func(cmd *cobra.Command, args []string) error {
				env, err := openEnv(resolve())
				if err != nil {
					return err
				}
				for _, m := range env.store.PaymentMethods() {
					fmt.Println(m)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a payment method",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "add payment method", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.AddPaymentMethod(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a payment method",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetMutation(resolve, "remove payment method", args[0], func(env *ledgerEnv) (bool, error) {
					return env.store.RemovePaymentMethod(args[0])
				})
			},
		},
	)

	return cmd
}

// runSetMutation handles the shared shape of the set-style mutators: open,
// mutate, report whether anything changed, audit when it did.
func runSetMutation(resolve func() string, action, name string, op func(*ledgerEnv) (bool, error)) error {
	env, err := openEnv(resolve())
	if err != nil {
		return err
	}

	changed, err := op(env)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No change")
		return nil
	}

	env.recordChange(action, name, "")
	fmt.Println("Done")
	return nil
}
