package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"libris/internal/clock"
	"libris/internal/models"
)

func printLoan(record models.LoanRecord) {
	state := "active"
	returned := "-"
	if record.ReturnDate != nil {
		state = "returned"
		returned = clock.FormatDateTime(*record.ReturnDate)
	}
	fmt.Printf("%s\titem=%s\tuser=%s\tloaned=%s\tdue=%s\treturned=%s\t[%s]\n",
		record.RecordID, record.ItemID, record.UserID,
		clock.FormatDateTime(record.LoanDate), clock.FormatDateTime(record.DueDate),
		returned, state)
}

func printLoans(records []models.LoanRecord) {
	if len(records) == 0 {
		fmt.Println("No loan records.")
		return
	}
	for _, record := range records {
		printLoan(record)
	}
}

func newBorrowCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "borrow <user-id> <item-id>",
		Short: "Borrow an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := (*a).loans.BorrowItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Borrowed. Loan %s due %s\n", record.RecordID, clock.FormatDate(record.DueDate))
			return nil
		},
	}
}

func newReturnCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "return <user-id> <item-id>",
		Short: "Return a borrowed item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).loans.ReturnItem(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Returned.")
			return nil
		},
	}
}

func newUserLoansCmd(a **app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "user-loans <user-id>",
		Short: "Show a user's active loans (or full history with --all)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				records []models.LoanRecord
				err     error
			)
			if all {
				records, err = (*a).loans.GetLoanHistoryForUser(cmd.Context(), args[0])
			} else {
				records, err = (*a).loans.GetActiveLoansForUser(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			printLoans(records)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include returned loans")
	return cmd
}

func newItemHistoryCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "item-history <item-id>",
		Short: "Show every loan ever taken on an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := (*a).loans.GetLoanHistoryForItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printLoans(records)
			return nil
		},
	}
}

func newCheckOverdueCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-overdue",
		Short: "Notify users holding overdue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notified, err := (*a).loans.ProcessOverdueItems(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Overdue check complete: %d notification(s) sent.\n", notified)
			return nil
		},
	}
}

func newSaveAllCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "save-all",
		Short: "Checkpoint in-memory data to CSV files (cached backend only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (*a).checkpointer == nil {
				return fmt.Errorf("%w: save-all is only available with the cached backend", models.ErrOperationFailed)
			}
			if err := (*a).checkpointer.PersistAllToFile(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Saved.")
			return nil
		},
	}
}
