package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"libris/internal/models"
)

func printUser(u models.User) {
	fmt.Printf("%s\t%s\n", u.ID, u.Name)
}

func newAddUserCmd(a **app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "add-user <name>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.New().String()
			}
			if err := (*a).users.AddUser(cmd.Context(), id, args[0]); err != nil {
				return err
			}
			fmt.Printf("Added user %s (%s)\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id (generated when omitted)")
	return cmd
}

func newFindUserCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "find-user <id>",
		Short: "Look up a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, found, err := (*a).users.FindUserByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("No user with id %q\n", args[0])
				return nil
			}
			printUser(user)
			return nil
		},
	}
}

func newListUsersCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List all registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := (*a).users.GetAllUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("No users registered.")
				return nil
			}
			for _, u := range users {
				printUser(u)
			}
			return nil
		},
	}
}

func newUpdateUserCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-user <id> <new-name>",
		Short: "Rename a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).users.UpdateUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Updated user %s\n", args[0])
			return nil
		},
	}
}

func newRemoveUserCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-user <id>",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := (*a).users.RemoveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("Removed user %s\n", args[0])
			} else {
				fmt.Printf("No user with id %q\n", args[0])
			}
			return nil
		},
	}
}
