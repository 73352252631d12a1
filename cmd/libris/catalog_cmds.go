package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"libris/internal/models"
)

func printItem(item models.Item) {
	authorName := "-"
	if item.Author != nil {
		authorName = item.Author.Name
	}
	fmt.Printf("%s\t%s\t%q by %s (%d)\tISBN %s\t%s\n",
		item.ID, item.Type, item.Title, authorName, item.PublicationYear, item.ISBN, item.Status)
}

func printItems(items []models.Item) {
	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}
	for _, item := range items {
		printItem(item)
	}
}

func newAddBookCmd(a **app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "add-book <title> <author-id> <author-name> <isbn> <year>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			var year int
			if _, err := fmt.Sscanf(args[4], "%d", &year); err != nil {
				return fmt.Errorf("%w: publication year %q is not a number", models.ErrInvalidArgument, args[4])
			}
			if id == "" {
				id = uuid.New().String()
			}
			if err := (*a).catalog.AddBook(cmd.Context(), id, args[0], args[1], args[2], args[3], year); err != nil {
				return err
			}
			fmt.Printf("Added book %q (%s)\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "item id (generated when omitted)")
	return cmd
}

func newFindItemCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "find-item <id>",
		Short: "Look up an item by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, found, err := (*a).catalog.FindItemByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("No item with id %q\n", args[0])
				return nil
			}
			printItem(item)
			return nil
		},
	}
}

func newSearchCmd(a **app) *cobra.Command {
	var byAuthor bool
	cmd := &cobra.Command{
		Use:   "search <title|author-id>",
		Short: "Find items by exact title, or by author id with --author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				items []models.Item
				err   error
			)
			if byAuthor {
				items, err = (*a).catalog.FindItemsByAuthor(cmd.Context(), args[0])
			} else {
				items, err = (*a).catalog.FindItemsByTitle(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byAuthor, "author", false, "treat the argument as an author id")
	return cmd
}

func newListItemsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-items",
		Short: "List the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := (*a).catalog.GetAllItems(cmd.Context())
			if err != nil {
				return err
			}
			printItems(items)
			return nil
		},
	}
}

func newRemoveItemCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item <id>",
		Short: "Remove an item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := (*a).catalog.RemoveItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("Removed item %s\n", args[0])
			} else {
				fmt.Printf("No item with id %q\n", args[0])
			}
			return nil
		},
	}
}
