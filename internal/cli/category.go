package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryEmoji string

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		categories := svc.Categories()
		if len(categories) == 0 {
			fmt.Println("No categories yet.")
			return nil
		}
		for _, c := range categories {
			fmt.Printf("%s %s\n", c.Emoji, c.Name)
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := svc.AddCategory(cmd.Context(), args[0], categoryEmoji)
		if err != nil {
			return err
		}
		fmt.Printf("Added category %s %s\n", c.Emoji, c.Name)
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVarP(&categoryEmoji, "emoji", "e", "📌", "Emoji shown next to the category")
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
}
