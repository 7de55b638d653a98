package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var identityEmoji string

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Manage identities",
	Long: `Identities are who your habits make you ("Radiant Self-Carer",
"Grounded Athlete"). Every completion earns points for each identity
the habit is tagged with.`,
}

var identityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List identities",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		identities := svc.Identities()
		if len(identities) == 0 {
			fmt.Println("No identities yet. Adopt an archetype or 'glow identity add'.")
			return nil
		}
		for _, id := range identities {
			fmt.Printf("%s %-25s %d pts  %s\n", id.Emoji, id.Name, svc.IdentityScore(id.ID), id.ID)
		}
		return nil
	},
}

var identityAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an identity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := svc.AddIdentity(cmd.Context(), args[0], identityEmoji)
		if err != nil {
			return err
		}
		fmt.Printf("Added identity %s %s (%s)\n", id.Emoji, id.Name, id.ID)
		return nil
	},
}

func init() {
	identityAddCmd.Flags().StringVarP(&identityEmoji, "emoji", "e", "✨", "Emoji shown next to the identity")
	identityCmd.AddCommand(identityListCmd)
	identityCmd.AddCommand(identityAddCmd)
}
