package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archetypeCmd = &cobra.Command{
	Use:   "archetype",
	Short: "Browse and adopt archetypes",
	Long: `Archetypes are starter bundles: a set of identities plus template
habits that reinforce them. Adopting one is the fastest way to set up
a new board.`,
}

var archetypeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available archetypes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		archetypes := svc.Archetypes()
		if len(archetypes) == 0 {
			fmt.Println("No archetypes available.")
			return nil
		}
		for _, a := range archetypes {
			fmt.Printf("%s %s (%s)\n", a.Emoji, a.Name, a.ID)
			if a.Description != "" {
				fmt.Printf("   %s\n", a.Description)
			}
			for _, name := range a.DefaultIdentities {
				fmt.Printf("   identity: %s\n", name)
			}
			for _, h := range a.TemplateHabits {
				fmt.Printf("   habit:    %s\n", h.Title)
			}
			fmt.Println()
		}
		return nil
	},
}

var archetypeAdoptCmd = &cobra.Command{
	Use:   "adopt <archetype-id>",
	Short: "Adopt an archetype's identities and template habits",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := svc.AdoptArchetype(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Adopted: %d identity(ies), %d habit(s)\n", len(res.Identities), len(res.Tasks))
		for _, id := range res.Identities {
			fmt.Printf("  + %s %s\n", id.Emoji, id.Name)
		}
		for _, t := range res.Tasks {
			fmt.Printf("  + %s\n", t.Title)
		}
		for _, name := range res.Skipped {
			fmt.Printf("  ! skipped %s\n", name)
		}
		return nil
	},
}

func init() {
	archetypeCmd.AddCommand(archetypeListCmd)
	archetypeCmd.AddCommand(archetypeAdoptCmd)
}
