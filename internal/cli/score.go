package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show today's glow score and per-identity scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Printf("Daily glow score: %d\n", svc.DailyGlowScore())

		identities := svc.Identities()
		if len(identities) == 0 {
			return nil
		}
		fmt.Println("\nIdentity scores (all time):")
		for _, id := range identities {
			fmt.Printf("  %s %-25s %d\n", id.Emoji, id.Name, svc.IdentityScore(id.ID))
		}
		return nil
	},
}
