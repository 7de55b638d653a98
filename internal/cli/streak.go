package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/model"
)

var streakPage string

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current completion streak for a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		page, err := model.ParsePage(streakPage)
		if err != nil {
			return err
		}

		n := svc.CurrentStreak(page)
		switch n {
		case 0:
			fmt.Printf("No streak yet on the %s page. Complete every habit today to start one.\n", page)
		case 1:
			fmt.Printf("1 day streak on the %s page. Keep going!\n", page)
		default:
			fmt.Printf("%d day streak on the %s page 🔥\n", n, page)
		}
		return nil
	},
}

func init() {
	streakCmd.Flags().StringVarP(&streakPage, "page", "p", "daily", "Page (daily or work)")
}
