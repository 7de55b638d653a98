package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/habit"
)

var (
	doneTwoMinute bool
	doneReason    string
	doneSkip      bool
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a habit's completion",
	Long: `Toggle a habit. Completing a pending habit records points for every
identity it reinforces. Uncompleting a completed habit needs a reason:

  --two-minute   you did the reduced version (stays complete)
  --reason TEXT  it happened, with a caveat on record (stays complete)
  --skip         it did not happen today (returns to pending)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		id := args[0]
		res, err := svc.Toggle(cmd.Context(), id)
		if err != nil {
			return err
		}
		if res.Friction == nil {
			fmt.Printf("Completed (+%d point(s) per identity). Daily glow score: %d\n",
				habit.PointsPerCompletion, svc.DailyGlowScore())
			return nil
		}

		choice, reason, err := frictionFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := svc.ResolveFriction(cmd.Context(), id, choice, reason); err != nil {
			return err
		}
		switch choice {
		case habit.FrictionTwoMinute:
			fmt.Printf("%q logged as the two-minute version; it stays complete.\n", res.Friction.Task.Title)
		case habit.FrictionCompletedWithReason:
			fmt.Printf("%q stays complete, reason recorded.\n", res.Friction.Task.Title)
		case habit.FrictionSkipped:
			fmt.Printf("%q skipped today and returned to pending.\n", res.Friction.Task.Title)
		}
		return nil
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip <task-id>",
	Short: "Skip a completed habit for today",
	Long:  "Shorthand for 'glow done <task-id> --skip'.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		id := args[0]
		res, err := svc.Toggle(cmd.Context(), id)
		if err != nil {
			return err
		}
		if res.Friction == nil {
			return fmt.Errorf("task was pending; 'skip' only applies to completed habits")
		}
		if err := svc.ResolveFriction(cmd.Context(), id, habit.FrictionSkipped, doneReason); err != nil {
			return err
		}
		fmt.Printf("%q skipped today and returned to pending.\n", res.Friction.Task.Title)
		return nil
	},
}

// frictionFromFlags maps the done command's flags onto a friction
// choice. Exactly one of the three must be given; there is no silent
// uncomplete.
func frictionFromFlags(cmd *cobra.Command) (habit.FrictionChoice, string, error) {
	set := 0
	if doneTwoMinute {
		set++
	}
	if doneReason != "" {
		set++
	}
	if doneSkip {
		set++
	}
	if set == 0 {
		return 0, "", fmt.Errorf("this habit is already complete; uncompleting needs --two-minute, --reason or --skip")
	}
	if set > 1 {
		return 0, "", fmt.Errorf("pick one of --two-minute, --reason or --skip")
	}
	switch {
	case doneTwoMinute:
		return habit.FrictionTwoMinute, "", nil
	case doneSkip:
		return habit.FrictionSkipped, "", nil
	default:
		return habit.FrictionCompletedWithReason, doneReason, nil
	}
}

func init() {
	doneCmd.Flags().BoolVar(&doneTwoMinute, "two-minute", false, "Record the two-minute version")
	doneCmd.Flags().StringVar(&doneReason, "reason", "", "Record a reason, keeping the habit complete")
	doneCmd.Flags().BoolVar(&doneSkip, "skip", false, "Record a skip, returning the habit to pending")
	skipCmd.Flags().StringVar(&doneReason, "reason", "", "Optional note on why today was skipped")
}
