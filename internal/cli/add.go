package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/habit"
	"github.com/existflow/glow/internal/model"
)

var (
	addPage      string
	addCategory  string
	addTime      string
	addAllDay    bool
	addRecur     string
	addDays      []string
	addToday     bool
	addIdentity  []string
	addTwoMinute string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new habit",
	Long: `Add a new habit to the daily or work page.

Recurrence controls which days of the week the habit appears on:
  none    one day, from --on (or --today)
  daily   every day of the week
  twice   two days, from --on
  thrice  three days, from --on

Examples:
  glow add "Morning skincare" --category "Beauty Routine" --recur daily --time 08:00
  glow add "Gym session" --recur thrice --on monday,wednesday,friday
  glow add "Water the plants" --today`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		page, err := model.ParsePage(addPage)
		if err != nil {
			return err
		}

		rec, err := buildRecurrence(addRecur, addDays, addToday)
		if err != nil {
			return err
		}

		sched := model.AllDay()
		if !addAllDay && addTime != "" {
			sched = model.At(addTime)
		}

		task, err := svc.CreateTask(cmd.Context(), habit.NewTaskInput{
			Title:            args[0],
			Category:         addCategory,
			Page:             page,
			Recurrence:       rec,
			Schedule:         sched,
			IdentityTags:     addIdentity,
			TwoMinuteVersion: addTwoMinute,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added %q to the %s page (%d day(s) a week)\n",
			task.Title, task.Page, len(task.Weekdays))
		return nil
	},
}

// buildRecurrence maps the --recur/--on/--today flags onto a
// recurrence value. --today wins over --on for single-day habits.
func buildRecurrence(kind string, days []string, today bool) (model.Recurrence, error) {
	picked, err := parseWeekdays(days)
	if err != nil {
		return model.Recurrence{}, err
	}

	switch model.RecurrenceKind(kind) {
	case model.RecurrenceNone:
		if today {
			return model.Recurrence{Kind: model.RecurrenceNone, Day: habit.Today}, nil
		}
		if len(picked) != 1 {
			return model.Recurrence{}, fmt.Errorf("recurrence none needs exactly one --on day (or --today)")
		}
		return model.Recurrence{Kind: model.RecurrenceNone, Day: picked[0]}, nil
	case model.RecurrenceDaily:
		return model.Recurrence{Kind: model.RecurrenceDaily}, nil
	case model.RecurrenceTwice, model.RecurrenceThrice:
		return model.Recurrence{Kind: model.RecurrenceKind(kind), Days: picked}, nil
	default:
		return model.Recurrence{}, fmt.Errorf("unknown recurrence %q (want none, daily, twice or thrice)", kind)
	}
}

func parseWeekdays(days []string) ([]model.Weekday, error) {
	var out []model.Weekday
	for _, raw := range days {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			// Accept any casing on the command line; the model
			// parser stays strict about canonical names.
			part = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
			d, err := model.ParseWeekday(part)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func init() {
	addCmd.Flags().StringVarP(&addPage, "page", "p", "daily", "Page (daily or work)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name")
	addCmd.Flags().StringVarP(&addTime, "time", "t", "", "Scheduled time (HH:MM)")
	addCmd.Flags().BoolVar(&addAllDay, "all-day", false, "No fixed time")
	addCmd.Flags().StringVarP(&addRecur, "recur", "r", "none", "Recurrence (none, daily, twice, thrice)")
	addCmd.Flags().StringSliceVar(&addDays, "on", nil, "Days of the week (e.g. monday,thursday)")
	addCmd.Flags().BoolVar(&addToday, "today", false, "Schedule for today only")
	addCmd.Flags().StringSliceVarP(&addIdentity, "identity", "i", nil, "Identity IDs this habit reinforces")
	addCmd.Flags().StringVar(&addTwoMinute, "two-minute", "", "Two-minute fallback version")
}
