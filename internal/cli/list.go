package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/model"
)

var (
	listPage  string
	listToday bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits on a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		page, err := model.ParsePage(listPage)
		if err != nil {
			return err
		}

		var tasks []model.Task
		if listToday {
			tasks = svc.TodayTasks(page)
		} else {
			tasks = svc.PageTasks(page)
		}
		if len(tasks) == 0 {
			fmt.Printf("No habits on the %s page.\n", page)
			return nil
		}

		byCategory := map[string][]model.Task{}
		for _, t := range tasks {
			byCategory[t.Category] = append(byCategory[t.Category], t)
		}
		names := make([]string, 0, len(byCategory))
		for name := range byCategory {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			header := name
			if header == "" {
				header = "Uncategorized"
			}
			fmt.Printf("\n%s\n", header)
			for _, t := range byCategory[name] {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				when := "all day"
				if !t.Schedule.AllDay {
					when = t.Schedule.Time
				}
				fmt.Printf("  [%s] %s  (%s, %d day(s)/week)  %s\n",
					mark, t.Title, when, len(t.Weekdays), t.ID)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listPage, "page", "p", "daily", "Page (daily or work)")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Only habits scheduled for today")
}
