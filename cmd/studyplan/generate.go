package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		input  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a day-by-day plan from a subjects file",
		Example: `  studyplan generate --input subjects.yaml
  studyplan generate --input subjects.yaml --today 2025-06-15 --json > plan.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := root.now()
			if err != nil {
				return err
			}
			subjects, err := loadSubjects(input)
			if err != nil {
				return err
			}

			plan, err := engine().GenerateSchedule(subjects, now)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			return printPlan(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "subjects.yaml", "subjects YAML file, - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTasks(w io.Writer, tasks []domain.DailyTask) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSUBJECT\tTOPIC\tHOURS\tDIFFICULTY\tDONE\tID")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			t.Date, t.SubjectName, t.TopicTitle, t.EstimatedHours, t.Difficulty, done, t.ID)
	}
	return tw.Flush()
}

func printPlan(w io.Writer, plan *domain.SchedulePlan) error {
	if err := printTasks(w, plan.Tasks); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal %.2fh over %d days (%.2fh/day available)\n",
		plan.TotalHours, plan.DaysUntilExams, plan.AverageDailyHours)
	if plan.HasOverrun() {
		fmt.Fprintf(w, "Warning: %.2fh do not fit before the exams\n", plan.UnscheduledHours)
	}

	if len(plan.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range plan.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}
