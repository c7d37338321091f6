package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/domain/planner"
	"github.com/spf13/cobra"
)

func newRescheduleCmd(root *rootOptions) *cobra.Command {
	var (
		planPath string
		missed   []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Spread missed tasks of a saved JSON plan over the remaining days",
		Long: `Reschedule reads a plan written by "generate --json", removes the missed
tasks and adds their hours evenly to the tasks dated after today.
Without --missed every uncompleted task dated before today counts as missed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := root.now()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(planPath)
			if err != nil {
				return err
			}
			var plan domain.SchedulePlan
			if err := json.Unmarshal(data, &plan); err != nil {
				return fmt.Errorf("failed to parse %s: %w", planPath, err)
			}

			missedTasks, err := selectMissed(&plan, missed, now)
			if err != nil {
				return err
			}

			out, err := engine().RescheduleAfterMissedTasks(&plan, missedTasks, now)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d missed task(s)\n\n", len(missedTasks))
			return printPlan(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "plan.json", "plan JSON file")
	cmd.Flags().StringSliceVar(&missed, "missed", nil, "IDs of missed tasks, comma separated")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	return cmd
}

// selectMissed resolves the given task IDs against the plan, or detects
// overdue tasks when there are none.
func selectMissed(plan *domain.SchedulePlan, ids []string, now time.Time) ([]domain.DailyTask, error) {
	if len(ids) == 0 {
		return planner.MissedTasks(plan, now), nil
	}

	missed := make([]domain.DailyTask, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid task ID %q", raw)
		}
		i := plan.FindTask(id)
		if i < 0 {
			return nil, fmt.Errorf("task %s is not part of the plan", id)
		}
		missed = append(missed, plan.Tasks[i])
	}
	return missed, nil
}
