package main

import (
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newReviewsCmd(root *rootOptions) *cobra.Command {
	var (
		input  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "List spaced repetition reviews for completed topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := root.now()
			if err != nil {
				return err
			}
			subjects, err := loadSubjects(input)
			if err != nil {
				return err
			}

			reviews := []domain.DailyTask{}
			for _, s := range subjects {
				tasks, err := engine().CalculateSubjectReviews(s, now)
				if err != nil {
					return err
				}
				reviews = append(reviews, tasks...)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), reviews)
			}
			return printTasks(cmd.OutOrStdout(), reviews)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "subjects.yaml", "subjects YAML file, - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the reviews as JSON")
	return cmd
}
