package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/domain/planner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// subjectsFile is the YAML input of generate and reviews.
type subjectsFile struct {
	Subjects []domain.Subject `yaml:"subjects"`
}

type rootOptions struct {
	today   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "studyplan",
		Short:         "Plan study time across subjects before their exams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().StringVar(&opts.today, "today", "", "plan as of this date (YYYY-MM-DD), default today")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newReviewsCmd(opts),
		newRescheduleCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

// now returns the as-of time for the engine.
func (o *rootOptions) now() (time.Time, error) {
	if o.today == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, o.today, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", o.today)
	}
	return t, nil
}

func loadSubjects(path string) ([]domain.Subject, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var in subjectsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range in.Subjects {
		for j, t := range in.Subjects[i].Topics {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("subject %q topic %q: %w", in.Subjects[i].DisplayName(), t.ID, err)
			}
			in.Subjects[i].Topics[j] = t
		}
	}
	return in.Subjects, nil
}

func engine() planner.Service {
	return planner.NewDefaultService()
}
