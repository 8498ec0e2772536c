package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shuttle/internal/domain/weekday"
)

const dateLayout = "2006-01-02"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shuttle",
		Short: "shuttle schedules a badminton club's weekly game sessions",
		Long: `shuttle turns semesters and weekly game slots into dated sessions and
works out when booking opens for each one. Run "shuttle serve" for the
JSON API, or use "dates" and "opens" to try the calculations directly.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newDatesCmd(), newOpensCmd())
	return root
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", name, err)
	}
	return t, nil
}

func parseDayFlag(v string) (weekday.Weekday, error) {
	d, err := weekday.Parse(v)
	if err != nil {
		return "", fmt.Errorf("--day: %w", err)
	}
	return d, nil
}
