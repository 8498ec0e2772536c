package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/semester"
)

func newOpensCmd() *cobra.Command {
	var day, clock string
	var starts []string

	cmd := &cobra.Command{
		Use:   "opens",
		Short: "Show when booking opens for one or more session starts",
		Example: `  shuttle opens --day friday --time 09:00 \
    --session-start 2025-03-03T18:00:00Z --session-start 2025-03-10T18:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDayFlag(day)
			if err != nil {
				return err
			}
			t, err := semester.ParseClock(clock)
			if err != nil {
				return fmt.Errorf("--time: %w", err)
			}
			policy := scheduling.Policy{Day: d, Time: t}

			out := cmd.OutOrStdout()
			for _, s := range starts {
				start, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return fmt.Errorf("--session-start must be RFC3339: %w", err)
				}
				opens := scheduling.BookingOpensAt(policy, start)
				fmt.Fprintf(out, "%s\t%s\n", start.UTC().Format(time.RFC3339), opens.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "weekday booking opens, e.g. friday")
	cmd.Flags().StringVar(&clock, "time", "", "time of day booking opens, HH:MM or HH:MM:SS (UTC)")
	cmd.Flags().StringArrayVar(&starts, "session-start", nil, "session start instant (RFC3339); repeatable")
	for _, name := range []string{"day", "time", "session-start"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}
