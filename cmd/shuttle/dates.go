package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shuttle/internal/domain/scheduling"
	"shuttle/internal/domain/weekday"
)

func newDatesCmd() *cobra.Command {
	var start, end, breakStart, breakEnd, day string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List the session dates of a weekly slot within a semester",
		Example: `  shuttle dates --start 2025-03-01 --end 2025-04-05 \
    --break-start 2025-03-15 --break-end 2025-03-21 --day monday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseDayFlag(day)
			if err != nil {
				return err
			}
			var w scheduling.Window
			for _, f := range []struct {
				name, value string
				dst         *time.Time
			}{
				{"start", start, &w.Start},
				{"end", end, &w.End},
				{"break-start", breakStart, &w.BreakStart},
				{"break-end", breakEnd, &w.BreakEnd},
			} {
				if *f.dst, err = parseDateFlag(f.name, f.value); err != nil {
					return err
				}
			}
			if w.BreakStart.IsZero() != w.BreakEnd.IsZero() {
				return errors.New("--break-start and --break-end must be given together")
			}

			out := cmd.OutOrStdout()
			for _, d := range scheduling.SessionDates(target, w) {
				fmt.Fprintf(out, "%s %s\n", d.Format(dateLayout), weekday.Of(d))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day of the semester (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day of the semester (YYYY-MM-DD)")
	cmd.Flags().StringVar(&breakStart, "break-start", "", "first day of the break (YYYY-MM-DD)")
	cmd.Flags().StringVar(&breakEnd, "break-end", "", "last day of the break (YYYY-MM-DD)")
	cmd.Flags().StringVar(&day, "day", "", "weekday of the slot, e.g. monday")
	for _, name := range []string{"start", "end", "day"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}
