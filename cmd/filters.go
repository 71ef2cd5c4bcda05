package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/timeparse"
)

// rangeFlagSet holds the date range flags shared by list, report, and
// export.
type rangeFlagSet struct {
	from      string
	to        string
	today     bool
	yesterday bool
	week      bool
	month     bool
}

func (f *rangeFlagSet) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Range start (natural language or ISO date)")
	cmd.Flags().StringVar(&f.to, "to", "", "Range end")
	cmd.Flags().BoolVar(&f.today, "today", false, "Today only")
	cmd.Flags().BoolVar(&f.yesterday, "yesterday", false, "Yesterday only")
	cmd.Flags().BoolVar(&f.week, "week", false, "The current week")
	cmd.Flags().BoolVar(&f.month, "month", false, "The current month")
}

func (f *rangeFlagSet) resolve(weekStart time.Weekday) (timeparse.DateRange, error) {
	now := time.Now()
	flags := timeparse.RangeFlags{
		Today:     f.today,
		Yesterday: f.yesterday,
		Week:      f.week,
		Month:     f.month,
	}
	if f.from != "" {
		from, err := timeparse.ParseDate(f.from, now)
		if err != nil {
			return timeparse.DateRange{}, err
		}
		flags.From = &from
	}
	if f.to != "" {
		to, err := timeparse.ParseDate(f.to, now)
		if err != nil {
			return timeparse.DateRange{}, err
		}
		flags.To = &to
	}
	return timeparse.ResolveRange(flags, weekStart, now), nil
}
