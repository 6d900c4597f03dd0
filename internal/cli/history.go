package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/journal"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize past work intervals and breaks",
	Long:  `Summarize the transition journal by day, week, or month.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringP("period", "P", "daily", "Report period (daily, weekly, monthly)")
	historyCmd.Flags().String("session", "", "Filter by session ID")
	historyCmd.Flags().Bool("detailed", false, "Show individual transitions")
	historyCmd.Flags().Int("limit", 50, "Maximum transitions shown with --detailed")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	periodName, _ := cmd.Flags().GetString("period")
	session, _ := cmd.Flags().GetString("session")
	detailed, _ := cmd.Flags().GetBool("detailed")
	limit, _ := cmd.Flags().GetInt("limit")

	period, err := model.ParseHistoryPeriod(periodName)
	if err != nil {
		return err
	}

	store, err := journal.NewSQLite(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	start, end := model.PeriodBounds(period, time.Now())
	filter := model.HistoryFilter{
		SessionID: session,
		StartTime: start,
		EndTime:   end,
	}

	summary, err := store.Summarize(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("summarize history: %w", err)
	}

	out := cmd.OutOrStdout()
	printSummary(out, period, start, end, summary)

	if detailed {
		filter.Limit = limit
		records, err := store.QueryTransitions(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("query transitions: %w", err)
		}
		printTransitions(out, records)
	}

	return nil
}

func printSummary(out io.Writer, period model.HistoryPeriod, start, end time.Time, summary *model.HistorySummary) {
	fmt.Fprintf(out, "=== Tomatina History (%s) ===\n", period)
	fmt.Fprintf(out, "Period: %s to %s\n\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	fmt.Fprintf(out, "Completed intervals: %d\n", summary.CompletedIntervals)
	fmt.Fprintf(out, "Ended early:         %d\n", summary.SkippedAhead)
	fmt.Fprintf(out, "Short breaks:        %d\n", summary.ShortBreaks)
	fmt.Fprintf(out, "Long breaks:         %d\n", summary.LongBreaks)
	fmt.Fprintf(out, "Sessions:            %d\n", summary.Sessions)

	if len(summary.ByPhase) > 0 {
		fmt.Fprintf(out, "\nPhases entered:\n")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  PHASE\tCOUNT\n")
		for _, p := range model.Phases() {
			if n, ok := summary.ByPhase[p]; ok {
				fmt.Fprintf(w, "  %s\t%d\n", p, n)
			}
		}
		w.Flush()
	}
}

func printTransitions(out io.Writer, records []model.TransitionRecord) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(out, "\nRecent transitions:\n")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  TIMESTAMP\tFROM\tTO\tCAUSE\tINTERVALS\n")
	for _, r := range records {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%d\n",
			r.At.Local().Format("2006-01-02 15:04:05"),
			r.From, r.To, r.Cause, r.CompletedIntervals,
		)
	}
	w.Flush()
}
