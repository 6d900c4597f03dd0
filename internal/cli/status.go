package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ogulcanaydogan/tomatina/internal/runner"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current phase of the running timer",
	Long:  `Query the status API of a running timer (started with --status or status.enabled).`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().String("addr", "", "Status API address (default from config)")
	statusCmd.Flags().Bool("json", false, "Print the raw JSON snapshot")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Status.Listen
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + addr + "/api/v1/status")
	if err != nil {
		return fmt.Errorf("query status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status API returned %d: %s", resp.StatusCode, body)
	}

	var snap runner.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	palette, err := indicator.DefaultPalette().WithOverrides(cfg.Indicator.Colors)
	if err != nil {
		return fmt.Errorf("indicator colors: %w", err)
	}
	renderStatus(out, snap, palette)
	return nil
}

func renderStatus(w io.Writer, snap runner.Snapshot, palette indicator.Palette) {
	fmt.Fprintf(w, "%s %s\n", indicator.Swatch(palette.ColorFor(snap.Phase)), snap.Phase)
	if snap.Timed {
		remaining := time.Duration(snap.RemainingSeconds * float64(time.Second))
		fmt.Fprintf(w, "Remaining:           %s\n", tracker.FormatClock(remaining.Truncate(time.Second)))
	}
	fmt.Fprintf(w, "Completed intervals: %d\n", snap.CompletedIntervals)
	fmt.Fprintf(w, "In phase since:      %s\n", snap.EnteredPhaseAt.Local().Format("15:04:05"))
}
