package cli

import (
	"errors"
	"fmt"

	"github.com/ogulcanaydogan/tomatina/pkg/signal"
	"github.com/spf13/cobra"
)

var pressCmd = &cobra.Command{
	Use:   "press",
	Short: "Send a button press to the running timer",
	RunE:  runPress,
}

func init() {
	rootCmd.AddCommand(pressCmd)
	pressCmd.Flags().Bool("secondary", false, "Send the secondary press")
	pressCmd.Flags().String("fifo", "", "Named pipe for button presses (default from config)")
}

func runPress(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Signal.FIFOPath
	if fifo, _ := cmd.Flags().GetString("fifo"); fifo != "" {
		path = fifo
	}

	ev := signal.Primary
	if secondary, _ := cmd.Flags().GetBool("secondary"); secondary {
		ev = signal.Secondary
	}

	if err := signal.Press(path, ev); err != nil {
		if errors.Is(err, signal.ErrNoReader) {
			return fmt.Errorf("%w: is \"tomatina run\" running?", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s press to %s\n", ev, path)
	return nil
}
