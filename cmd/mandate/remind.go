package main

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	id "mandate/pkg/domain"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run a reminder pass for one org or for every org",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemind(cmd)
	},
}

func init() {
	remindCmd.Flags().String("org", "", "Org ID to run the pass for")
	remindCmd.Flags().Bool("all", false, "Run the pass for every org with obligations")
	remindCmd.Flags().Duration("window", 0, "Debounce window (defaults to reminder.debounce_window)")
}

func runRemind(cmd *cobra.Command) error {
	orgFlag, _ := cmd.Flags().GetString("org")
	all, _ := cmd.Flags().GetBool("all")
	window, _ := cmd.Flags().GetDuration("window")
	if (orgFlag == "") == !all {
		return errors.New("exactly one of --org or --all is required")
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if window == 0 {
		window = cfg.Reminder.DebounceWindow
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Error().Err(err).Msg("failed to release resources")
		}
	}()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	now := time.Now().UTC()

	if all {
		batch, err := a.reminders.RunAll(ctx, now, window)
		if err != nil {
			return err
		}
		return enc.Encode(batch)
	}

	orgID, err := id.ParseOrgID(orgFlag)
	if err != nil {
		return err
	}
	summary, err := a.reminders.RunPass(ctx, orgID, now, window)
	if err != nil {
		return err
	}
	return enc.Encode(summary)
}
