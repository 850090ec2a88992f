package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lvmnav/internal/config"
	"lvmnav/internal/history"
	"lvmnav/internal/runner"
	"lvmnav/internal/scan"
	"lvmnav/internal/tui"
	"lvmnav/internal/version"
)

var (
	cfgFile  string
	debugLog string
	timeout  int
)

var rootCmd = &cobra.Command{
	Use:   "lvmnav",
	Short: "Interactive LVM and block-device topology browser",
	Long: `lvmnav scans the host's block devices and LVM configuration and
browses them in a terminal UI: volume groups, logical volumes,
physical volumes, partition tables, mount points and capacity usage.

It is strictly read-only and never modifies disk state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, cfg, err := loadSnapshot()
		if err != nil {
			return err
		}
		recordHistory(cfg, snap)
		return tui.Run(snap)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the aggregated storage snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, cfg, err := loadSnapshot()
		if err != nil {
			return err
		}
		recordHistory(cfg, snap)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded snapshot summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.List(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No snapshots recorded. Enable history in the config file.")
			return nil
		}
		fmt.Printf("%-38s %-18s %8s %5s %5s %8s %12s\n",
			"Snapshot", "Taken", "Devices", "PVs", "VGs", "Segs", "VG Free")
		for _, r := range records {
			fmt.Printf("%-38s %-18s %8s %5d %5d %8d %12s\n",
				r.SnapshotID, humanize.Time(r.TakenAt),
				humanize.Comma(int64(r.DeviceCount)), r.PVCount, r.VGCount,
				r.LVSegments, humanize.IBytes(uint64(r.VGFreeBytes)))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lvmnav version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lvmnav", version.Version)
	},
}

// loadSnapshot wires config, logging and the command runner, then
// takes one snapshot. The only fatal load error is an empty device
// list; every missing tool degrades inside the snapshot.
func loadSnapshot() (*scan.Snapshot, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	if debugLog != "" {
		cfg.DebugLog = debugLog
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = timeout
	}

	log := zerolog.Nop()
	if cfg.DebugLog != "" {
		f, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening debug log: %w", err)
		}
		log = zerolog.New(f).With().Timestamp().Logger()
	}

	if os.Geteuid() != 0 {
		log.Warn().Msg("not running as root; LVM reports may be unavailable")
	}

	r := runner.New(cfg.Timeout(), log)
	snap, err := scan.Load(r, cfg.ScanTools(), log)
	if err != nil {
		return nil, nil, err
	}
	return snap, cfg, nil
}

// recordHistory stores a snapshot summary when history is enabled.
// Recording failures are not fatal to the browser.
func recordHistory(cfg *config.Config, snap *scan.Snapshot) {
	if !cfg.History.Enabled {
		return
	}
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	defer db.Close()
	if err := db.RecordSnapshot(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record snapshot: %v\n", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/lvmnav/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&debugLog, "debug-log", "", "write structured scan diagnostics to this file")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 0, "per-command timeout in seconds (overrides config)")

	historyCmd.Flags().IntP("limit", "n", 20, "number of snapshots to list")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
