package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pit-go/internal/app"
	"pit-go/internal/config"
	"pit-go/internal/diff"
	"pit-go/internal/pit"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Capture", "Restore").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if cfg.Workspace == "" {
		cfg.Workspace = defaults["workspace"]
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults["log_dir"]
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "pit",
	Short: "Point-in-time workspace snapshots",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["workspace"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Workspace: %s\n", cfg.Workspace)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Workspace:    %s\n", cfg.Workspace)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Storage Root: %s\n", cfg.StorageRoot())
		fmt.Printf("Debounce:     %dms\n", cfg.Debounce())
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage snapshots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("List")
		if err != nil {
			return err
		}
		defer a.Close()

		snaps := a.ListAll()
		if len(snaps) == 0 {
			fmt.Println("No snapshots.")
			return nil
		}
		for _, s := range snaps {
			marker := " "
			if pit.IsBackupID(s.ID) {
				marker = "B"
			}
			fmt.Printf("%s %-32s %s %-11s %d file(s)\n",
				marker, s.ID, s.Timestamp.Local().Format("2006-01-02 15:04:05"), s.Trigger, len(s.Files))
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Show")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, ok := a.Get(args[0])
		if !ok {
			return fmt.Errorf("snapshot not found: %s", args[0])
		}

		fmt.Printf("ID:        %s\n", snap.ID)
		fmt.Printf("Timestamp: %s\n", snap.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Trigger:   %s\n", snap.Trigger)
		if snap.Revision != "" {
			fmt.Printf("Revision:  %s\n", snap.Revision)
		}
		fmt.Printf("Files:\n")
		for _, f := range snap.Files {
			fmt.Printf("  %s (%d bytes)\n", f.Path, f.Size)
		}
		return nil
	},
}

var snapshotCaptureCmd = &cobra.Command{
	Use:   "capture <path>...",
	Short: "Capture files into a manual snapshot",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Capture")
		if err != nil {
			return err
		}
		defer a.Close()

		snap, err := a.Capture(args)
		if err != nil {
			return fmt.Errorf("capturing: %w", err)
		}
		if snap == nil {
			fmt.Println("Nothing to capture.")
			return nil
		}
		fmt.Printf("Snapshot %s created with %d file(s)\n", snap.ID, len(snap.Files))
		return nil
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Delete")
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.Delete(args[0]) {
			return fmt.Errorf("snapshot not found: %s", args[0])
		}
		fmt.Printf("Snapshot %s deleted\n", args[0])
		return nil
	},
}

// diff command
var diffCmd = &cobra.Command{
	Use:   "diff <old-id> <new-id>",
	Short: "Compare two snapshots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Diff")
		if err != nil {
			return err
		}
		defer a.Close()

		diffs, err := a.Diff(args[0], args[1])
		if err != nil {
			return err
		}
		if len(diffs) == 0 {
			fmt.Println("No differences.")
			return nil
		}
		for _, fd := range diffs {
			fmt.Printf("%s (%s)\n", fd.Path, fd.Status)
			printSegments(fd.Segments)
		}
		return nil
	},
}

func printSegments(segs []diff.Segment) {
	for _, seg := range segs {
		prefix := "  "
		switch seg.Kind {
		case diff.SegmentAdded:
			prefix = "+ "
		case diff.SegmentRemoved:
			prefix = "- "
		}
		for _, line := range seg.Lines {
			fmt.Printf("  %s%s\n", prefix, line)
		}
	}
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore the workspace to a snapshot",
	Long: `Restore overwrites live files with the snapshot's contents.
A full-workspace backup snapshot is taken first and is the recovery path
if the restore fails partway through.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Restore")
		if err != nil {
			return err
		}
		defer a.Close()

		result := a.Restore(args[0])
		if !result.Success {
			if result.BackupID != "" {
				return fmt.Errorf("restore failed: %s (recover from backup %s)", result.Error, result.BackupID)
			}
			return fmt.Errorf("restore failed: %s", result.Error)
		}
		fmt.Printf("Restored snapshot %s (backup: %s)\n", args[0], result.BackupID)
		return nil
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and capture changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Watch")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching for changes. Press Ctrl+C to stop.")
		return a.Watch(ctx)
	},
}

// history command
var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent operations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("History")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(historyLimit)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}
		for _, op := range ops {
			fmt.Printf("%s %-8s %-32s %s\n",
				op.CreatedAt.Local().Format("2006-01-02 15:04:05"), op.Kind, op.SnapshotID, op.Detail)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotCaptureCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of operations to show")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}
