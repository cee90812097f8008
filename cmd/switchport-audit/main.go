package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/braunma/switchport-audit/internal/constants"
	"github.com/braunma/switchport-audit/pkg/analyzer"
	"github.com/braunma/switchport-audit/pkg/loader"
	"github.com/braunma/switchport-audit/pkg/report"
	"github.com/braunma/switchport-audit/pkg/utils"
)

var (
	snapshotPath   string
	outputFormat   string
	thresholdsFile string
	verbose        bool
	noColor        bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "switchport-audit",
		Short:         "Switch port consistency audit",
		Long:          `Finds trunk VLAN mismatches and port profile consolidation opportunities in a controller snapshot`,
		RunE:          runAudit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Snapshot folder (devices/, port_profiles/, networks/) or combined export file (default $"+constants.EnvSnapshot+")")
	rootCmd.Flags().StringVar(&outputFormat, "format", string(report.FormatText), "Output format: text, yaml or json")
	rootCmd.Flags().StringVar(&thresholdsFile, "thresholds", "", "YAML file overriding analysis thresholds (absent or non-positive counts keep their defaults; vlan_override_trigger accepts 0)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Print debug traces")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return rootCmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	if noColor {
		utils.DisableColor()
	}
	// Logs go to stderr so structured reports on stdout stay parseable.
	logger := utils.NewLoggerWithWriters(verbose, cmd.ErrOrStderr(), cmd.ErrOrStderr())

	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		logger.Error("Invalid --format", err)
		return err
	}

	path, err := resolveSnapshot(snapshotPath, logger)
	if err != nil {
		logger.Error("Failed to resolve snapshot", err)
		return err
	}

	dataLoader := loader.NewDataLoader("", logger)

	snap, err := dataLoader.LoadSnapshot(path)
	if err != nil {
		logger.Error("Failed to load snapshot", err)
		return err
	}
	logger.Info("Loaded %d devices (%d ports), %d port profiles, %d networks from %s",
		len(snap.Devices), snap.PortCount(), len(snap.PortProfiles), len(snap.Networks), path)

	thresholds := analyzer.DefaultThresholds()
	if thresholdsFile != "" {
		thresholds, err = dataLoader.LoadThresholds(thresholdsFile)
		if err != nil {
			logger.Error("Failed to load thresholds", err)
			return err
		}
		logger.Debug("Thresholds: override trigger %d, min cluster %d, disabled %d, access %d",
			thresholds.OverrideTrigger(), thresholds.MinClusterSize, thresholds.DisabledPortThreshold, thresholds.AccessPortThreshold)
	}

	result := analyzer.NewAnalyzer(thresholds, logger).Analyze(snap)

	if err := report.NewRenderer(cmd.OutOrStdout()).Render(result, format); err != nil {
		logger.Error("Failed to render report", err)
		return err
	}

	logger.Success("Audit complete: %d mismatches, %d suggestions, %d port findings",
		len(result.Mismatches), len(result.Suggestions), len(result.PortFindings))
	return nil
}

// resolveSnapshot picks the snapshot location: the flag, then the environment,
// then the current directory, falling back to example/ when it holds no snapshot.
func resolveSnapshot(path string, logger *utils.Logger) (string, error) {
	if path == "" {
		path = os.Getenv(constants.EnvSnapshot)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("snapshot %s: %w", path, err)
		}
		logger.Info("Using snapshot: %s", path)
		return path, nil
	}

	if isSnapshotDir(".") {
		logger.Info("Using snapshot: .")
		return ".", nil
	}

	examplePath := "example"
	if isSnapshotDir(examplePath) {
		logger.Warning("%s/ not found in current directory, falling back to '%s'", constants.FolderDevices, examplePath)
		return examplePath, nil
	}

	return "", fmt.Errorf("no snapshot found: set --snapshot or %s", constants.EnvSnapshot)
}

func isSnapshotDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, constants.FolderDevices))
	return err == nil && info.IsDir()
}
