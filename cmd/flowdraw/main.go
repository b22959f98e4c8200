package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/flowdraw/internal/document"
)

var rootCmd = &cobra.Command{
	Use:   "flowdraw",
	Short: "Offline tools for flowdraw diagram snapshots",
	Long: `flowdraw works with diagram snapshots saved by the editor.
It can rasterise them to PNG, list their entities, and write the sample flow.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readSnapshot(path string) (document.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Snapshot{}, err
	}
	var snap document.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return document.Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return snap, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
