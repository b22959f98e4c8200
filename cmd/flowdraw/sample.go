package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/flowdraw/internal/document"
)

var sampleOutput string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the built-in sample flow as a snapshot",
	Args:  cobra.NoArgs,
	Run:   runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "output path (default: stdout)")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) {
	d, err := document.NewSampleDiagram(document.NewFactory(nil, ""))
	if err != nil {
		fail("Error building sample: %v", err)
	}
	snap, err := d.Snapshot()
	if err != nil {
		fail("Error: %v", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		fail("Error: %v", err)
	}

	if sampleOutput == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(sampleOutput, append(data, '\n'), 0644); err != nil {
		fail("Error writing %s: %v", sampleOutput, err)
	}
	fmt.Printf("Wrote %s (%d entities)\n", sampleOutput, d.Len())
}
