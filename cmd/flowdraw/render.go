package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inamate/flowdraw/internal/document"
	"github.com/inamate/flowdraw/internal/export"
	"github.com/inamate/flowdraw/internal/imageres"
)

var (
	renderOutput  string
	renderScale   float64
	renderPadding float64
)

var renderCmd = &cobra.Command{
	Use:   "render [snapshot.json]",
	Short: "Rasterise a snapshot to PNG",
	Args:  cobra.ExactArgs(1),
	Run:   runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output PNG path (default: input name with .png)")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 1, "pixels per canvas unit")
	renderCmd.Flags().Float64Var(&renderPadding, "padding", export.DefaultPadding, "margin around the diagram bounds")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) {
	snap, err := readSnapshot(args[0])
	if err != nil {
		fail("Error reading snapshot: %v", err)
	}
	d, err := document.DiagramFromSnapshot(snap)
	if err != nil {
		fail("Error loading snapshot: %v", err)
	}

	renderer, err := export.NewRenderer(imageres.NewLoader())
	if err != nil {
		fail("Error: %v", err)
	}

	out := renderOutput
	if out == "" {
		out = strings.TrimSuffix(args[0], ".json") + ".png"
	}
	opts := export.Options{Scale: renderScale, Padding: renderPadding}
	if err := renderer.SavePNG(out, d, opts); err != nil {
		fail("Error rendering: %v", err)
	}
	fmt.Printf("Wrote %s (%d entities)\n", out, d.Len())
}
