package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inamate/flowdraw/internal/document"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [snapshot.json]",
	Short: "List the entities of a snapshot and their bounds",
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	snap, err := readSnapshot(args[0])
	if err != nil {
		fail("Error reading snapshot: %v", err)
	}
	d, err := document.DiagramFromSnapshot(snap)
	if err != nil {
		fail("Error loading snapshot: %v", err)
	}

	b := d.Bounds()
	fmt.Printf("Snapshot v%d: %d entities\n", snap.Version, d.Len())
	fmt.Printf("Bounds: x=%g y=%g w=%g h=%g\n\n", b.X, b.Y, b.Width, b.Height)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSHAPE\tX\tY\tW\tH")
	for _, e := range d.Entities() {
		r := e.Bounds()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\t%g\n",
			e.ID, e.Kind, document.ShapeName(e.Shape), r.X, r.Y, r.Width, r.Height)
	}
	tw.Flush()
}
