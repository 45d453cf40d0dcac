// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/meshio"
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Print statistics for a mesh file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	mesh, err := meshio.Load(args[0])
	if err != nil {
		return err
	}
	stats := meshio.Stats(mesh)

	fmt.Printf("Mesh: %s\n", args[0])
	fmt.Printf("- Vertices: %d\n", stats.Vertices)
	fmt.Printf("- Faces:    %d\n", stats.Faces)
	fmt.Printf("- Bounds:   [%.4f %.4f %.4f] .. [%.4f %.4f %.4f]\n",
		stats.Min[0], stats.Min[1], stats.Min[2],
		stats.Max[0], stats.Max[1], stats.Max[2])
	if stats.NeedsRepair {
		fmt.Println("- Topology: has singular edges (consider --clean)")
	} else {
		fmt.Println("- Topology: manifold")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
