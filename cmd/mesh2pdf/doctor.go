// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check availability of the external U3D converter",
	Long: `Doctor probes for an IDTF-to-U3D converter (the u3d gem or the
IDTFConverter utility) and reports what the convert and pipeline
commands would use. OBJ/STL loading, cleaning, decimation, and PDF
embedding have no external dependencies.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	conv, err := resolveConverter(cmd, pipelineOptsFromFlags(cmd))
	if err != nil {
		fmt.Println("U3D converter: not found")
		fmt.Println()
		fmt.Println("Install one of:")
		fmt.Println("  - the u3d gem:      gem install u3d")
		fmt.Println("  - IDTFConverter:    compile from https://github.com/ningfei/u3d")
		fmt.Println("or point --converter (or MESH2PDF_CONVERTER_PATH) at the binary.")
		return err
	}

	fmt.Printf("U3D converter: %s\n", conv.Name())
	fmt.Println("All conversion stages are available.")
	return nil
}

func init() {
	doctorCmd.Flags().String("converter", "", "path to the IDTF-to-U3D converter binary")

	rootCmd.AddCommand(doctorCmd)
}
