// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/pipeline"
)

// defaultSimplifyTarget is the face budget applied by the full
// workflow when --simplify is not given explicitly.
const defaultSimplifyTarget = 5000

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <input> [output.pdf]",
	Short: "Run the full mesh-to-3D-PDF workflow",
	Long: `Pipeline converts a mesh to U3D and embeds the result in a 3D PDF in
one pass. The default output is output/<name>_3d.pdf with the U3D file
written alongside it. Unlike convert, simplification defaults to a
5000-face budget; pass --simplify 0 to disable it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	input := args[0]
	var output string
	if len(args) > 1 {
		output = args[1]
	}

	opts := pipelineOptsFromFlags(cmd)
	opts.Embed = embedConfigFromFlags(cmd)

	conv, err := resolveConverter(cmd, opts)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(conv, input, output, opts, os.Stdout)
	recordHistory(cmd, opts, res)
	if err != nil {
		return err
	}

	fmt.Println("Workflow completed successfully.")
	fmt.Printf("U3D file: %s\n", res.U3DPath)
	fmt.Printf("3D PDF:   %s\n", res.PDFPath)
	return nil
}

func init() {
	pipelineCmd.Flags().Bool("clean", false, "remove duplicate vertices and faces before export")
	pipelineCmd.Flags().Int("simplify", defaultSimplifyTarget, "decimate the mesh to approximately N faces (0 disables)")
	pipelineCmd.Flags().Bool("keep-idtf", false, "keep the intermediate IDTF file under output-dir/idtf/")
	pipelineCmd.Flags().Bool("save-stl", false, "write the processed mesh as binary STL under output-dir/obj/")
	pipelineCmd.Flags().String("output-dir", "", "base directory for default output paths")
	pipelineCmd.Flags().String("converter", "", "path to the IDTF-to-U3D converter binary")
	pipelineCmd.Flags().Bool("no-history", false, "skip recording this run in the history catalog")

	pipelineCmd.Flags().String("title", "", "heading printed above the 3D viewport (default: input file name)")
	pipelineCmd.Flags().Bool("placeholder", false, "use a generated placeholder U3D payload instead of converting the mesh")
	pipelineCmd.Flags().Bool("validate", false, "run a pdfcpu validation pass over the finished PDF")
	pipelineCmd.Flags().Bool("optimize", false, "run a pdfcpu optimization pass over the finished PDF")

	rootCmd.AddCommand(pipelineCmd)
}
