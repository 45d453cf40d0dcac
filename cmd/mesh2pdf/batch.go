// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input>...",
	Short: "Convert multiple meshes to U3D",
	Long: `Batch runs the mesh-to-U3D conversion over each input in turn. Every
file is written to its default output path under output-dir/u3d/;
failures are reported per file and do not stop the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts := pipelineOptsFromFlags(cmd)

	conv, err := resolveConverter(cmd, opts)
	if err != nil {
		return err
	}

	res := pipeline.ConvertBatch(conv, args, opts, os.Stdout)
	if res.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", res.Failed, res.Total())
	}
	return nil
}

func init() {
	addConvertFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}
