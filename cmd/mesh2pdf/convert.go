// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/pipeline"
	"github.com/tetralith/mesh2pdf/internal/u3d"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> [output.u3d]",
	Short: "Convert an OBJ or STL mesh to U3D",
	Long: `Convert loads a mesh file, optionally cleans and simplifies it, exports
it to the IDTF interchange format, and runs an external converter to
produce a U3D file. The default output path is output/u3d/<name>.u3d.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	var output string
	if len(args) > 1 {
		output = args[1]
	}

	opts := pipelineOptsFromFlags(cmd)

	conv, err := resolveConverter(cmd, opts)
	if err != nil {
		return err
	}

	res, err := pipeline.Convert(conv, input, output, opts, os.Stdout)
	recordHistory(cmd, opts, res)
	if err != nil {
		return err
	}
	fmt.Printf("Conversion successful: %s\n", res.U3DPath)
	return nil
}

// pipelineOptsFromFlags builds pipeline options from the shared
// convert/pipeline flag set, falling back to the file/env config for
// anything not given on the command line.
func pipelineOptsFromFlags(cmd *cobra.Command) pipeline.Options {
	cfg := loadConfig().Convert

	if clean, _ := cmd.Flags().GetBool("clean"); clean {
		cfg.Clean = true
	}
	if cmd.Flags().Changed("simplify") || cfg.SimplifyTarget == 0 {
		cfg.SimplifyTarget, _ = cmd.Flags().GetInt("simplify")
	}
	if keepIDTF, _ := cmd.Flags().GetBool("keep-idtf"); keepIDTF {
		cfg.KeepIDTF = true
	}
	if saveSTL, _ := cmd.Flags().GetBool("save-stl"); saveSTL {
		cfg.SaveSTL = true
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if path, _ := cmd.Flags().GetString("converter"); path != "" {
		cfg.ConverterPath = path
	}

	return pipeline.Options{ConvertConfig: cfg}
}

// resolveConverter locates the IDTF-to-U3D converter for a run.
// --placeholder skips external converters entirely and produces the
// minimal generated payload.
func resolveConverter(cmd *cobra.Command, opts pipeline.Options) (u3d.Converter, error) {
	if placeholder, _ := cmd.Flags().GetBool("placeholder"); placeholder {
		return u3d.PlaceholderConverter{}, nil
	}
	return u3d.Find(opts.ConverterPath)
}

// addConvertFlags registers the flags shared by convert and batch.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("clean", false, "remove duplicate vertices and faces before export")
	cmd.Flags().Int("simplify", 0, "decimate the mesh to approximately N faces")
	cmd.Flags().Bool("keep-idtf", false, "keep the intermediate IDTF file under output-dir/idtf/")
	cmd.Flags().Bool("save-stl", false, "write the processed mesh as binary STL under output-dir/obj/")
	cmd.Flags().String("output-dir", "", "base directory for default output paths")
	cmd.Flags().String("converter", "", "path to the IDTF-to-U3D converter binary")
	cmd.Flags().Bool("placeholder", false, "write a generated placeholder U3D instead of running the external converter")
	cmd.Flags().Bool("no-history", false, "skip recording this run in the history catalog")
}

func init() {
	addConvertFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}
