// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/meshio"
	"github.com/tetralith/mesh2pdf/internal/pdfgen"
	"github.com/tetralith/mesh2pdf/pkg/types"
)

var embedCmd = &cobra.Command{
	Use:   "embed <input.u3d> [output.pdf]",
	Short: "Embed a U3D file into a 3D PDF",
	Long: `Embed wraps an existing U3D file into a single-page PDF with an
interactive 3D annotation, viewable in Adobe Acrobat. The default
output path is <name>_3d.pdf in the current directory.

With --placeholder a generated minimal U3D payload is embedded instead
of the input file, which is useful for checking viewer behavior.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEmbed,
}

func runEmbed(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := meshio.Stem(input) + "_3d.pdf"
	if len(args) > 1 {
		output = args[1]
	}

	cfg := embedConfigFromFlags(cmd)

	if !cfg.Placeholder {
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("U3D file not found: %s", input)
		}
	}

	if err := pdfgen.EmbedU3D(input, output, cfg, os.Stderr); err != nil {
		return err
	}
	fmt.Printf("PDF with embedded 3D content created: %s\n", output)
	fmt.Println("Note: open this file in Adobe Acrobat to view the 3D model.")
	return nil
}

func embedConfigFromFlags(cmd *cobra.Command) types.EmbedConfig {
	cfg := loadConfig().Embed

	if title, _ := cmd.Flags().GetString("title"); title != "" {
		cfg.Title = title
	}
	if placeholder, _ := cmd.Flags().GetBool("placeholder"); placeholder {
		cfg.Placeholder = true
	}
	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		cfg.Validate = true
	}
	if optimize, _ := cmd.Flags().GetBool("optimize"); optimize {
		cfg.Optimize = true
	}
	return cfg
}

func init() {
	embedCmd.Flags().String("title", "", "heading printed above the 3D viewport (default: input file name)")
	embedCmd.Flags().Bool("placeholder", false, "embed a generated minimal U3D payload instead of the input")
	embedCmd.Flags().Bool("validate", false, "run a pdfcpu validation pass over the finished PDF")
	embedCmd.Flags().Bool("optimize", false, "run a pdfcpu optimization pass over the finished PDF")

	rootCmd.AddCommand(embedCmd)
}
