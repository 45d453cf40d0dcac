// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mesh2pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tetralith/mesh2pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mesh2pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "mesh2pdf",
	Short: "Convert 3D meshes to U3D and embed them in 3D PDFs",
	Long: `mesh2pdf converts OBJ and STL mesh files to the U3D format and embeds
the result into PDF documents with an interactive 3D annotation.

Each stage is a subcommand: convert (mesh to U3D), embed (U3D to PDF),
and pipeline (both, end to end). Mesh cleaning and decimation run
through the model3d library; IDTF-to-U3D encoding is delegated to an
external converter (the u3d gem or IDTFConverter). Use doctor to check
converter availability and history to inspect past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mesh2pdf.yaml or ~/.config/mesh2pdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mesh2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mesh2pdf"))
		}
	}

	viper.SetEnvPrefix("MESH2PDF")
	viper.AutomaticEnv()

	viper.SetDefault("output_dir", "output")
	viper.SetDefault("history_dir", filepath.Join("output", "history"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the file/env configuration into the grouped
// stage configs. Command flags override these values when set.
func loadConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Convert: types.ConvertConfig{
			OutputDir:      viper.GetString("output_dir"),
			Clean:          viper.GetBool("clean"),
			SimplifyTarget: viper.GetInt("simplify_target"),
			KeepIDTF:       viper.GetBool("keep_idtf"),
			SaveSTL:        viper.GetBool("save_stl"),
			ConverterPath:  viper.GetString("converter_path"),
		},
		Embed: types.EmbedConfig{
			Title:    viper.GetString("title"),
			Validate: viper.GetBool("validate"),
			Optimize: viper.GetBool("optimize"),
		},
		Catalog: types.CatalogConfig{
			HistoryDir: viper.GetString("history_dir"),
			Disabled:   viper.GetBool("history_disabled"),
			MaxResults: viper.GetInt("history_max_results"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
