// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tetralith/mesh2pdf/internal/catalog"
	"github.com/tetralith/mesh2pdf/internal/pipeline"
	"github.com/tetralith/mesh2pdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history catalog",
	Long: `History manages the local catalog of past conversions. Every convert
and pipeline run is recorded (unless --no-history was given) with its
input, outputs, face counts, and status.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Printf("%-4s  %-30s  %-8s  %8s  %8s  %s\n",
		"ID", "Input", "Status", "FacesIn", "FacesOut", "When")
	fmt.Println(strings.Repeat("-", 84))
	for _, r := range records {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Printf("%-4d  %-30s  %-8s  %8d  %8d  %s\n",
			r.ID, input, r.Status, r.FacesIn, r.FacesOut,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history as YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig()
	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")

	switch format {
	case "yaml":
		if path == "" {
			path = filepath.Join(cfg.HistoryDir, "export.yaml")
		}
		err = store.ExportYAML(context.Background(), path)
	case "json":
		if path == "" {
			path = filepath.Join(cfg.HistoryDir, "export.json")
		}
		err = store.ExportJSON(context.Background(), path)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or json)", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("History exported to %s\n", path)
	return nil
}

func catalogConfig() types.CatalogConfig {
	return loadConfig().Catalog
}

// recordHistory appends a pipeline result to the catalog. Failures to
// record are reported as warnings; they never fail the conversion
// itself.
func recordHistory(cmd *cobra.Command, opts pipeline.Options, res *pipeline.Result) {
	if res == nil {
		return
	}
	cfg := catalogConfig()
	if cfg.Disabled {
		return
	}
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}

	store, err := catalog.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history catalog: %v\n", err)
		return
	}
	defer store.Close()

	rec := &catalog.Record{
		Input:          res.Input,
		U3DPath:        res.U3DPath,
		PDFPath:        res.PDFPath,
		Vertices:       res.After.Vertices,
		FacesIn:        res.Before.Faces,
		FacesOut:       res.After.Faces,
		Cleaned:        opts.Clean,
		SimplifyTarget: opts.SimplifyTarget,
		Status:         string(res.Status),
		DurationMS:     res.Duration.Milliseconds(),
	}
	if err := store.Append(context.Background(), rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
	}
}

func init() {
	historyListCmd.Flags().Int("limit", 0, "maximum rows to list (default 20)")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output path (default: <history-dir>/export.<format>)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
