// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the conversion stages: load, clean,
// simplify, IDTF export, U3D conversion, and PDF embedding. Each stage
// is a call into its owning package; this package adds ordering,
// default output paths, and status reporting.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unixpickle/model3d/model3d"

	"github.com/tetralith/mesh2pdf/internal/idtf"
	"github.com/tetralith/mesh2pdf/internal/meshio"
	"github.com/tetralith/mesh2pdf/internal/meshops"
	"github.com/tetralith/mesh2pdf/internal/pdfgen"
	"github.com/tetralith/mesh2pdf/internal/u3d"
	"github.com/tetralith/mesh2pdf/pkg/types"
)

const (
	objDir  = "obj"
	idtfDir = "idtf"
	u3dDir  = "u3d"
)

// Options controls a single pipeline run.
type Options struct {
	types.ConvertConfig

	// Embed configures the PDF stage for Run.
	Embed types.EmbedConfig
}

// Result describes what a pipeline run produced.
type Result struct {
	Input    string
	U3DPath  string
	PDFPath  string
	IDTFPath string

	Before types.MeshStats
	After  types.MeshStats

	Status   types.ConversionStatus
	Duration time.Duration
}

// DefaultU3DPath returns outputDir/u3d/<stem>.u3d.
func DefaultU3DPath(outputDir, input string) string {
	return filepath.Join(outputDir, u3dDir, meshio.Stem(input)+".u3d")
}

// DefaultPDFPath returns outputDir/<stem>_3d.pdf.
func DefaultPDFPath(outputDir, input string) string {
	return filepath.Join(outputDir, meshio.Stem(input)+"_3d.pdf")
}

// Convert runs the mesh-to-U3D half of the pipeline. When u3dOut is
// empty the default output path under opts.OutputDir is used. Status
// lines for each stage go to w.
func Convert(conv u3d.Converter, input, u3dOut string, opts Options, w io.Writer) (*Result, error) {
	start := time.Now()
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	if u3dOut == "" {
		u3dOut = DefaultU3DPath(opts.OutputDir, input)
	}

	res := &Result{Input: input, U3DPath: u3dOut, Status: types.StatusFailed}

	mesh, err := prepareMesh(input, opts, res, w)
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	if opts.SaveSTL {
		stlPath := filepath.Join(opts.OutputDir, objDir, meshio.Stem(input)+".stl")
		if err := meshio.SaveSTL(mesh, stlPath); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		fmt.Fprintf(w, "mesh: %s\n", stlPath)
	}

	idtfPath, cleanup, err := idtfLocation(input, opts)
	if err != nil {
		res.Duration = time.Since(start)
		return res, err
	}
	defer cleanup()

	if err := idtf.EncodeFile(idtfPath, mesh); err != nil {
		res.Duration = time.Since(start)
		return res, err
	}
	if opts.KeepIDTF {
		res.IDTFPath = idtfPath
		fmt.Fprintf(w, "idtf: %s\n", idtfPath)
	}

	if err := conv.Convert(idtfPath, u3dOut); err != nil {
		res.Duration = time.Since(start)
		// A placeholder still lets the rest of a document workflow be
		// exercised; the run itself is reported as failed.
		if phErr := u3d.WritePlaceholder(u3dOut); phErr == nil {
			fmt.Fprintf(w, "warning: wrote placeholder U3D to %s\n", u3dOut)
		}
		if opts.KeepIDTF {
			return res, fmt.Errorf("U3D conversion failed (IDTF kept at %s): %w", idtfPath, err)
		}
		return res, fmt.Errorf("U3D conversion failed: %w", err)
	}
	if err := u3d.Validate(u3dOut); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
	fmt.Fprintf(w, "exported: %s (via %s)\n", u3dOut, conv.Name())

	res.Status = types.StatusDone
	res.Duration = time.Since(start)
	return res, nil
}

// Run executes the full workflow: Convert, then embed the U3D into a
// PDF. When pdfOut is empty the default path under opts.OutputDir is
// used; the U3D lands next to the PDF.
func Run(conv u3d.Converter, input, pdfOut string, opts Options, w io.Writer) (*Result, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	if pdfOut == "" {
		pdfOut = DefaultPDFPath(opts.OutputDir, input)
	}
	u3dOut := strings.TrimSuffix(pdfOut, filepath.Ext(pdfOut)) + ".u3d"

	res, err := Convert(conv, input, u3dOut, opts, w)
	res.PDFPath = pdfOut
	if err != nil {
		return res, err
	}

	embedCfg := opts.Embed
	if embedCfg.Title == "" {
		embedCfg.Title = meshio.Stem(input)
	}
	if err := pdfgen.EmbedU3D(u3dOut, pdfOut, embedCfg, w); err != nil {
		res.Status = types.StatusPartial
		return res, fmt.Errorf("PDF embedding failed (U3D available at %s): %w", u3dOut, err)
	}
	fmt.Fprintf(w, "embedded: %s\n", pdfOut)
	return res, nil
}

// prepareMesh loads the input and applies the optional clean and
// simplify stages, recording stats on res.
func prepareMesh(input string, opts Options, res *Result, w io.Writer) (*model3d.Mesh, error) {
	mesh, err := meshio.Load(input)
	if err != nil {
		return nil, err
	}
	res.Before = meshio.Stats(mesh)
	fmt.Fprintf(w, "loaded: %s (%d vertices, %d faces)\n", input, res.Before.Vertices, res.Before.Faces)

	if opts.Clean {
		cleaned, cr := meshops.Clean(mesh)
		mesh = cleaned
		fmt.Fprintf(w, "cleaned: removed %d duplicate, %d degenerate faces\n",
			cr.DuplicateFaces, cr.DegenerateFaces)
	}

	if opts.SimplifyTarget > 0 {
		before := len(mesh.TriangleSlice())
		simplified, err := meshops.Simplify(mesh, opts.SimplifyTarget)
		if err != nil {
			return nil, err
		}
		mesh = simplified
		fmt.Fprintf(w, "simplified: %d -> %d faces (target %d)\n",
			before, len(mesh.TriangleSlice()), opts.SimplifyTarget)
	}

	res.After = meshio.Stats(mesh)
	return mesh, nil
}

// idtfLocation picks where the intermediate IDTF file lives. Kept
// files go under OutputDir/idtf/; otherwise a temp directory is used
// and the returned cleanup removes it.
func idtfLocation(input string, opts Options) (path string, cleanup func(), err error) {
	if opts.KeepIDTF {
		return filepath.Join(opts.OutputDir, idtfDir, meshio.Stem(input)+".idtf"), func() {}, nil
	}
	tmpDir, err := os.MkdirTemp("", "mesh2pdf-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp directory: %w", err)
	}
	return filepath.Join(tmpDir, meshio.Stem(input)+".idtf"), func() { os.RemoveAll(tmpDir) }, nil
}

// BatchResult summarizes a multi-input run.
type BatchResult struct {
	Converted int
	Failed    int
}

// Total returns the number of inputs processed.
func (r BatchResult) Total() int { return r.Converted + r.Failed }

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool { return r.Failed > 0 }

// ConvertBatch converts each input to its default U3D output path,
// printing per-file status and a summary to w.
func ConvertBatch(conv u3d.Converter, inputs []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, input := range inputs {
		if _, err := Convert(conv, input, "", opts, w); err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", input, err)
			result.Failed++
			continue
		}
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}
