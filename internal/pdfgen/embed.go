// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfgen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tetralith/mesh2pdf/internal/u3d"
	"github.com/tetralith/mesh2pdf/pkg/types"
)

// EmbedU3D wraps the U3D file at u3dPath into a 3D PDF at pdfPath.
// Warnings (invalid-looking U3D input) go to w; they do not abort the
// embed, since placeholder and exotic payloads are still useful for
// viewer testing.
func EmbedU3D(u3dPath, pdfPath string, cfg types.EmbedConfig, w io.Writer) error {
	var data []byte
	if cfg.Placeholder {
		data = u3d.Placeholder()
		fmt.Fprintf(w, "using placeholder U3D payload instead of %s\n", u3dPath)
	} else {
		var err error
		data, err = os.ReadFile(u3dPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("U3D file not found: %s", u3dPath)
			}
			return fmt.Errorf("reading U3D %s: %w", u3dPath, err)
		}
		if err := u3d.Validate(u3dPath); err != nil {
			fmt.Fprintf(w, "warning: %v; the PDF may not display correctly\n", err)
		}
	}

	title := cfg.Title
	if title == "" {
		base := filepath.Base(u3dPath)
		title = base[:len(base)-len(filepath.Ext(base))]
	}

	doc, err := build(data, title)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(pdfPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
		return fmt.Errorf("writing PDF %s: %w", pdfPath, err)
	}

	if cfg.Validate {
		if err := Validate(pdfPath); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}
	if cfg.Optimize {
		if err := Optimize(pdfPath); err != nil {
			fmt.Fprintf(w, "warning: optimization failed, keeping unoptimized PDF: %v\n", err)
		}
	}
	return nil
}
