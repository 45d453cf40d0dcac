// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfgen

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Validate runs pdfcpu's structural validation over a finished PDF.
func Validate(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("validating PDF %s: %w", path, err)
	}
	return nil
}

// Optimize rewrites the PDF in place through pdfcpu's optimizer. The
// optimized copy replaces the original only on success.
func Optimize(path string) error {
	tmp := path + ".opt"
	if err := api.OptimizeFile(path, tmp, nil); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("optimizing PDF %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing PDF %s with optimized copy: %w", path, err)
	}
	return nil
}
