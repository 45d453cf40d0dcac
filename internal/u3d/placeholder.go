// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package u3d

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// placeholderHex is a minimal structured U3D payload: a file header
// block, a metadata block header, and stub view and model resource
// blocks. It is not a renderable model, but it carries the U3D magic
// and enough structure for PDF viewers to accept the stream.
const placeholderHex = "55334400" + // magic "U3D\x00"
	"00000000" + // major version
	"00000000" + // minor version
	"00000100" + // profile identifier (base profile)
	"00000000" + // declaration size
	"ffffffff" + // file size (unspecified)
	"00000000" + // character encoding (8-bit)
	"00000020" + // offset to first block
	// metadata block header
	"ffffffff" + "ff000000" + "00000000" + "00000000" + "00000030" + "00000000" +
	// stub view resource
	"01000000" + "0000000000000000" + "0000000a00000000" +
	"cdcc4c3ecdcc4c3e" + "0000803f00000000" + "0000000000000000" +
	// stub model resource
	"01000000" + "0000000000000000" + "0100000000000000"

// Placeholder returns the minimal U3D payload.
func Placeholder() []byte {
	data, err := hex.DecodeString(placeholderHex)
	if err != nil {
		// The constant is fixed at compile time.
		panic(err)
	}
	return data
}

// WritePlaceholder writes the minimal U3D payload to path, creating
// parent directories as needed.
func WritePlaceholder(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, Placeholder(), 0o644); err != nil {
		return fmt.Errorf("writing placeholder U3D %s: %w", path, err)
	}
	return nil
}

// PlaceholderConverter ignores its IDTF input and writes the minimal
// U3D payload. It serves as the last-resort backend when no external
// converter is installed and the caller opted into degraded output.
type PlaceholderConverter struct{}

func (PlaceholderConverter) Name() string { return "placeholder" }

func (PlaceholderConverter) Convert(idtfPath, u3dPath string) error {
	return WritePlaceholder(u3dPath)
}
