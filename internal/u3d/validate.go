// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package u3d

import (
	"bytes"
	"fmt"
	"os"
)

var magic = []byte{'U', '3', 'D', 0}

// minSize is the smallest byte count a plausible U3D file can have:
// anything under this will not pass viewer validation.
const minSize = 100

// HasMagic reports whether data starts with the U3D magic bytes.
func HasMagic(data []byte) bool {
	return len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic)
}

// Validate performs a structural sanity check on a U3D file: it must
// exist, be at least minSize bytes, and carry the U3D magic.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("U3D file not found: %s", path)
		}
		return fmt.Errorf("reading U3D %s: %w", path, err)
	}
	if len(data) < minSize {
		return fmt.Errorf("U3D file %s is too small (%d bytes)", path, len(data))
	}
	if !HasMagic(data) {
		return fmt.Errorf("U3D file %s does not start with the U3D magic bytes", path)
	}
	return nil
}
