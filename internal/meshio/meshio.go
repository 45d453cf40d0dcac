// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meshio loads and saves triangle meshes. OBJ files are parsed
// directly; STL files go through model3d. Either way the in-memory
// representation is a *model3d.Mesh, which the rest of the pipeline
// operates on.
package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/model3d/model3d"

	"github.com/tetralith/mesh2pdf/pkg/types"
)

// Format returns the mesh format for a file path, judged by extension.
func Format(path string) (types.MeshFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return types.FormatOBJ, nil
	case ".stl":
		return types.FormatSTL, nil
	default:
		return "", fmt.Errorf("unsupported mesh format %q (want .obj or .stl): %s", filepath.Ext(path), path)
	}
}

// Load reads the mesh file at path into a model3d mesh. The format is
// chosen by file extension.
func Load(path string) (*model3d.Mesh, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, fmt.Errorf("checking input %s: %w", path, err)
	}

	format, err := Format(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case types.FormatOBJ:
		return LoadOBJ(path)
	case types.FormatSTL:
		return LoadSTL(path)
	}
	return nil, fmt.Errorf("unsupported mesh format: %s", path)
}

// LoadSTL reads a binary or ASCII STL file into a mesh.
func LoadSTL(path string) (*model3d.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening STL %s: %w", path, err)
	}
	defer f.Close()

	tris, err := model3d.ReadSTL(f)
	if err != nil {
		return nil, fmt.Errorf("reading STL %s: %w", path, err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("STL %s contains no triangles", path)
	}
	return model3d.NewMeshTriangles(tris), nil
}

// SaveSTL writes the mesh to path as binary STL, creating parent
// directories as needed.
func SaveSTL(m *model3d.Mesh, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := m.SaveGroupedSTL(path); err != nil {
		return fmt.Errorf("writing STL %s: %w", path, err)
	}
	return nil
}

// Stats computes summary statistics for a mesh.
func Stats(m *model3d.Mesh) types.MeshStats {
	tris := m.TriangleSlice()
	verts := m.VertexSlice()

	stats := types.MeshStats{
		Vertices:    len(verts),
		Faces:       len(tris),
		NeedsRepair: m.NeedsRepair(),
	}
	if len(tris) > 0 {
		min, max := m.Min(), m.Max()
		stats.Min = [3]float64{min.X, min.Y, min.Z}
		stats.Max = [3]float64{max.X, max.Y, max.Z}
	}
	return stats
}

// Stem returns the file name without directory or extension, used to
// derive default output names.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
