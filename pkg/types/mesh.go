// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared across pipeline stages.
package types

// ConversionStatus indicates how far a mesh made it through the pipeline.
type ConversionStatus string

const (
	// StatusDone means every requested stage completed.
	StatusDone ConversionStatus = "done"

	// StatusPartial means the U3D file was produced but a later stage
	// (typically PDF embedding) failed.
	StatusPartial ConversionStatus = "partial"

	// StatusFailed means no usable output was produced.
	StatusFailed ConversionStatus = "failed"
)

// MeshFormat identifies the on-disk encoding of a mesh file.
type MeshFormat string

const (
	FormatOBJ MeshFormat = "obj"
	FormatSTL MeshFormat = "stl"
)

// MeshStats summarizes a loaded mesh for status output and the history
// catalog.
type MeshStats struct {
	// Vertices is the number of distinct vertex positions.
	Vertices int `json:"vertices" yaml:"vertices"`

	// Faces is the number of triangles.
	Faces int `json:"faces" yaml:"faces"`

	// Min and Max are the corners of the axis-aligned bounding box,
	// as [x, y, z].
	Min [3]float64 `json:"min" yaml:"min"`
	Max [3]float64 `json:"max" yaml:"max"`

	// NeedsRepair reports whether the mesh has singular edges (edges
	// shared by a number of faces other than two).
	NeedsRepair bool `json:"needs_repair" yaml:"needs_repair"`
}
