// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package idtf serializes meshes to the IDTF interchange format, the
// text representation consumed by the IDTF-to-U3D converter utilities.
package idtf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unixpickle/model3d/model3d"
)

const formatVersion = 100

// document is the indexed geometry extracted from a mesh: unique
// positions, per-vertex normals, and faces as position-index triples.
type document struct {
	positions []model3d.Coord3D
	normals   []model3d.Coord3D
	faces     [][3]int
}

// build indexes the mesh's triangles. Vertex normals are the
// normalized sum of the adjacent face normals.
func build(m *model3d.Mesh) *document {
	doc := &document{}
	index := make(map[model3d.Coord3D]int)

	lookup := func(c model3d.Coord3D) int {
		if i, ok := index[c]; ok {
			return i
		}
		i := len(doc.positions)
		index[c] = i
		doc.positions = append(doc.positions, c)
		doc.normals = append(doc.normals, model3d.Coord3D{})
		return i
	}

	for _, t := range m.TriangleSlice() {
		n := t.Normal()
		var face [3]int
		for i, c := range t {
			idx := lookup(c)
			face[i] = idx
			doc.normals[idx] = doc.normals[idx].Add(n)
		}
		doc.faces = append(doc.faces, face)
	}

	for i, n := range doc.normals {
		if n.Norm() > 0 {
			doc.normals[i] = n.Normalize()
		} else {
			doc.normals[i] = model3d.Coord3D{Z: 1}
		}
	}
	return doc
}

// Encode writes the mesh as an IDTF document with a single model node,
// a default shader, and a default material.
func Encode(w io.Writer, m *model3d.Mesh) error {
	doc := build(m)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "FILE_FORMAT \"IDTF\"\nFORMAT_VERSION %d\n\n", formatVersion)

	writeModelNode(bw)
	writeModelResource(bw, doc)
	writeShaderResources(bw)

	return bw.Flush()
}

// EncodeFile writes the IDTF document to path, creating parent
// directories as needed.
func EncodeFile(path string, m *model3d.Mesh) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating IDTF file %s: %w", path, err)
	}
	if err := Encode(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing IDTF %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing IDTF %s: %w", path, err)
	}
	return nil
}

func writeModelNode(w io.Writer) {
	fmt.Fprint(w, `NODE "MODEL" {
	NODE_NAME "Model"
	PARENT_LIST {
		PARENT_COUNT 1
		PARENT 0 {
			PARENT_NAME "Scene_Root"
			PARENT_TM {
				1.0 0.0 0.0 0.0
				0.0 1.0 0.0 0.0
				0.0 0.0 1.0 0.0
				0.0 0.0 0.0 1.0
			}
		}
	}
	RESOURCE_NAME "mesh_0"
}

`)
}

func writeModelResource(w io.Writer, doc *document) {
	fmt.Fprint(w, "RESOURCE_LIST \"MODEL\" {\n\tRESOURCE_COUNT 1\n\tRESOURCE 0 {\n")
	fmt.Fprint(w, "\t\tRESOURCE_NAME \"mesh_0\"\n\t\tMODEL_TYPE \"MESH\"\n\t\tMESH {\n")
	fmt.Fprintf(w, "\t\t\tFACE_COUNT %d\n", len(doc.faces))
	fmt.Fprintf(w, "\t\t\tMODEL_POSITION_COUNT %d\n", len(doc.positions))
	fmt.Fprintf(w, "\t\t\tMODEL_NORMAL_COUNT %d\n", len(doc.normals))
	fmt.Fprint(w, "\t\t\tMODEL_TEXCOORD_COUNT 0\n\t\t\tMODEL_BONE_COUNT 0\n\t\t\tMODEL_SHADING_COUNT 1\n")
	fmt.Fprint(w, "\t\t\tMODEL_SHADING_DESCRIPTION_LIST {\n\t\t\t\tSHADING_DESCRIPTION 0 {\n")
	fmt.Fprint(w, "\t\t\t\t\tTEXTURE_LAYER_COUNT 0\n\t\t\t\t\tSHADER_ID 0\n\t\t\t\t}\n\t\t\t}\n")

	fmt.Fprint(w, "\t\t\tMESH_FACE_POSITION_LIST {\n")
	for i, f := range doc.faces {
		fmt.Fprintf(w, "\t\t\t\t%d: %d %d %d\n", i, f[0], f[1], f[2])
	}
	fmt.Fprint(w, "\t\t\t}\n")

	fmt.Fprint(w, "\t\t\tMESH_FACE_SHADING_LIST {\n")
	for i := range doc.faces {
		fmt.Fprintf(w, "\t\t\t\t%d: 0\n", i)
	}
	fmt.Fprint(w, "\t\t\t}\n")

	// The face normal list reuses position indices: normals are stored
	// per vertex.
	fmt.Fprint(w, "\t\t\tMESH_FACE_NORMAL_LIST {\n")
	for i, f := range doc.faces {
		fmt.Fprintf(w, "\t\t\t\t%d: %d %d %d\n", i, f[0], f[1], f[2])
	}
	fmt.Fprint(w, "\t\t\t}\n")

	fmt.Fprint(w, "\t\t\tMODEL_POSITION_LIST {\n")
	for i, p := range doc.positions {
		fmt.Fprintf(w, "\t\t\t\t%d: %.6f %.6f %.6f\n", i, p.X, p.Y, p.Z)
	}
	fmt.Fprint(w, "\t\t\t}\n")

	fmt.Fprint(w, "\t\t\tMODEL_NORMAL_LIST {\n")
	for i, n := range doc.normals {
		fmt.Fprintf(w, "\t\t\t\t%d: %.6f %.6f %.6f\n", i, n.X, n.Y, n.Z)
	}
	fmt.Fprint(w, "\t\t\t}\n")

	fmt.Fprint(w, "\t\t}\n\t}\n}\n\n")
}

func writeShaderResources(w io.Writer) {
	fmt.Fprint(w, `RESOURCE_LIST "SHADER" {
	RESOURCE_COUNT 1
	RESOURCE 0 {
		RESOURCE_NAME "default_shader"
		ATTRIBUTE_USE_VERTEX_COLOR "FALSE"
		SHADER_MATERIAL_NAME "DefaultMaterial"
		SHADER_ACTIVE_TEXTURE_COUNT 0
	}
}

RESOURCE_LIST "MATERIAL" {
	RESOURCE_COUNT 1
	RESOURCE 0 {
		RESOURCE_NAME "DefaultMaterial"
		MATERIAL_AMBIENT 0.2 0.2 0.2
		MATERIAL_DIFFUSE 0.8 0.8 0.8
		MATERIAL_SPECULAR 0.0 0.0 0.0
		MATERIAL_EMISSIVE 0.0 0.0 0.0
		MATERIAL_REFLECTIVITY 0.0
		MATERIAL_OPACITY 1.0
	}
}
`)
}
