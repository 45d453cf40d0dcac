// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

// LoadOBJ reads a Wavefront OBJ file into a mesh. Polygonal faces are
// fan-triangulated; texture coordinates, normals, materials, and groups
// are skipped since only geometry survives the U3D conversion.
func LoadOBJ(path string) (*model3d.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ %s: %w", path, err)
	}
	defer f.Close()

	mesh, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ %s: %w", path, err)
	}
	return mesh, nil
}

// ReadOBJ parses OBJ data from r.
func ReadOBJ(r io.Reader) (*model3d.Mesh, error) {
	var vertices []model3d.Coord3D
	var tris []*model3d.Triangle

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		ident, vals := fields[0], fields[1:]

		switch ident {
		case "v":
			if len(vals) < 3 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c model3d.Coord3D
			var errX, errY, errZ error
			c.X, errX = strconv.ParseFloat(vals[0], 64)
			c.Y, errY = strconv.ParseFloat(vals[1], 64)
			c.Z, errZ = strconv.ParseFloat(vals[2], 64)
			if errX != nil || errY != nil || errZ != nil {
				return nil, fmt.Errorf("line %d: invalid vertex coordinates", lineNo)
			}
			vertices = append(vertices, c)
		case "f":
			if len(vals) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]model3d.Coord3D, len(vals))
			for i, v := range vals {
				idx, err := faceVertexIndex(v, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners[i] = vertices[idx]
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i+1 < len(corners); i++ {
				tris = append(tris, &model3d.Triangle{corners[0], corners[i], corners[i+1]})
			}
		default:
			// vn, vt, usemtl, mtllib, o, g, s: ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	if len(tris) == 0 {
		return nil, fmt.Errorf("OBJ contains no faces")
	}
	return model3d.NewMeshTriangles(tris), nil
}

// faceVertexIndex resolves one "v", "v/vt", "v//vn", or "v/vt/vn" face
// token to a zero-based position index. OBJ indices start at 1;
// negative indices count back from the end of the vertex list.
func faceVertexIndex(token string, numVertices int) (int, error) {
	posPart := token
	if i := strings.IndexByte(token, '/'); i >= 0 {
		posPart = token[:i]
	}
	idx, err := strconv.Atoi(posPart)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", token)
	}
	if idx < 0 {
		idx = numVertices + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= numVertices {
		return 0, fmt.Errorf("face index %q out of range (have %d vertices)", token, numVertices)
	}
	return idx, nil
}
