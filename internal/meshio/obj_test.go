// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meshio

import (
	"strings"
	"testing"
)

const cubeOBJ = `# unit cube
mtllib cube.mtl
o cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
vn 0 0 -1
vt 0 0
usemtl default
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 2 6 7 3
f 3 7 8 4
f 4 8 5 1
`

func TestReadOBJ(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFaces int
		wantVerts int
		errMsg    string
	}{
		{
			name:      "cube with quads",
			input:     cubeOBJ,
			wantFaces: 12,
			wantVerts: 8,
		},
		{
			name: "triangle with slash syntax",
			input: "v 0 0 0\nv 1 0 0\nv 0 1 0\n" +
				"vt 0 0\nvt 1 0\nvt 0 1\n" +
				"vn 0 0 1\n" +
				"f 1/1/1 2/2/1 3/3/1\n",
			wantFaces: 1,
			wantVerts: 3,
		},
		{
			name: "normal-only slash syntax",
			input: "v 0 0 0\nv 1 0 0\nv 0 1 0\n" +
				"vn 0 0 1\n" +
				"f 1//1 2//1 3//1\n",
			wantFaces: 1,
			wantVerts: 3,
		},
		{
			name:      "negative indices",
			input:     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n",
			wantFaces: 1,
			wantVerts: 3,
		},
		{
			name:   "no faces",
			input:  "v 0 0 0\nv 1 0 0\nv 0 1 0\n",
			errMsg: "no faces",
		},
		{
			name:   "face index out of range",
			input:  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
			errMsg: "out of range",
		},
		{
			name:   "bad vertex coordinate",
			input:  "v 0 zero 0\n",
			errMsg: "invalid vertex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ReadOBJ(strings.NewReader(tt.input))

			if tt.errMsg != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("error %q does not contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadOBJ: %v", err)
			}

			if got := len(mesh.TriangleSlice()); got != tt.wantFaces {
				t.Errorf("faces = %d, want %d", got, tt.wantFaces)
			}
			if got := len(mesh.VertexSlice()); got != tt.wantVerts {
				t.Errorf("vertices = %d, want %d", got, tt.wantVerts)
			}
		})
	}
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	_, err := LoadOBJ("does/not/exist.obj")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "does/not/exist.obj") {
		t.Errorf("error %q should reference the path", err)
	}
}
