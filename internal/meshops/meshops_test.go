// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meshops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

// boxTriangles returns the 12 triangles of an axis-aligned unit cube.
func boxTriangles() []*model3d.Triangle {
	mesh := model3d.NewMeshRect(model3d.Coord3D{}, model3d.XYZ(1, 1, 1))
	return mesh.TriangleSlice()
}

func TestClean_RemovesDuplicateFaces(t *testing.T) {
	tris := boxTriangles()
	dup := *tris[0]
	tris = append(tris, &dup)

	mesh := model3d.NewMeshTriangles(tris)
	cleaned, res := Clean(mesh)

	assert.Equal(t, 1, res.DuplicateFaces)
	assert.Equal(t, 0, res.DegenerateFaces)
	assert.Len(t, cleaned.TriangleSlice(), 12)
}

func TestClean_RemovesDegenerateFaces(t *testing.T) {
	tris := boxTriangles()
	a := model3d.Coord3D{X: 5, Y: 5, Z: 5}
	b := model3d.Coord3D{X: 6, Y: 5, Z: 5}
	tris = append(tris, &model3d.Triangle{a, a, b})

	mesh := model3d.NewMeshTriangles(tris)
	cleaned, res := Clean(mesh)

	assert.Equal(t, 1, res.DegenerateFaces)
	assert.Len(t, cleaned.TriangleSlice(), 12)
}

func TestClean_NoopOnCleanMesh(t *testing.T) {
	mesh := model3d.NewMeshTriangles(boxTriangles())
	cleaned, res := Clean(mesh)

	assert.Zero(t, res.DuplicateFaces)
	assert.Zero(t, res.DegenerateFaces)
	assert.Len(t, cleaned.TriangleSlice(), 12)
}

func TestSimplify_ReducesFaceCount(t *testing.T) {
	// A finely tessellated unit sphere.
	sphere := model3d.NewMeshPolar(func(g model3d.GeoCoord) float64 {
		return 1.0
	}, 30)
	before := len(sphere.TriangleSlice())
	require.Greater(t, before, 1000)

	target := 200
	out, err := Simplify(sphere, target)
	require.NoError(t, err)

	after := len(out.TriangleSlice())
	assert.Greater(t, after, 0)
	assert.Less(t, after, before, "decimation should reduce the face count")
}

func TestSimplify_SkipsWhenAtOrBelowTarget(t *testing.T) {
	mesh := model3d.NewMeshTriangles(boxTriangles())

	out, err := Simplify(mesh, 100)
	require.NoError(t, err)
	assert.Same(t, mesh, out, "meshes at or below target pass through unchanged")
}

func TestSimplify_RejectsNonPositiveTarget(t *testing.T) {
	mesh := model3d.NewMeshTriangles(boxTriangles())

	_, err := Simplify(mesh, 0)
	assert.Error(t, err)
	_, err = Simplify(mesh, -5)
	assert.Error(t, err)
}
