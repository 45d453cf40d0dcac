// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meshops applies cleanup and decimation to loaded meshes
// before export. Decimation and vertex repair delegate to model3d;
// duplicate and degenerate face removal is a small filter on top.
package meshops

import (
	"fmt"
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// repairEpsilon is the distance under which nearby vertices are merged
// during cleaning. Relative tolerances are unnecessary for the mesh
// scales the converters accept.
const repairEpsilon = 1e-8

// CleanResult reports what cleaning removed.
type CleanResult struct {
	DuplicateFaces  int
	DegenerateFaces int
}

// Clean merges duplicate vertices and removes duplicate and
// zero-area faces, mirroring the cleanup filters the original
// meshing toolchain applied before U3D export.
func Clean(m *model3d.Mesh) (*model3d.Mesh, CleanResult) {
	repaired := m.Repair(repairEpsilon)

	var res CleanResult
	seen := make(map[[9]float64]bool)
	kept := make([]*model3d.Triangle, 0, len(repaired.TriangleSlice()))

	for _, t := range repaired.TriangleSlice() {
		if t.Area() == 0 {
			res.DegenerateFaces++
			continue
		}
		key := faceKey(t)
		if seen[key] {
			res.DuplicateFaces++
			continue
		}
		seen[key] = true
		kept = append(kept, t)
	}

	if res.DuplicateFaces == 0 && res.DegenerateFaces == 0 {
		return repaired, res
	}
	return model3d.NewMeshTriangles(kept), res
}

// faceKey returns an orientation-independent identity for a triangle:
// its corner coordinates in sorted order.
func faceKey(t *model3d.Triangle) [9]float64 {
	corners := [][3]float64{
		{t[0].X, t[0].Y, t[0].Z},
		{t[1].X, t[1].Y, t[1].Z},
		{t[2].X, t[2].Y, t[2].Z},
	}
	sort.Slice(corners, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if corners[i][k] != corners[j][k] {
				return corners[i][k] < corners[j][k]
			}
		}
		return false
	})
	var key [9]float64
	for i, c := range corners {
		key[i*3], key[i*3+1], key[i*3+2] = c[0], c[1], c[2]
	}
	return key
}

// Simplify decimates the mesh toward targetFaces triangles using
// model3d's quadric-style decimator. Meshes already at or below the
// target are returned unchanged. The result is approximate: the
// decimator stops near the vertex budget implied by the face target.
func Simplify(m *model3d.Mesh, targetFaces int) (*model3d.Mesh, error) {
	if targetFaces <= 0 {
		return nil, fmt.Errorf("simplify target must be positive, got %d", targetFaces)
	}
	faces := len(m.TriangleSlice())
	if faces <= targetFaces {
		return m, nil
	}

	// The decimator refuses changes outside its geometric tolerances,
	// so the tolerances escalate across passes; the loop stops as soon
	// as the face budget is met.
	size := m.Max().Sub(m.Min()).Norm()
	if size == 0 {
		size = 1
	}

	out := m
	planeDist := size * 1e-4
	featureAngle := 0.1
	for i := 0; i < 10 && len(out.TriangleSlice()) > targetFaces; i++ {
		dec := &model3d.Decimator{
			FeatureAngle:     featureAngle,
			BoundaryDistance: planeDist,
			PlaneDistance:    planeDist,
		}
		out = dec.Decimate(out)
		planeDist *= 4
		if featureAngle < 60 {
			featureAngle *= 2
		}
	}

	if len(out.TriangleSlice()) == 0 {
		return nil, fmt.Errorf("decimation to %d faces produced an empty mesh", targetFaces)
	}
	return out, nil
}
