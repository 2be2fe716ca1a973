package uvmend

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// Shared mesh fixtures for the package tests.

func mustFace(t *testing.T, m *Mesh, verts []int, uvs []UV) int {
	t.Helper()
	f, err := m.AddFace(verts, uvs)
	if err != nil {
		t.Fatalf("AddFace(%v) failed: %v", verts, err)
	}
	return f
}

// buildTriSquare returns a unit square in 3D split into two triangles, with
// UVs equal to the XY positions. One island, zero distortion.
func buildTriSquare(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh()
	v0 := m.AddVertex(r3.Vec{X: 0, Y: 0})
	v1 := m.AddVertex(r3.Vec{X: 1, Y: 0})
	v2 := m.AddVertex(r3.Vec{X: 1, Y: 1})
	v3 := m.AddVertex(r3.Vec{X: 0, Y: 1})
	mustFace(t, m, []int{v0, v1, v2}, []UV{UVxy(0, 0), UVxy(1, 0), UVxy(1, 1)})
	mustFace(t, m, []int{v0, v2, v3}, []UV{UVxy(0, 0), UVxy(1, 1), UVxy(0, 1)})
	return m
}

// fanRingUV places ring vertex k of the fan at the given UV radius around
// (0.5, 0.5).
func fanRingUV(k int, radius float64) UV {
	angle := 2 * math.Pi * float64(k-1) / 8
	return UVxy(0.5+radius*math.Cos(angle), 0.5+radius*math.Sin(angle))
}

// pinchedFanRadius returns the UV radius used for ring vertex k in the
// pinched fan: half the ring is laid out normally, half is crushed toward
// the center.
func pinchedFanRadius(k int) float64 {
	if k <= 4 {
		return 0.45
	}
	return 0.002
}

// buildPinchedFan returns a closed fan of 8 triangles around a center
// vertex, with half the ring's UVs crushed toward the center: a vortex.
// The 3D geometry is a flat unit octagon.
func buildPinchedFan(t *testing.T) (*Mesh, FaceSet) {
	t.Helper()
	m := NewMesh()
	center := m.AddVertex(r3.Vec{})
	ring := make([]int, 8)
	for k := 1; k <= 8; k++ {
		angle := 2 * math.Pi * float64(k-1) / 8
		ring[k-1] = m.AddVertex(r3.Vec{X: math.Cos(angle), Y: math.Sin(angle)})
	}

	island := make(FaceSet)
	for j := 0; j < 8; j++ {
		k1, k2 := j+1, (j+1)%8+1
		f := mustFace(t, m,
			[]int{center, ring[k1-1], ring[k2-1]},
			[]UV{
				UVxy(0.5, 0.5),
				fanRingUV(k1, pinchedFanRadius(k1)),
				fanRingUV(k2, pinchedFanRadius(k2)),
			})
		island.Add(f)
	}
	return m, island
}

// uncrushFan returns a Reparameterizer stub that, once any seam exists on
// the mesh, spreads every ring UV of the fan to a uniform radius. It models
// a solver that only escapes the vortex after a seam cut.
func uncrushFan() Reparameterizer {
	return reparamFunc(func(mesh *Mesh, faces FaceSet) (bool, error) {
		hasSeam := false
		for i := range mesh.Edges {
			if mesh.Edges[i].Seam {
				hasSeam = true
				break
			}
		}
		if !hasSeam {
			return false, nil
		}

		changed := false
		for f := range faces {
			face := mesh.Faces[f]
			for i, v := range face.Verts {
				if v == 0 {
					continue // center vertex stays put
				}
				want := fanRingUV(v, 0.45)
				if !face.UVs[i].Approx(want, uvMatchTol) {
					mesh.Faces[f].UVs[i] = want
					changed = true
				}
			}
		}
		return changed, nil
	})
}

// buildAnnulus returns a 3x3 quad grid with the center quad missing: one
// island with two boundary loops (outer rim and inner hole).
func buildAnnulus(t *testing.T) (*Mesh, FaceSet) {
	t.Helper()
	m := NewMesh()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			m.AddVertex(r3.Vec{X: float64(x), Y: float64(y)})
		}
	}
	vid := func(x, y int) int { return y*4 + x }
	uv := func(x, y int) UV { return UVxy(float64(x)/3, float64(y)/3) }

	island := make(FaceSet)
	for cy := 0; cy < 3; cy++ {
		for cx := 0; cx < 3; cx++ {
			if cx == 1 && cy == 1 {
				continue // the hole
			}
			f := mustFace(t, m,
				[]int{vid(cx, cy), vid(cx+1, cy), vid(cx+1, cy+1), vid(cx, cy+1)},
				[]UV{uv(cx, cy), uv(cx+1, cy), uv(cx+1, cy+1), uv(cx, cy+1)})
			island.Add(f)
		}
	}
	return m, island
}

// buildCollapsedTriangle returns a single triangle whose three UVs coincide
// at the origin: the degenerate never-unwrapped case.
func buildCollapsedTriangle(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh()
	v0 := m.AddVertex(r3.Vec{X: 0, Y: 0})
	v1 := m.AddVertex(r3.Vec{X: 1, Y: 0})
	v2 := m.AddVertex(r3.Vec{X: 0, Y: 1})
	mustFace(t, m, []int{v0, v1, v2}, []UV{UVxy(0, 0), UVxy(0, 0), UVxy(0, 0)})
	return m
}

// buildSquarePair returns two disjoint 2-triangle squares whose UV bounding
// boxes overlap: [0,1]x[0,1] and [0.5,1.5]x[0,1].
func buildSquarePair(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh()
	addSquare := func(offsetU float64) {
		v0 := m.AddVertex(r3.Vec{X: 0, Y: 0})
		v1 := m.AddVertex(r3.Vec{X: 1, Y: 0})
		v2 := m.AddVertex(r3.Vec{X: 1, Y: 1})
		v3 := m.AddVertex(r3.Vec{X: 0, Y: 1})
		mustFace(t, m, []int{v0, v1, v2},
			[]UV{UVxy(offsetU, 0), UVxy(offsetU+1, 0), UVxy(offsetU+1, 1)})
		mustFace(t, m, []int{v0, v2, v3},
			[]UV{UVxy(offsetU, 0), UVxy(offsetU+1, 1), UVxy(offsetU, 1)})
	}
	addSquare(0)
	addSquare(0.5)
	return m
}

// buildTetrahedron returns a closed tetrahedron with every UV coincident at
// the origin: one island, zero boundary loops.
func buildTetrahedron(t *testing.T) *Mesh {
	t.Helper()
	m := NewMesh()
	v0 := m.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	v1 := m.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	v2 := m.AddVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	v3 := m.AddVertex(r3.Vec{X: 0, Y: 0, Z: 1})
	zero := []UV{{}, {}, {}}
	mustFace(t, m, []int{v0, v1, v2}, zero)
	mustFace(t, m, []int{v0, v1, v3}, zero)
	mustFace(t, m, []int{v1, v2, v3}, zero)
	mustFace(t, m, []int{v0, v2, v3}, zero)
	return m
}

// appendCleanSquare adds an undistorted two-triangle square as a separate
// island, with UVs offset so its bounding box stays clear of [0,1]².
func appendCleanSquare(t *testing.T, m *Mesh) FaceSet {
	t.Helper()
	v0 := m.AddVertex(r3.Vec{X: 5, Y: 0})
	v1 := m.AddVertex(r3.Vec{X: 6, Y: 0})
	v2 := m.AddVertex(r3.Vec{X: 6, Y: 1})
	v3 := m.AddVertex(r3.Vec{X: 5, Y: 1})
	f0 := mustFace(t, m, []int{v0, v1, v2}, []UV{UVxy(2, 0), UVxy(3, 0), UVxy(3, 1)})
	f1 := mustFace(t, m, []int{v0, v2, v3}, []UV{UVxy(2, 0), UVxy(3, 1), UVxy(2, 1)})
	return NewFaceSet(f0, f1)
}

// reparamFunc adapts a function to the Reparameterizer interface.
type reparamFunc func(m *Mesh, faces FaceSet) (bool, error)

func (f reparamFunc) Unwrap(m *Mesh, faces FaceSet) (bool, error) {
	return f(m, faces)
}

// noopUnwrap never changes anything.
var noopUnwrap = reparamFunc(func(*Mesh, FaceSet) (bool, error) {
	return false, nil
})

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// seamFlags captures the full is_seam state of the mesh.
func seamFlags(m *Mesh) []bool {
	out := make([]bool, len(m.Edges))
	for i := range m.Edges {
		out[i] = m.Edges[i].Seam
	}
	return out
}
