package uvmend

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Storage follows an arena + index model: vertices, edges and faces live in
// flat slices and reference each other by integer id, with adjacency kept as
// index lists. The edge table is derived while faces are added.

// Vertex is a mesh vertex: a 3D position plus the ids of its incident edges.
type Vertex struct {
	Position r3.Vec
	Edges    []int
}

// Edge connects two vertices and records the faces that use it.
// Seam marks the edge as an allowed UV discontinuity; seams are the only
// control surface the external re-parameterization honors.
type Edge struct {
	V1, V2 int
	Seam   bool
	Faces  []int
}

// OtherVert returns the endpoint of the edge that is not v.
func (e Edge) OtherVert(v int) int {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// Face is an ordered loop of corners. Verts and UVs are parallel slices;
// Edges[i] is the edge between Verts[i] and Verts[(i+1)%len(Verts)].
type Face struct {
	Verts []int
	UVs   []UV
	Edges []int
}

// Mesh is a face-vertex mesh with per-corner UVs and per-edge seam flags.
// The zero value is not usable; create meshes with NewMesh.
type Mesh struct {
	Verts []Vertex
	Edges []Edge
	Faces []Face

	edgeIndex map[[2]int]int
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{edgeIndex: make(map[[2]int]int)}
}

// AddVertex appends a vertex at position p and returns its id.
func (m *Mesh) AddVertex(p r3.Vec) int {
	m.Verts = append(m.Verts, Vertex{Position: p})
	return len(m.Verts) - 1
}

// AddFace appends a face with the given corner vertices and UVs and returns
// its id. Edges between consecutive corners are created on demand and shared
// with previously added faces.
func (m *Mesh) AddFace(verts []int, uvs []UV) (int, error) {
	if len(verts) < 3 {
		return -1, fmt.Errorf("uvmend: face needs at least 3 corners, got %d", len(verts))
	}
	if len(verts) != len(uvs) {
		return -1, fmt.Errorf("uvmend: face has %d vertices but %d UVs", len(verts), len(uvs))
	}
	for _, v := range verts {
		if v < 0 || v >= len(m.Verts) {
			return -1, fmt.Errorf("uvmend: face references vertex %d, mesh has %d", v, len(m.Verts))
		}
	}

	fi := len(m.Faces)
	f := Face{
		Verts: append([]int(nil), verts...),
		UVs:   append([]UV(nil), uvs...),
		Edges: make([]int, len(verts)),
	}
	for i := range verts {
		a, b := verts[i], verts[(i+1)%len(verts)]
		ei := m.ensureEdge(a, b)
		m.Edges[ei].Faces = append(m.Edges[ei].Faces, fi)
		f.Edges[i] = ei
	}
	m.Faces = append(m.Faces, f)
	return fi, nil
}

// ensureEdge returns the id of the edge between a and b, creating it if it
// does not exist yet.
func (m *Mesh) ensureEdge(a, b int) int {
	key := edgeKey(a, b)
	if ei, ok := m.edgeIndex[key]; ok {
		return ei
	}
	ei := len(m.Edges)
	m.Edges = append(m.Edges, Edge{V1: a, V2: b})
	m.edgeIndex[key] = ei
	m.Verts[a].Edges = append(m.Verts[a].Edges, ei)
	m.Verts[b].Edges = append(m.Verts[b].Edges, ei)
	return ei
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// EdgeBetween returns the id of the edge connecting vertices a and b,
// or -1 if no such edge exists.
func (m *Mesh) EdgeBetween(a, b int) int {
	if ei, ok := m.edgeIndex[edgeKey(a, b)]; ok {
		return ei
	}
	return -1
}

// EdgeLength3D returns the 3D length of an edge.
func (m *Mesh) EdgeLength3D(e int) float64 {
	ed := m.Edges[e]
	return r3.Norm(r3.Sub(m.Verts[ed.V2].Position, m.Verts[ed.V1].Position))
}

// Area3D returns the 3D surface area of a face, computed by fan
// triangulation from the first corner.
func (m *Mesh) Area3D(f int) float64 {
	face := m.Faces[f]
	if len(face.Verts) < 3 {
		return 0
	}
	p0 := m.Verts[face.Verts[0]].Position
	var area float64
	for i := 1; i < len(face.Verts)-1; i++ {
		a := r3.Sub(m.Verts[face.Verts[i]].Position, p0)
		b := r3.Sub(m.Verts[face.Verts[i+1]].Position, p0)
		area += 0.5 * r3.Norm(r3.Cross(a, b))
	}
	return area
}

// AreaUV returns the absolute UV-space area of a face (shoelace formula).
func (m *Mesh) AreaUV(f int) float64 {
	uvs := m.Faces[f].UVs
	if len(uvs) < 3 {
		return 0
	}
	var area float64
	for i := range uvs {
		j := (i + 1) % len(uvs)
		area += uvs[i].U * uvs[j].V
		area -= uvs[j].U * uvs[i].V
	}
	return math.Abs(area / 2)
}

// CornerUV returns the UV the face assigns to vertex v, if v is one of the
// face's corners.
func (m *Mesh) CornerUV(f, v int) (UV, bool) {
	face := m.Faces[f]
	for i, fv := range face.Verts {
		if fv == v {
			return face.UVs[i], true
		}
	}
	return UV{}, false
}

// SetCornerUV sets the UV the face assigns to vertex v. It returns false if
// v is not a corner of the face.
func (m *Mesh) SetCornerUV(f, v int, uv UV) bool {
	face := &m.Faces[f]
	for i, fv := range face.Verts {
		if fv == v {
			face.UVs[i] = uv
			return true
		}
	}
	return false
}

// SetSeam sets the seam flag on an edge.
func (m *Mesh) SetSeam(e int, seam bool) {
	m.Edges[e].Seam = seam
}

// SeamEdges returns the ids of all edges currently flagged as seams.
func (m *Mesh) SeamEdges() []int {
	var out []int
	for i := range m.Edges {
		if m.Edges[i].Seam {
			out = append(out, i)
		}
	}
	return out
}

// FaceSet is a set of face ids.
type FaceSet map[int]struct{}

// NewFaceSet builds a FaceSet from the given face ids.
func NewFaceSet(faces ...int) FaceSet {
	s := make(FaceSet, len(faces))
	for _, f := range faces {
		s[f] = struct{}{}
	}
	return s
}

// Has reports whether f is in the set.
func (s FaceSet) Has(f int) bool {
	_, ok := s[f]
	return ok
}

// Add inserts f into the set.
func (s FaceSet) Add(f int) {
	s[f] = struct{}{}
}

// Sorted returns the face ids in ascending order.
// Set iteration order is randomized in Go; algorithms that must be
// deterministic iterate through Sorted instead.
func (s FaceSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ErrBadSubset is returned when a caller-supplied face subset is malformed:
// duplicate face ids or ids outside the mesh.
var ErrBadSubset = errors.New("uvmend: face subset contains duplicate or out-of-range faces")
