package uvmend

// uvMatchTol is the tolerance for treating two UV coordinates as the same
// point. Mirrors the epsilon used by unwrap solvers when reporting change.
const uvMatchTol = 1e-6

// uvsMatchAtEdge reports whether faces f1 and f2 assign matching UVs to both
// endpoints of their shared edge e. A mismatch at either endpoint means the
// edge is a UV discontinuity between the two faces.
func (m *Mesh) uvsMatchAtEdge(f1, f2, e int) bool {
	ed := m.Edges[e]
	for _, v := range [2]int{ed.V1, ed.V2} {
		uv1, ok1 := m.CornerUV(f1, v)
		uv2, ok2 := m.CornerUV(f2, v)
		if !ok1 || !ok2 {
			return false
		}
		if !uv1.Approx(uv2, uvMatchTol) {
			return false
		}
	}
	return true
}

// DetectIslands partitions all faces of the mesh into UV-continuity islands.
// Two faces belong to the same island iff they are connected through shared
// edges whose UVs match at both endpoints.
//
// The returned islands are pairwise disjoint and their union is the full
// face set. Islands are ordered by their lowest face id.
func DetectIslands(m *Mesh) []FaceSet {
	all := make([]int, len(m.Faces))
	for i := range all {
		all[i] = i
	}
	islands, _ := DetectIslandsIn(m, all)
	return islands
}

// DetectIslandsIn partitions the given face subset into UV-continuity
// islands. Faces outside the subset are ignored even when UV-continuous with
// a subset face.
//
// Returns ErrBadSubset if the subset contains duplicate or out-of-range
// face ids; that is a contract violation, not a recoverable condition.
func DetectIslandsIn(m *Mesh, subset []int) ([]FaceSet, error) {
	inSubset := make(map[int]struct{}, len(subset))
	for _, f := range subset {
		if f < 0 || f >= len(m.Faces) {
			return nil, ErrBadSubset
		}
		if _, dup := inSubset[f]; dup {
			return nil, ErrBadSubset
		}
		inSubset[f] = struct{}{}
	}

	visited := make(map[int]struct{}, len(subset))
	var islands []FaceSet

	// Iterative BFS with an explicit worklist; meshes can be large enough
	// that recursion depth would be a real concern.
	for _, start := range subset {
		if _, done := visited[start]; done {
			continue
		}
		island := make(FaceSet)
		queue := []int{start}
		for len(queue) > 0 {
			f := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			if _, done := visited[f]; done {
				continue
			}
			visited[f] = struct{}{}
			island.Add(f)

			for _, e := range m.Faces[f].Edges {
				for _, nf := range m.Edges[e].Faces {
					if nf == f {
						continue
					}
					if _, ok := inSubset[nf]; !ok {
						continue
					}
					if _, done := visited[nf]; done {
						continue
					}
					if m.uvsMatchAtEdge(f, nf, e) {
						queue = append(queue, nf)
					}
				}
			}
		}
		islands = append(islands, island)
	}
	return islands, nil
}

// islandVertSet collects the ids of all vertices used by the island's faces.
func islandVertSet(m *Mesh, island FaceSet) map[int]struct{} {
	verts := make(map[int]struct{})
	for f := range island {
		for _, v := range m.Faces[f].Verts {
			verts[v] = struct{}{}
		}
	}
	return verts
}
