package uvmend

import (
	"math"
	"slices"
)

// isEdgeUVDiscontinuous reports whether e lies on the island's UV boundary:
// the edge has a single incident face in the island, or its two faces
// disagree on the UVs at either endpoint.
func (m *Mesh) isEdgeUVDiscontinuous(e int, island FaceSet) bool {
	faces := m.Edges[e].Faces
	if len(faces) == 1 {
		return true
	}

	f1, f2 := faces[0], faces[1]
	if !island.Has(f1) || !island.Has(f2) {
		return true
	}
	return !m.uvsMatchAtEdge(f1, f2, e)
}

// boundaryEdges collects the island's boundary edges, skipping any edge in
// ignore. During a repair session the seams added so far are ignored, so
// paths are always cut to the pre-existing boundary.
func boundaryEdges(m *Mesh, island FaceSet, ignore map[int]struct{}) []int {
	checked := make(map[int]struct{})
	var out []int
	for _, f := range island.Sorted() {
		for _, e := range m.Faces[f].Edges {
			if _, done := checked[e]; done {
				continue
			}
			checked[e] = struct{}{}
			if _, skip := ignore[e]; skip {
				continue
			}
			if m.isEdgeUVDiscontinuous(e, island) {
				out = append(out, e)
			}
		}
	}
	return out
}

// boundaryVerts collects the endpoint vertices of all boundary edges.
func boundaryVerts(m *Mesh, island FaceSet, ignore map[int]struct{}) map[int]struct{} {
	verts := make(map[int]struct{})
	for _, e := range boundaryEdges(m, island, ignore) {
		verts[m.Edges[e].V1] = struct{}{}
		verts[m.Edges[e].V2] = struct{}{}
	}
	return verts
}

// boundaryLoops groups an island's boundary-edge endpoints into connected
// components. Each component is one boundary loop: a disk-like island has
// one, a donut-like island has two, a fully closed parameterization has
// none.
func boundaryLoops(m *Mesh, island FaceSet, ignore map[int]struct{}) []map[int]struct{} {
	edges := boundaryEdges(m, island, ignore)
	if len(edges) == 0 {
		return nil
	}

	adj := make(map[int][]int)
	for _, e := range edges {
		v1, v2 := m.Edges[e].V1, m.Edges[e].V2
		adj[v1] = append(adj[v1], v2)
		adj[v2] = append(adj[v2], v1)
	}

	order := make([]int, 0, len(adj))
	for v := range adj {
		order = append(order, v)
	}
	slices.Sort(order)

	visited := make(map[int]struct{}, len(adj))
	var loops []map[int]struct{}
	for _, start := range order {
		if _, done := visited[start]; done {
			continue
		}
		loop := make(map[int]struct{})
		queue := []int{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			if _, done := visited[v]; done {
				continue
			}
			visited[v] = struct{}{}
			loop[v] = struct{}{}
			for _, n := range adj[v] {
				if _, done := visited[n]; !done {
					queue = append(queue, n)
				}
			}
		}
		loops = append(loops, loop)
	}
	return loops
}

// BoundaryLoops returns the island's boundary loops as sorted vertex-id
// slices, ordered by each loop's lowest vertex id.
func BoundaryLoops(m *Mesh, island FaceSet) [][]int {
	var out [][]int
	for _, loop := range boundaryLoops(m, island, nil) {
		verts := make([]int, 0, len(loop))
		for v := range loop {
			verts = append(verts, v)
		}
		slices.Sort(verts)
		out = append(out, verts)
	}
	return out
}

// loopSampleLimit caps how many vertices of a secondary loop are tried as
// Dijkstra sources when connecting loops.
const loopSampleLimit = 5

// connectLoops merges multiple boundary loops into one contiguous boundary
// by cutting the shortest seam path from each secondary loop to the
// accumulating main loop. Newly seamed edges are recorded in tracker.
// Returns the number of seams added and the merged main-loop vertex set.
func connectLoops(m *Mesh, island FaceSet, loops []map[int]struct{}, tracker map[int]struct{}) (int, map[int]struct{}) {
	if len(loops) == 0 {
		return 0, nil
	}
	main := make(map[int]struct{}, len(loops[0]))
	for v := range loops[0] {
		main[v] = struct{}{}
	}
	if len(loops) == 1 {
		return 0, main
	}

	verts := islandVertSet(m, island)
	seamsAdded := 0

	for _, other := range loops[1:] {
		sample := make([]int, 0, len(other))
		for v := range other {
			sample = append(sample, v)
		}
		slices.Sort(sample)
		if len(sample) > loopSampleLimit {
			sample = sample[:loopSampleLimit]
		}

		var bestPath []int
		bestLength := math.Inf(1)
		for _, start := range sample {
			path, dist := shortestPathToBoundary(m, start, main, verts)
			if len(path) > 0 && dist < bestLength {
				bestLength = dist
				bestPath = path
			}
		}

		if bestPath != nil {
			seamsAdded += markSeams(m, bestPath, tracker)
			// Grow the main loop so later loops can connect to the
			// enlarged boundary.
			for v := range other {
				main[v] = struct{}{}
			}
		}
	}
	return seamsAdded, main
}

// markSeams flags the given edges as seams. Already-seamed edges are left
// alone and not recorded, so a later restore only clears edges this session
// actually toggled. Returns the number of edges newly flagged.
func markSeams(m *Mesh, edges []int, tracker map[int]struct{}) int {
	marked := 0
	for _, e := range edges {
		if m.Edges[e].Seam {
			continue
		}
		m.Edges[e].Seam = true
		marked++
		if tracker != nil {
			tracker[e] = struct{}{}
		}
	}
	return marked
}

// restoreSeams clears every seam recorded in tracker, returning the mesh's
// seam topology to its pre-session state.
func restoreSeams(m *Mesh, tracker map[int]struct{}) {
	for e := range tracker {
		m.Edges[e].Seam = false
	}
}
