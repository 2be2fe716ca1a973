package uvmend

import (
	"container/heap"
	"math"
)

// Seam pathfinding is classic Dijkstra restricted to the island's vertices,
// with 3D edge length as the weight. UV lengths are exactly the unreliable
// quantity being repaired, so they never enter the cost.

// pathState is one priority-queue entry: a candidate distance to a vertex.
// seq breaks ties so the ordering is deterministic.
type pathState struct {
	dist float64
	seq  int
	vert int
}

// pathQueue is a min-heap of pathStates.
type pathQueue []pathState

func (q pathQueue) Len() int { return len(q) }
func (q pathQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q pathQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pathQueue) Push(x any) {
	*q = append(*q, x.(pathState))
}

func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	s := old[n-1]
	*q = old[:n-1]
	return s
}

// parentLink records how a vertex was reached during the search.
type parentLink struct {
	vert int
	edge int
}

// shortestPathToBoundary finds the cheapest edge path from start to any
// vertex in target, never leaving islandVerts. The search stops at the first
// target vertex popped from the queue, which Dijkstra guarantees is the
// nearest one.
//
// Returns the edge ids from start to the reached target and the path's 3D
// length. A nil path means either start already lies on the target set (no
// cut needed) or no target is reachable.
func shortestPathToBoundary(m *Mesh, start int, target, islandVerts map[int]struct{}) ([]int, float64) {
	if _, onTarget := target[start]; onTarget {
		return nil, 0
	}
	if _, in := islandVerts[start]; !in {
		return nil, 0
	}

	dist := make(map[int]float64, len(islandVerts))
	for v := range islandVerts {
		dist[v] = math.Inf(1)
	}
	dist[start] = 0

	parent := make(map[int]parentLink)
	seq := 0

	q := &pathQueue{{dist: 0, seq: seq, vert: start}}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(pathState)
		u := cur.vert

		if cur.dist > dist[u] {
			continue // stale entry
		}

		if _, reached := target[u]; reached {
			return backtrack(parent, u), cur.dist
		}

		for _, e := range m.Verts[u].Edges {
			v := m.Edges[e].OtherVert(u)
			if _, in := islandVerts[v]; !in {
				continue
			}
			nd := dist[u] + m.EdgeLength3D(e)
			if nd < dist[v] {
				dist[v] = nd
				parent[v] = parentLink{vert: u, edge: e}
				seq++
				heap.Push(q, pathState{dist: nd, seq: seq, vert: v})
			}
		}
	}
	return nil, 0
}

// backtrack walks the parent links from end back to the source and returns
// the edge ids in source-to-end order.
func backtrack(parent map[int]parentLink, end int) []int {
	var path []int
	for cur := end; ; {
		link, ok := parent[cur]
		if !ok {
			break
		}
		path = append(path, link.edge)
		cur = link.vert
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
