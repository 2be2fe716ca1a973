package uvmend

import (
	"math"
	"sort"
)

// overlapIterationCap bounds the shift loop per island. Hitting it means a
// pathological configuration; the report makes that observable.
const overlapIterationCap = 1000

// BBox is an axis-aligned UV bounding box.
type BBox struct {
	MinU, MinV, MaxU, MaxV float64
}

// Overlaps reports whether two boxes overlap. Touching boxes do not count.
func (b BBox) Overlaps(o BBox) bool {
	if b.MaxU <= o.MinU || o.MaxU <= b.MinU {
		return false
	}
	if b.MaxV <= o.MinV || o.MaxV <= b.MinV {
		return false
	}
	return true
}

// IslandBBox computes the axis-aligned UV bounding box over all corners of
// the island's faces.
func IslandBBox(m *Mesh, island FaceSet) BBox {
	b := BBox{
		MinU: math.Inf(1), MinV: math.Inf(1),
		MaxU: math.Inf(-1), MaxV: math.Inf(-1),
	}
	for f := range island {
		for _, uv := range m.Faces[f].UVs {
			b.MinU = math.Min(b.MinU, uv.U)
			b.MinV = math.Min(b.MinV, uv.V)
			b.MaxU = math.Max(b.MaxU, uv.U)
			b.MaxV = math.Max(b.MaxV, uv.V)
		}
	}
	return b
}

// translateIslandUV shifts every UV corner of the island's faces.
func translateIslandUV(m *Mesh, island FaceSet, du, dv float64) {
	for f := range island {
		uvs := m.Faces[f].UVs
		for i := range uvs {
			uvs[i].U += du
			uvs[i].V += dv
		}
	}
}

// OverlapReport describes what ResolveOverlaps did.
type OverlapReport struct {
	// Shifts is the number of island translations performed.
	Shifts int

	// CapHit is true when the per-island iteration safety valve tripped,
	// in which case some overlap may remain.
	CapHit bool
}

// ResolveOverlaps shifts whole islands along +U until no two islands'
// bounding boxes overlap, leaving margin between them. Islands are
// processed left to right; each is pushed past the rightmost earlier island
// it collides with. A 1-D strip heuristic: islands end up separated, not
// tightly packed.
func ResolveOverlaps(m *Mesh, islands []FaceSet, margin float64) OverlapReport {
	var report OverlapReport
	if len(islands) <= 1 {
		return report
	}

	minU := make([]float64, len(islands))
	for i, island := range islands {
		minU[i] = IslandBBox(m, island).MinU
	}
	order := make([]int, len(islands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return minU[order[a]] < minU[order[b]]
	})

	for i := 1; i < len(order); i++ {
		island := islands[order[i]]

		needsShift := true
		for iter := 0; needsShift; iter++ {
			if iter >= overlapIterationCap {
				report.CapHit = true
				break
			}
			needsShift = false
			cur := IslandBBox(m, island)

			for j := 0; j < i; j++ {
				prior := IslandBBox(m, islands[order[j]])
				if cur.Overlaps(prior) {
					shift := prior.MaxU - cur.MinU + margin
					translateIslandUV(m, island, shift, 0)
					report.Shifts++
					needsShift = true
					break
				}
			}
		}
	}
	return report
}
