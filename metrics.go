package uvmend

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// minUVArea is the smallest UV area treated as nonzero. Faces below it are
// considered fully crushed and get infinite texel density.
const minUVArea = 1e-12

// minEdgeLen is the smallest edge length treated as nonzero when computing
// per-edge 3D/UV length ratios.
const minEdgeLen = 1e-12

// IslandMetrics is the per-island distortion record reported to callers.
type IslandMetrics struct {
	// DensityRatio is max/min texel density across the island's faces.
	// A perfectly uniform island measures 1.0; +Inf means at least one
	// face has (near) zero UV area.
	DensityRatio float64

	// MaxShapeCV and AvgShapeCV summarize the per-face coefficient of
	// variation of 3D/UV edge-length ratios. CV 0 means uniform scaling;
	// high CV means uneven stretching.
	MaxShapeCV float64
	AvgShapeCV float64

	// WorstFace is the face with the highest shape CV, or -1.
	WorstFace int

	// IsVortex reports whether either metric exceeded its threshold.
	IsVortex bool
}

// FaceDensities computes the texel density (3D area / UV area) for every
// face of the island. Faces with UV area below minUVArea map to +Inf.
func FaceDensities(m *Mesh, island FaceSet) map[int]float64 {
	densities := make(map[int]float64, len(island))
	for f := range island {
		area3D := m.Area3D(f)
		areaUV := m.AreaUV(f)
		if areaUV < minUVArea {
			densities[f] = math.Inf(1)
		} else {
			densities[f] = area3D / areaUV
		}
	}
	return densities
}

// shapeStats summarizes per-face shape distortion across an island.
type shapeStats struct {
	maxCV     float64
	avgCV     float64
	worstFace int
	faceCVs   map[int]float64
}

// shapeDistortion computes, for each face, the coefficient of variation
// (stddev/mean) of the face's 3D/UV edge-length ratios. Uniform scaling
// yields CV 0 regardless of scale; uneven stretching yields high CV.
// Degenerate zero-length UV edges push the face's CV to +Inf.
func shapeDistortion(m *Mesh, island FaceSet) shapeStats {
	faceCVs := make(map[int]float64, len(island))

	for _, f := range island.Sorted() {
		face := m.Faces[f]
		n := len(face.Verts)

		ratios := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			len3D := m.EdgeLength3D(face.Edges[i])
			lenUV := face.UVs[i].Distance(face.UVs[(i+1)%n])

			switch {
			case lenUV < minEdgeLen:
				ratios = append(ratios, math.Inf(1))
			case len3D < minEdgeLen:
				ratios = append(ratios, 0)
			default:
				ratios = append(ratios, len3D/lenUV)
			}
		}
		if len(ratios) < 2 {
			continue
		}

		var finite []float64
		for _, r := range ratios {
			if !math.IsInf(r, 1) && r > 0 {
				finite = append(finite, r)
			}
		}
		if len(finite) < 2 {
			faceCVs[f] = math.Inf(1)
			continue
		}

		mean := stat.Mean(finite, nil)
		if mean < minEdgeLen {
			faceCVs[f] = math.Inf(1)
			continue
		}
		faceCVs[f] = stat.PopStdDev(finite, nil) / mean
	}

	s := shapeStats{worstFace: -1, faceCVs: faceCVs}
	if len(faceCVs) == 0 {
		return s
	}

	var finiteSum float64
	finiteCount := 0
	for _, f := range sortedKeys(faceCVs) {
		cv := faceCVs[f]
		if math.IsInf(cv, 1) {
			// Any infinite face dominates both summaries.
			s.maxCV = math.Inf(1)
			if s.worstFace == -1 || !math.IsInf(faceCVs[s.worstFace], 1) {
				s.worstFace = f
			}
			continue
		}
		finiteSum += cv
		finiteCount++
		if s.worstFace == -1 || (!math.IsInf(s.maxCV, 1) && cv > s.maxCV) {
			s.maxCV = cv
			s.worstFace = f
		}
	}
	if finiteCount > 0 {
		s.avgCV = finiteSum / float64(finiteCount)
	} else {
		s.avgCV = math.Inf(1)
	}
	if math.IsInf(s.maxCV, 1) {
		s.avgCV = math.Inf(1)
	}
	return s
}

// densityRatio reduces per-face densities to the island-level max/min ratio
// over finite values. Any infinite density makes the ratio infinite; a
// non-positive minimum does too.
func densityRatio(island FaceSet, densities map[int]float64) float64 {
	var finite []float64
	hasInf := false
	for f := range island {
		d, ok := densities[f]
		if !ok {
			continue
		}
		if math.IsInf(d, 1) {
			hasInf = true
			continue
		}
		finite = append(finite, d)
	}

	if len(finite) >= 2 {
		minD, maxD := finite[0], finite[0]
		for _, d := range finite[1:] {
			minD = math.Min(minD, d)
			maxD = math.Max(maxD, d)
		}
		if minD <= 0 {
			return math.Inf(1)
		}
		return maxD / minD
	}
	if hasInf {
		return math.Inf(1)
	}
	return 0
}

// MeasureIsland computes the distortion metrics for one island and
// classifies it against the thresholds in cfg. Islands with fewer than two
// faces are never vortexes: a single face has no relative density spread.
func MeasureIsland(m *Mesh, island FaceSet, cfg Config) IslandMetrics {
	if len(island) < 2 {
		return IslandMetrics{WorstFace: -1}
	}

	densities := FaceDensities(m, island)
	shape := shapeDistortion(m, island)
	return classify(island, densities, shape, cfg)
}

// classify combines precomputed metrics into an IslandMetrics record.
func classify(island FaceSet, densities map[int]float64, shape shapeStats, cfg Config) IslandMetrics {
	if len(island) < 2 {
		return IslandMetrics{WorstFace: -1}
	}
	ratio := densityRatio(island, densities)
	return IslandMetrics{
		DensityRatio: ratio,
		MaxShapeCV:   shape.maxCV,
		AvgShapeCV:   shape.avgCV,
		WorstFace:    shape.worstFace,
		IsVortex:     ratio > cfg.DensityThreshold || shape.maxCV > cfg.ShapeCVThreshold,
	}
}

// vortexCenter returns the face with the highest texel density: the tip of
// the vortex, where faces are most crushed. Ties resolve to the lowest face
// id. Returns -1 for an empty island.
func vortexCenter(island FaceSet, densities map[int]float64) int {
	center := -1
	maxDensity := math.Inf(-1)
	for _, f := range island.Sorted() {
		d := densities[f]
		if d > maxDensity {
			maxDensity = d
			center = f
		}
	}
	return center
}

func sortedKeys(m map[int]float64) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
