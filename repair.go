package uvmend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Reparameterizer is the external unwrap solver. Given a face subset with
// some seam edges marked, it recomputes the subset's UV coordinates (in the
// source pipeline, a "minimum stretch" minimizer) and reports whether any UV
// moved by more than a small epsilon. It must be idempotent on unchanged
// input.
type Reparameterizer interface {
	Unwrap(m *Mesh, faces FaceSet) (changed bool, err error)
}

// ErrNilReparameterizer is returned by NewRepairer when no solver is given.
var ErrNilReparameterizer = errors.New("uvmend: reparameterizer must not be nil")

// Stats is the per-run report: pure data for the caller's logging or UI.
// A "not fixed" vortex is visible as VortexesFound > VortexesFixed; the run
// itself never fails because of one.
type Stats struct {
	IslandsChecked int
	VortexesFound  int
	VortexesFixed  int

	// Islands holds one metrics record per island checked, in island order.
	Islands []IslandMetrics
}

// Repairer drives vortex detection and repair over a mesh. Create one with
// NewRepairer; the zero value is not usable.
//
// A Repairer is stateless between calls and may be reused, but a single
// Repair call owns the mesh's UV and seam data for its duration.
type Repairer struct {
	cfg    Config
	unwrap Reparameterizer
}

// NewRepairer creates a Repairer that uses the given external unwrap solver.
func NewRepairer(unwrap Reparameterizer, opts ...Option) (*Repairer, error) {
	if unwrap == nil {
		return nil, ErrNilReparameterizer
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Repairer{cfg: cfg, unwrap: unwrap}, nil
}

// Config returns the repairer's resolved configuration.
func (r *Repairer) Config() Config {
	return r.cfg
}

// Repair detects all UV islands of the mesh, bootstraps degenerate ones,
// and runs a bounded repair session on every island classified as a vortex.
//
// ctx is checked between iterations; cancelling aborts the remaining work
// but still reverts session seams when RestoreSeams is set. The returned
// Stats describe everything examined before the cancellation.
func (r *Repairer) Repair(ctx context.Context, m *Mesh) (*Stats, error) {
	log := Logger()

	islands := DetectIslands(m)

	// Bootstrap pass: islands that cannot be seam-repaired directly, either
	// because they have no boundary at all or because every face is crushed
	// to zero UV area, get two starter seams and one unwrap so the normal
	// loop applies.
	tracker := make(map[int]struct{})
	bootstrapped := make(FaceSet)
	for _, island := range islands {
		if !islandIsDegenerate(m, island) {
			continue
		}
		seamEdges := bootstrapSeamEdges(m, island)
		if seamEdges == nil {
			continue
		}
		markSeams(m, seamEdges, tracker)
		for f := range island {
			bootstrapped.Add(f)
		}
		log.Warn("bootstrapping degenerate island",
			slog.Int("faces", len(island)),
			slog.Int("seam_edges", len(seamEdges)))
	}
	if len(bootstrapped) > 0 {
		if _, err := r.unwrap.Unwrap(m, bootstrapped); err != nil {
			r.finish(m, tracker)
			return nil, fmt.Errorf("uvmend: bootstrap unwrap: %w", err)
		}
		islands = DetectIslands(m)
	}

	stats := &Stats{IslandsChecked: len(islands)}
	for i, island := range islands {
		if err := ctx.Err(); err != nil {
			r.finish(m, tracker)
			return stats, err
		}

		metrics := MeasureIsland(m, island, r.cfg)
		stats.Islands = append(stats.Islands, metrics)
		if !metrics.IsVortex {
			continue
		}
		stats.VortexesFound++

		log.Info("vortex island detected",
			slog.Int("island", i),
			slog.Int("faces", len(island)),
			slog.Float64("density_ratio", metrics.DensityRatio),
			slog.Float64("max_shape_cv", metrics.MaxShapeCV))

		fixed, cuts, err := r.RepairIsland(ctx, m, island)
		if err != nil {
			r.finish(m, tracker)
			return stats, err
		}
		if fixed {
			stats.VortexesFixed++
		}
		log.Info("vortex session finished",
			slog.Int("island", i),
			slog.Bool("fixed", fixed),
			slog.Int("cuts", cuts))
	}

	r.finish(m, tracker)
	return stats, nil
}

// finish reverts bootstrap seams when the configuration asks for it.
func (r *Repairer) finish(m *Mesh, tracker map[int]struct{}) {
	if r.cfg.RestoreSeams {
		restoreSeams(m, tracker)
	}
}

// RepairIsland runs one bounded repair session over a single island.
// It returns whether the island measures clean at exit and how many seam
// cuts were made.
//
// The session loop:
//  1. connect multiple boundary loops into one, then unwrap once
//  2. re-measure; not a vortex means success
//  3. unwrap; an unchanged result counts as a failure but does not abort,
//     since an earlier cut may still need a re-measure to show up
//  4. still a vortex: cut the shortest seam from the distortion center
//     (max-density face) to the pre-existing boundary
//  5. stop on success, cut budget, or too many consecutive failures
//
// Seams toggled by the session are reverted on exit when RestoreSeams is
// set, including on failure or cancellation.
func (r *Repairer) RepairIsland(ctx context.Context, m *Mesh, island FaceSet) (bool, int, error) {
	log := Logger()
	tracker := make(map[int]struct{})

	defer func() {
		if r.cfg.RestoreSeams {
			restoreSeams(m, tracker)
		}
	}()

	loops := boundaryLoops(m, island, nil)
	if len(loops) > 1 {
		seams, _ := connectLoops(m, island, loops, tracker)
		log.Debug("connected boundary loops",
			slog.Int("loops", len(loops)),
			slog.Int("seams_added", seams))
		if seams > 0 {
			if _, err := r.unwrap.Unwrap(m, island); err != nil {
				return false, 0, fmt.Errorf("uvmend: unwrap after loop merge: %w", err)
			}
		}
	}

	cuts := 0
	failures := 0

	for cuts < r.cfg.MaxCuts {
		if err := ctx.Err(); err != nil {
			return false, cuts, err
		}

		metrics := MeasureIsland(m, island, r.cfg)
		if !metrics.IsVortex {
			return true, cuts, nil
		}

		changed, err := r.unwrap.Unwrap(m, island)
		if err != nil {
			return false, cuts, fmt.Errorf("uvmend: unwrap: %w", err)
		}
		if !changed {
			failures++
			if failures >= r.cfg.MaxConsecutiveFailures {
				log.Info("giving up: solver made no progress",
					slog.Int("failures", failures))
				break
			}
		}

		densities := FaceDensities(m, island)
		metrics = classify(island, densities, shapeDistortion(m, island), r.cfg)
		if !metrics.IsVortex {
			return true, cuts, nil
		}

		center := vortexCenter(island, densities)
		if center < 0 {
			break
		}

		path := r.walkToBoundary(m, island, center, tracker)
		if len(path) == 0 {
			// No reachable boundary from any vertex of the center face.
			failures++
			log.Debug("no path to boundary",
				slog.Int("center_face", center),
				slog.Int("failures", failures))
			if failures >= r.cfg.MaxConsecutiveFailures {
				break
			}
			continue
		}

		markSeams(m, path, tracker)
		cuts++
		failures = 0
		log.Debug("seam cut",
			slog.Int("center_face", center),
			slog.Int("path_edges", len(path)),
			slog.Int("cuts", cuts))
	}

	return false, cuts, nil
}

// walkToBoundary finds the shortest seam path from the distortion-center
// face to the island's pre-existing boundary (session seams are not counted
// as boundary). If the first corner vertex has no path, the face's other
// corners are tried before giving up.
func (r *Repairer) walkToBoundary(m *Mesh, island FaceSet, centerFace int, tracker map[int]struct{}) []int {
	target := boundaryVerts(m, island, tracker)
	if len(target) == 0 {
		return nil
	}
	verts := islandVertSet(m, island)

	for _, start := range m.Faces[centerFace].Verts {
		if path, _ := shortestPathToBoundary(m, start, target, verts); len(path) > 0 {
			return path
		}
	}
	return nil
}

// islandIsDegenerate reports whether an island needs bootstrap seams before
// normal repair: it has no boundary loop at all, or every face has infinite
// texel density.
func islandIsDegenerate(m *Mesh, island FaceSet) bool {
	if len(boundaryLoops(m, island, nil)) == 0 {
		return true
	}
	for _, d := range FaceDensities(m, island) {
		if !math.IsInf(d, 1) {
			return false
		}
	}
	return len(island) > 0
}

// bootstrapSeamEdges picks two contiguous non-seam edges within the island,
// the minimum seam topology the external solver needs on an island that was
// never unwrapped. Returns nil if no face offers such a pair.
func bootstrapSeamEdges(m *Mesh, island FaceSet) []int {
	for _, f := range island.Sorted() {
		var nonSeam []int
		for _, e := range m.Faces[f].Edges {
			if !m.Edges[e].Seam {
				nonSeam = append(nonSeam, e)
			}
		}
		for i, e1 := range nonSeam {
			for _, e2 := range nonSeam[i+1:] {
				if edgesShareVert(m.Edges[e1], m.Edges[e2]) {
					return []int{e1, e2}
				}
			}
		}
	}
	return nil
}

func edgesShareVert(a, b Edge) bool {
	return a.V1 == b.V1 || a.V1 == b.V2 || a.V2 == b.V1 || a.V2 == b.V2
}
