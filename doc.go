// Package uvmend detects and repairs pathological UV parameterizations on
// polygonal meshes.
//
// # Overview
//
// Some unwrap results contain "vortex" islands: a small cluster of faces
// crushed toward a point while the rest of the island looks plausible.
// Vortexes break texture baking and texel-density assumptions. uvmend
// partitions a mesh into UV-continuity islands, scores each island with two
// independent distortion metrics (texel-density ratio and per-face shape
// coefficient of variation), and repairs distorted islands by cutting a
// minimal-cost seam from the distortion center to the island boundary and
// re-running an external re-parameterization until the island measures clean
// or a cut budget is exhausted.
//
// # Quick Start
//
//	import "github.com/meshware/uvmend"
//
//	// The caller supplies the unwrap solver.
//	r, err := uvmend.NewRepairer(solver, uvmend.WithRestoreSeams(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stats, err := r.Repair(ctx, mesh)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d islands, %d vortexes, %d fixed\n",
//		stats.IslandsChecked, stats.VortexesFound, stats.VortexesFixed)
//
//	// Optional post-pass: separate overlapping islands.
//	uvmend.ResolveOverlaps(mesh, uvmend.DetectIslands(mesh), uvmend.DefaultOverlapMargin)
//
// # Architecture
//
// The library is organized around a small set of passes:
//   - Island detection: connected components over UV-matching shared edges
//   - Distortion metrics: texel density ratio and shape CV per island
//   - Boundary extraction: UV-discontinuous edges grouped into loops
//   - Seam pathfinding: Dijkstra over 3D edge lengths to the boundary
//   - Repair loop: bounded cut/unwrap iteration with explicit failure caps
//   - Overlap resolution: bounding-box strip shifts along the U axis
//
// The external unwrap solver is injected through the [Reparameterizer]
// interface, so the whole pipeline is testable with deterministic stubs.
//
// # Coordinate System
//
// Vertex positions are 3D ([gonum.org/v1/gonum/spatial/r3.Vec]). UV
// coordinates are per face corner, not per vertex: two faces may assign
// different UVs to the same vertex, which is exactly what makes an island
// boundary.
package uvmend
