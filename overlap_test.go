package uvmend

import (
	"testing"
)

func TestBBox_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"overlap", BBox{0, 0, 1, 1}, BBox{0.5, 0, 1.5, 1}, true},
		{"disjoint u", BBox{0, 0, 1, 1}, BBox{2, 0, 3, 1}, false},
		{"disjoint v", BBox{0, 0, 1, 1}, BBox{0, 2, 1, 3}, false},
		{"touching does not overlap", BBox{0, 0, 1, 1}, BBox{1, 0, 2, 1}, false},
		{"contained", BBox{0, 0, 1, 1}, BBox{0.25, 0.25, 0.75, 0.75}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOverlaps_TwoSquares(t *testing.T) {
	m := buildSquarePair(t)
	islands := DetectIslands(m)
	if len(islands) != 2 {
		t.Fatalf("DetectIslands = %d, want 2", len(islands))
	}

	report := ResolveOverlaps(m, islands, DefaultOverlapMargin)
	if report.CapHit {
		t.Fatal("safety cap hit on a two-island layout")
	}
	if report.Shifts != 1 {
		t.Errorf("Shifts = %d, want 1", report.Shifts)
	}

	// The second square started at [0.5,1.5]x[0,1]; it must now sit past
	// the first one plus the margin.
	a := IslandBBox(m, islands[0])
	b := IslandBBox(m, islands[1])
	if a.Overlaps(b) {
		t.Errorf("bounding boxes still overlap: %+v vs %+v", a, b)
	}
	shifted := b
	if shifted.MinU < a.MinU {
		shifted = a
	}
	if shifted.MinU < 1.0+DefaultOverlapMargin-1e-9 {
		t.Errorf("shifted island MinU = %v, want >= %v", shifted.MinU, 1.0+DefaultOverlapMargin)
	}
}

func TestResolveOverlaps_PairwiseDisjoint(t *testing.T) {
	// Several islands stacked on the same UV spot must end up pairwise
	// disjoint.
	m := NewMesh()
	var islands []FaceSet
	for i := 0; i < 5; i++ {
		islands = append(islands, appendCleanSquare(t, m))
	}

	report := ResolveOverlaps(m, islands, 0.05)
	if report.CapHit {
		t.Fatal("safety cap hit")
	}
	for i := range islands {
		for j := i + 1; j < len(islands); j++ {
			a, b := IslandBBox(m, islands[i]), IslandBBox(m, islands[j])
			if a.Overlaps(b) {
				t.Errorf("islands %d and %d overlap: %+v vs %+v", i, j, a, b)
			}
		}
	}
}

func TestResolveOverlaps_NoopCases(t *testing.T) {
	m := buildSquarePair(t)
	islands := DetectIslands(m)

	if report := ResolveOverlaps(m, nil, 0.01); report.Shifts != 0 {
		t.Errorf("Shifts on nil islands = %d, want 0", report.Shifts)
	}
	if report := ResolveOverlaps(m, islands[:1], 0.01); report.Shifts != 0 {
		t.Errorf("Shifts on single island = %d, want 0", report.Shifts)
	}
}

func TestResolveOverlaps_AlreadySeparate(t *testing.T) {
	m, _ := buildAnnulus(t)
	island := DetectIslands(m)
	before := IslandBBox(m, island[0])

	report := ResolveOverlaps(m, island, 0.01)
	if report.Shifts != 0 {
		t.Errorf("Shifts = %d, want 0", report.Shifts)
	}
	if after := IslandBBox(m, island[0]); after != before {
		t.Errorf("bbox moved: %+v -> %+v", before, after)
	}
}
