package uvmend

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Diagnostic rendering of the UV layout. Nothing in the repair pipeline
// depends on this; it exists so a failed repair can be inspected as a
// picture instead of a wall of numbers.

// snapshotPalette cycles per island. Values are 0..1 RGB.
var snapshotPalette = [][3]float64{
	{0.20, 0.47, 0.85},
	{0.85, 0.37, 0.20},
	{0.22, 0.66, 0.37},
	{0.62, 0.35, 0.72},
	{0.83, 0.66, 0.15},
	{0.18, 0.64, 0.66},
}

// Snapshot renders the islands' UV wireframes, bounding boxes and seam
// edges into an image. Seam edges draw red, regular edges in the island's
// palette color. The viewport is the union of all island bounding boxes
// plus a small border; V points up.
func Snapshot(m *Mesh, islands []FaceSet, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if len(islands) == 0 {
		return dc.Image()
	}

	total := IslandBBox(m, islands[0])
	for _, island := range islands[1:] {
		b := IslandBBox(m, island)
		total.MinU = math.Min(total.MinU, b.MinU)
		total.MinV = math.Min(total.MinV, b.MinV)
		total.MaxU = math.Max(total.MaxU, b.MaxU)
		total.MaxV = math.Max(total.MaxV, b.MaxV)
	}
	spanU := total.MaxU - total.MinU
	spanV := total.MaxV - total.MinV
	if spanU < minUVArea {
		spanU = 1
	}
	if spanV < minUVArea {
		spanV = 1
	}

	const border = 16.0
	scaleU := (float64(width) - 2*border) / spanU
	scaleV := (float64(height) - 2*border) / spanV
	toX := func(u float64) float64 { return border + (u-total.MinU)*scaleU }
	toY := func(v float64) float64 { return float64(height) - border - (v-total.MinV)*scaleV }

	dc.SetFontFace(basicfont.Face7x13)

	for i, island := range islands {
		c := snapshotPalette[i%len(snapshotPalette)]

		dc.SetLineWidth(1)
		for f := range island {
			face := m.Faces[f]
			n := len(face.UVs)
			for k := 0; k < n; k++ {
				a, b := face.UVs[k], face.UVs[(k+1)%n]
				if m.Edges[face.Edges[k]].Seam {
					dc.SetRGB(0.85, 0.10, 0.10)
				} else {
					dc.SetRGB(c[0], c[1], c[2])
				}
				dc.DrawLine(toX(a.U), toY(a.V), toX(b.U), toY(b.V))
				dc.Stroke()
			}
		}

		bb := IslandBBox(m, island)
		dc.SetRGBA(c[0], c[1], c[2], 0.6)
		dc.SetLineWidth(1)
		dc.DrawRectangle(toX(bb.MinU), toY(bb.MaxV), (bb.MaxU-bb.MinU)*scaleU, (bb.MaxV-bb.MinV)*scaleV)
		dc.Stroke()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawString(fmt.Sprintf("island %d", i), toX(bb.MinU), toY(bb.MaxV)-3)
	}

	return dc.Image()
}

// SaveSnapshotPNG renders a Snapshot and writes it to path as PNG.
func SaveSnapshotPNG(path string, m *Mesh, islands []FaceSet, width, height int) error {
	dc := gg.NewContextForImage(Snapshot(m, islands, width, height))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("uvmend: save snapshot: %w", err)
	}
	return nil
}
