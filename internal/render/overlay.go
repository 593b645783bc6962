// Package render writes an annotated copy of a chart image for visual
// inspection: label contours, chromosome contours and their assigned
// identifiers drawn over the original scan. It consumes the analysis result
// through its public surface only.
package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"karyotype-reader/internal/chart"
)

var (
	labelColor = color.RGBA{G: 255, A: 255}
	bodyColor  = color.RGBA{R: 255, A: 255}
	textColor  = color.RGBA{B: 255, A: 255}
)

// Overlay draws the analysis result onto a copy of the chart image and
// writes it next to the source as <base>_id-on-cntr.png. Returns the output
// path.
func Overlay(imagePath string, img gocv.Mat, result *chart.Result) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("render: empty image")
	}

	canvas := img.Clone()
	defer canvas.Close()

	for _, row := range result.Labels {
		drawRow(&canvas, row, labelColor)
	}
	for _, row := range result.Chromosomes {
		drawRow(&canvas, row, bodyColor)
		for i, r := range row.Records {
			// Alternate the text offset so identifiers of adjacent
			// homologs don't overlap.
			org := image.Point{X: r.Centroid.X, Y: r.Centroid.Y}
			if i%2 == 1 {
				org.X -= 8
				org.Y += 20
			}
			gocv.PutText(&canvas, r.ChromoID, org, gocv.FontHersheySimplex, 0.45, textColor, 1)
		}
	}

	out := outputPath(imagePath)
	if ok := gocv.IMWrite(out, canvas); !ok {
		return "", fmt.Errorf("render: write %s failed", out)
	}
	return out, nil
}

func drawRow(canvas *gocv.Mat, row chart.Row, c color.RGBA) {
	for _, r := range row.Records {
		pts := make([]image.Point, len(r.Contour))
		for i, p := range r.Contour {
			pts[i] = image.Point{X: p.X, Y: p.Y}
		}
		pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
		gocv.DrawContours(canvas, pv, 0, c, 1)
		pv.Close()
	}
}

func outputPath(imagePath string) string {
	dir := filepath.Dir(imagePath)
	base := filepath.Base(imagePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_id-on-cntr.png")
}
