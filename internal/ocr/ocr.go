// Package ocr cross-checks resolved chart labels by reading the printed
// digits with Tesseract. The check is advisory only: identifier assignment
// comes purely from spatial layout, and a mismatch here flags a suspect scan
// without changing the result.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"

	"karyotype-reader/internal/chart"
)

// LabelChars is the character set printed as chromosome identifiers.
const LabelChars = "0123456789XY"

// Engine reads printed label text using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine restricted to the label character set.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr: set language: %w", err)
	}

	// Identifiers aren't English words; dictionary correction only hurts
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Mismatch describes a label whose printed text disagrees with the
// identifier assigned from layout.
type Mismatch struct {
	ChromoID string
	Read     string
}

// VerifyLabels reads every resolved label region from the chart image and
// returns the labels whose printed text does not match the assigned
// identifier. An unreadable region (empty OCR output) is not a mismatch.
func (e *Engine) VerifyLabels(img gocv.Mat, labelRows []chart.Row) ([]Mismatch, error) {
	if img.Empty() {
		return nil, fmt.Errorf("ocr: empty image")
	}

	var mismatches []Mismatch
	for _, row := range labelRows {
		for _, r := range row.Records {
			text, err := e.readRegion(img, r)
			if err != nil {
				return nil, err
			}
			if text != "" && text != r.ChromoID {
				mismatches = append(mismatches, Mismatch{ChromoID: r.ChromoID, Read: text})
			}
		}
	}
	return mismatches, nil
}

// readRegion runs OCR on one label's bounding region, padded a little since
// the bounding rect of a collapsed multi-stroke label covers only one stroke.
func (e *Engine) readRegion(img gocv.Mat, r *chart.Record) (string, error) {
	const pad = 12

	b := r.Bounding
	x1 := max(0, b.X-pad)
	y1 := max(0, b.Y-pad)
	x2 := min(img.Cols(), b.X+b.Width+pad)
	y2 := min(img.Rows(), b.Y+b.Height+pad)
	if x2 <= x1 || y2 <= y1 {
		return "", fmt.Errorf("ocr: invalid label region %+v", b)
	}

	region := img.Region(image.Rect(x1, y1, x2, y2))
	defer region.Close()

	processed := upscaleForOCR(region)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return "", fmt.Errorf("ocr: encode region: %w", err)
	}
	defer buf.Close()

	// PSM 7: one label is a single text line
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return "", fmt.Errorf("ocr: set page seg mode: %w", err)
	}
	if err := e.client.SetWhitelist(LabelChars); err != nil {
		return "", fmt.Errorf("ocr: set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: read text: %w", err)
	}
	return strings.ToUpper(strings.Join(strings.Fields(text), "")), nil
}

// upscaleForOCR enlarges a label crop; Tesseract struggles below ~30px
// character height and printed chart digits are much smaller.
func upscaleForOCR(region gocv.Mat) gocv.Mat {
	h, w := region.Rows(), region.Cols()
	minDim := min(h, w)
	if minDim >= 60 {
		return region.Clone()
	}
	scale := 60.0 / float64(minDim)
	scaled := gocv.NewMat()
	gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	return scaled
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
