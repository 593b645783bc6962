// Package extract turns a chart image into the raw external contours the
// classification pipeline works on.
package extract

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"

	"karyotype-reader/pkg/geometry"
)

// Load reads and decodes a chart image into an OpenCV Mat. Karyotype report
// scans are commonly TIFF; PNG and JPEG are accepted too. The caller owns the
// returned Mat and must Close it.
func Load(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("extract: decode %s: %w", path, err)
	}

	return imageToMat(img), nil
}

// Contours binarizes the chart at the given intensity threshold and traces
// the external boundary of every connected foreground region. Chart ink is
// dark on near-white paper, so pixels below the threshold are foreground.
func Contours(img gocv.Mat, binThreshold int) ([]geometry.Contour, error) {
	if img.Empty() {
		return nil, fmt.Errorf("extract: empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() > 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(binThreshold), 255, gocv.ThresholdBinaryInv)

	// ChainApproxNone keeps every boundary pixel; the merger splices
	// contours at closest boundary points and needs the full point chain.
	found := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer found.Close()

	contours := make([]geometry.Contour, found.Size())
	for i := 0; i < found.Size(); i++ {
		pv := found.At(i)
		contour := make(geometry.Contour, pv.Size())
		for j := 0; j < pv.Size(); j++ {
			pt := pv.At(j)
			contour[j] = geometry.PointInt{X: pt.X, Y: pt.Y}
		}
		contours[i] = contour
	}
	return contours, nil
}

// imageToMat converts a Go image.Image to an OpenCV Mat.
func imageToMat(srcImg image.Image) gocv.Mat {
	bounds := srcImg.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := srcImg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert from 16-bit to 8-bit and BGR order for OpenCV
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}
