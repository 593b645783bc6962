// Command karyoread reads chromosome contours and identifiers from a
// karyotype chart image and outputs results.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"karyotype-reader/internal/chart"
	"karyotype-reader/internal/config"
	"karyotype-reader/internal/extract"
	"karyotype-reader/internal/ocr"
	"karyotype-reader/internal/render"
	"karyotype-reader/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to karyotype chart image named {case}.{picture}.{type}.{ext} (TIFF, PNG, or JPEG)")
	configPath := flag.String("config", "", "Path to JSON config file with chart tunables (optional)")
	annotate := flag.Bool("annotate", false, "Write an annotated copy of the chart next to the source")
	verify := flag.Bool("verify-labels", false, "Cross-check resolved labels with OCR (requires Tesseract)")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("karyoread %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: karyoread -image <path> [-config <path>] [-annotate] [-verify-labels]")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	params, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	analysis, err := chart.New(*imagePath, params, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid input")
	}

	img, err := extract.Load(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("image load failed")
	}
	defer img.Close()

	contours, err := extract.Contours(img, params.BinThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("contour extraction failed")
	}
	log.Info().Int("contours", len(contours)).Msg("contours extracted")

	result, err := analysis.Analyze(contours)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	printResult(result)

	if *verify {
		verifyLabels(img, result, log)
	}

	if *annotate {
		out, err := render.Overlay(*imagePath, img, result)
		if err != nil {
			log.Fatal().Err(err).Msg("overlay failed")
		}
		log.Info().Str("path", out).Msg("annotated chart written")
	}
}

func printResult(result *chart.Result) {
	fmt.Printf("%-4s %8s %8s %10s %20s %10s\n",
		"ID", "X", "Y", "Area", "Bounds", "LabelDist")
	for ri, row := range result.Chromosomes {
		fmt.Printf("-- row %d (%d chromosomes)\n", ri+1, len(row.Records))
		for _, r := range row.Records {
			bounds := fmt.Sprintf("%dx%d@(%d,%d)", r.Bounding.Width, r.Bounding.Height, r.Bounding.X, r.Bounding.Y)
			fmt.Printf("%-4s %8d %8d %10.1f %20s %10.1f\n",
				r.ChromoID, r.Centroid.X, r.Centroid.Y, r.Area, bounds, r.DistanceToLabel)
		}
	}
}

func verifyLabels(img gocv.Mat, result *chart.Result, log zerolog.Logger) {
	engine, err := ocr.NewEngine()
	if err != nil {
		log.Warn().Err(err).Msg("OCR unavailable, skipping label verification")
		return
	}
	defer engine.Close()

	mismatches, err := engine.VerifyLabels(img, result.Labels)
	if err != nil {
		log.Warn().Err(err).Msg("label verification failed")
		return
	}
	for _, m := range mismatches {
		log.Warn().Str("assigned", m.ChromoID).Str("read", m.Read).Msg("printed label disagrees with layout assignment")
	}
	if len(mismatches) == 0 {
		log.Info().Msg("all readable labels match their assignments")
	}
}
