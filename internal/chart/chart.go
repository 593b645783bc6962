package chart

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"karyotype-reader/pkg/geometry"
)

// Chart is one karyotype chart analysis. It owns its record set exclusively;
// separate Chart instances may run in parallel without coordination.
type Chart struct {
	// Path is the source image path. Its basename must follow the
	// {caseId}.{pictureId}.{type}.{extension} naming convention.
	Path string

	// CaseID and PictureID are passthrough metadata from the filename;
	// they never affect analysis behavior.
	CaseID    string
	PictureID string
	ImageType string

	params Params
	log    zerolog.Logger
}

// Result holds the outcome of one chart analysis: the four resolved label
// rows and, per row, the final chromosome contours with their identifiers.
type Result struct {
	// Labels are the four printed identifier rows, top to bottom, each
	// ordered left to right.
	Labels []Row

	// Chromosomes are the classified and merged body contours per row.
	// Each record carries exactly one identifier.
	Chromosomes []Row
}

// New prepares a chart analysis for the given image path.
func New(path string, params Params, log zerolog.Logger) (*Chart, error) {
	if path == "" {
		return nil, fmt.Errorf("chart: empty image path")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("chart: invalid params: %w", err)
	}

	name := filepath.Base(path)
	parts := strings.Split(name, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("chart: filename %q does not follow {case}.{picture}.{type}.{ext}", name)
	}

	return &Chart{
		Path:      path,
		CaseID:    parts[0],
		PictureID: parts[1],
		ImageType: parts[2],
		params:    params,
		log:       log.With().Str("case", parts[0]).Str("picture", parts[1]).Logger(),
	}, nil
}

// Analyze runs the full pipeline over the raw contours traced from the chart
// image: descriptor building, label row resolution, body classification and
// fragment merging. It fails with a LayoutError when the printed label layout
// does not match the expected four rows with their exact per-row counts.
func (c *Chart) Analyze(contours []geometry.Contour) (*Result, error) {
	records := BuildRecords(contours)
	c.log.Debug().Int("contours", len(records)).Msg("descriptors built")

	labelRows, labelMembers, err := c.resolveLabelRows(records)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("labels", len(labelMembers)).Msg("label rows resolved")

	bodyRows := c.classifyBodies(records, labelRows, labelMembers)
	bodyRows = c.mergeFragments(bodyRows)

	total := 0
	for _, row := range bodyRows {
		total += len(row.Records)
	}
	c.log.Info().Int("chromosomes", total).Msg("chart analyzed")

	return &Result{Labels: labelRows, Chromosomes: bodyRows}, nil
}
