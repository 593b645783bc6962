package chart

import "fmt"

// LayoutError reports a violated chart layout assumption: the wrong number of
// label rows, or the wrong number of labels within one row. Any layout
// violation is fatal for the image — identifier assignment downstream would
// silently mislabel chromosomes.
type LayoutError struct {
	Path string // source image, for diagnosing a mis-scanned chart

	// Row is the 1-based row whose label count mismatched, or 0 when the
	// number of rows itself is wrong.
	Row      int
	Found    int
	Expected int
}

func (e *LayoutError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: found %d label rows, want %d", e.Path, e.Found, e.Expected)
	}
	return fmt.Sprintf("%s: row %d holds %d labels, want %d", e.Path, e.Row, e.Found, e.Expected)
}
