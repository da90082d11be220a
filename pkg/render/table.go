package render

import (
	"fmt"
	"strings"

	"github.com/mvidal/strata/pkg/layers"
)

// Table formats a layering as a plain-text table, one row per layer.
// Terminal styling is the caller's concern (the CLI wraps rows with its
// own styles); this output is stable and grep-friendly.
func Table(l layers.Layering) string {
	var b strings.Builder
	for i, bucket := range l.Layers {
		fmt.Fprintf(&b, "layer %d  %s\n", i, strings.Join(bucket, ", "))
	}
	return b.String()
}
