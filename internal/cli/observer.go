package cli

import (
	"sort"

	"github.com/charmbracelet/log"
)

// logObserver forwards engine diagnostics to the CLI logger at debug level.
// It is wired in when --verbose is set so users can follow reference
// selection and layer placement.
type logObserver struct {
	logger *log.Logger
}

func (o logObserver) ReferenceSelected(entity string, direct, neighborSum int) {
	o.logger.Debug("reference entity selected",
		"entity", entity,
		"connections", direct,
		"neighbor_sum", neighborSum)
}

func (o logObserver) OffsetsComputed(reference string, offsets map[int][]string) {
	keys := make([]int, 0, len(offsets))
	for k := range offsets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, offset := range keys {
		direction := "same layer as"
		switch {
		case offset < 0:
			direction = "above"
		case offset > 0:
			direction = "below"
		}
		o.logger.Debug("relative placement",
			"offset", offset,
			"position", direction+" "+reference,
			"entities", offsets[offset])
	}
}

func (o logObserver) Normalized(shift, referenceLayer int) {
	o.logger.Debug("layers normalized",
		"shift", shift,
		"reference_layer", referenceLayer)
}
