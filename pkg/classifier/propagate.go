package classifier

import "sort"

// propagate assigns an integer layer to every entity, seeded with the
// reference at layer 0.
//
// Each sweep walks the distance entries in sorted pair order:
//   - source placed, target not: target goes to layer(source) + distance
//   - target placed, source not: source goes to layer(target) - distance
//   - both placed: target is raised to layer(source) + distance when below
//     (a placed entity is never lowered)
//
// Sweeps repeat until every entity is placed, capped at |entities|² as a
// safety bound. A sweep that makes no progress while entities remain means
// a component is unreachable from the reference; those entities are placed
// at layer 0 directly so the result always covers the full entity set, at
// the cost of relative ordering information for the disconnected part.
func (c *Classifier) propagate(reference string) map[string]int {
	layout := make(map[string]int, len(c.entities))
	layout[reference] = 0

	entries := c.sortedPairs()
	maxSweeps := len(c.entities) * len(c.entities)

	for sweep := 0; len(layout) < len(c.entities) && sweep < maxSweeps; sweep++ {
		progress := false

		for _, p := range entries {
			d := c.distances[p]
			src, srcPlaced := layout[p.from]
			dst, dstPlaced := layout[p.to]

			switch {
			case srcPlaced && !dstPlaced:
				layout[p.to] = src + d
				progress = true
			case dstPlaced && !srcPlaced:
				layout[p.from] = dst - d
				progress = true
			case srcPlaced && dstPlaced:
				if want := src + d; dst < want {
					layout[p.to] = want
					progress = true
				}
			}
		}

		if !progress {
			for _, entity := range c.entities {
				if _, ok := layout[entity]; !ok {
					layout[entity] = 0
				}
			}
		}
	}

	c.observer.OffsetsComputed(reference, offsetSummary(layout, reference))
	return layout
}

// sortedPairs returns the distance-map keys in (from, to) order so sweeps
// are reproducible across runs.
func (c *Classifier) sortedPairs() []pair {
	entries := make([]pair, 0, len(c.distances))
	for p := range c.distances {
		entries = append(entries, p)
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].from != entries[b].from {
			return entries[a].from < entries[b].from
		}
		return entries[a].to < entries[b].to
	})
	return entries
}

// offsetSummary groups every entity except the reference by its signed
// layer offset, with each group sorted for stable observer output.
func offsetSummary(layout map[string]int, reference string) map[int][]string {
	offsets := make(map[int][]string)
	for entity, layer := range layout {
		if entity == reference {
			continue
		}
		offsets[layer] = append(offsets[layer], entity)
	}
	for _, group := range offsets {
		sort.Strings(group)
	}
	return offsets
}
