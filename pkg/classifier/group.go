package classifier

import "sort"

// normalize shifts every layer by -min when the minimum is negative so the
// first bucket sits at 0. Layers are left untouched otherwise; the
// reference is not guaranteed to end up at 0 if another entity already
// holds the minimum.
func normalize(layout map[string]int, reference string, obs Observer) map[string]int {
	min := 0
	first := true
	for _, layer := range layout {
		if first || layer < min {
			min = layer
			first = false
		}
	}
	if min < 0 {
		for entity := range layout {
			layout[entity] -= min
		}
		obs.Normalized(-min, layout[reference])
	}
	return layout
}

// group partitions the layout into buckets ascending by layer, each bucket
// sorted lexicographically. Every entity lands in exactly one bucket.
func group(layout map[string]int) [][]string {
	byLayer := make(map[int][]string)
	for entity, layer := range layout {
		byLayer[layer] = append(byLayer[layer], entity)
	}

	indices := make([]int, 0, len(byLayer))
	for layer := range byLayer {
		indices = append(indices, layer)
	}
	sort.Ints(indices)

	buckets := make([][]string, 0, len(indices))
	for _, layer := range indices {
		bucket := byLayer[layer]
		sort.Strings(bucket)
		buckets = append(buckets, bucket)
	}
	return buckets
}
