package classifier

// connectivity counts, for every entity, the relation records in which it
// appears on either side. Duplicates count each time; a self-relation
// touches its entity twice.
func (c *Classifier) connectivity() map[string]int {
	counts := make(map[string]int, len(c.entities))
	for _, r := range c.relations {
		counts[r.Left]++
		counts[r.Right]++
	}
	return counts
}

// selectReference picks the layer-0 anchor: the entity with the greatest
// (direct connections, neighbor connection sum) tuple. The secondary score
// sums, over every relation touching the entity, the direct-connection
// count of the other endpoint, favoring entities embedded in dense regions.
//
// Candidates are visited in insertion order and equal tuples break toward
// the lexicographically smaller identifier, so the choice never depends on
// map iteration order.
func (c *Classifier) selectReference() string {
	counts := c.connectivity()

	score := func(entity string) (int, int) {
		neighborSum := 0
		for _, r := range c.relations {
			if r.Left == entity {
				neighborSum += counts[r.Right]
			} else if r.Right == entity {
				neighborSum += counts[r.Left]
			}
		}
		return counts[entity], neighborSum
	}

	var reference string
	var bestDirect, bestNeighbor int
	for idx, entity := range c.entities {
		direct, neighbor := score(entity)
		switch {
		case idx == 0,
			direct > bestDirect,
			direct == bestDirect && neighbor > bestNeighbor,
			direct == bestDirect && neighbor == bestNeighbor && entity < reference:
			reference = entity
			bestDirect, bestNeighbor = direct, neighbor
		}
	}

	c.observer.ReferenceSelected(reference, bestDirect, bestNeighbor)
	return reference
}
