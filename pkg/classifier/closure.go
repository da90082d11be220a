package classifier

// relax recomputes the max-plus transitive closure of the distance map.
//
// This is a Floyd-Warshall-style relaxation that keeps the maximum candidate
// instead of the minimum: for every ordered triple of pairwise-distinct
// entities (i, k, j) with known distances i->k and k->j, the path through k
// replaces distance i->j whenever it is longer, or creates the entry if none
// existed. Updates are monotone, so the process reaches a fixed point; a
// pass that changes nothing terminates early.
//
// The pass count is capped at the number of entities. A simple path can
// visit at most that many nodes, so a longest-path label needs at most that
// many augmenting passes; the cap is a safety bound on top of the
// fixed-point exit, not the expected cost.
func (c *Classifier) relax() {
	for pass := 0; pass < len(c.entities); pass++ {
		changed := false

		for _, k := range c.entities {
			for _, i := range c.entities {
				if i == k {
					continue
				}
				ik, ok := c.distances[pair{i, k}]
				if !ok {
					continue
				}
				for _, j := range c.entities {
					if j == i || j == k {
						continue
					}
					kj, ok := c.distances[pair{k, j}]
					if !ok {
						continue
					}

					via := ik + kj
					if cur, ok := c.distances[pair{i, j}]; !ok || via > cur {
						c.distances[pair{i, j}] = via
						changed = true
					}
				}
			}
		}

		if !changed {
			break
		}
	}
}
