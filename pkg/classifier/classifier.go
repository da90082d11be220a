package classifier

// Relation is a recorded precedence fact: Left must be positioned in an
// earlier layer than Right.
type Relation struct {
	Left  string
	Right string
}

// pair keys the distance map by an ordered entity pair. Using a struct key
// instead of a joined string keeps identifiers containing arbitrary
// characters (including any would-be separator) unambiguous.
type pair struct {
	from string
	to   string
}

// Stats is a read-only snapshot of the engine's size.
type Stats struct {
	Entities  int `json:"entities"`
	Relations int `json:"relations"`
	Distances int `json:"distances"`
}

// Classifier ingests directed precedence relations and groups entities into
// ordered layers. The zero value is not usable - use New.
type Classifier struct {
	entities  []string // insertion order, drives deterministic traversal
	seen      map[string]struct{}
	relations []Relation
	distances map[pair]int
	observer  Observer
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithObserver attaches a sink for diagnostic events (reference selection,
// offset summary, normalization). The default is a no-op.
func WithObserver(o Observer) Option {
	return func(c *Classifier) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates an empty classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		seen:      make(map[string]struct{}),
		distances: make(map[pair]int),
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddRelation records that left precedes right and recomputes the distance
// closure. Both entities are registered if new. Duplicate pairs are counted
// as separate relation records but share one distance entry.
//
// The direct distance for the pair is reset to 1 even if transitive closure
// had previously derived a larger value; the recompute that follows
// re-derives any longer path from the surviving intermediate entries, so
// the reset is not observable through ComputeLayers.
//
// Every call pays a full closure recompute. Prefer AddRelations when
// ingesting many relations at once.
func (c *Classifier) AddRelation(left, right string) {
	c.ingest(left, right)
	c.relax()
}

// AddRelations ingests a batch of relations with a single closure recompute.
// The resulting state is identical to calling AddRelation for each element.
func (c *Classifier) AddRelations(rels ...Relation) {
	if len(rels) == 0 {
		return
	}
	for _, r := range rels {
		c.ingest(r.Left, r.Right)
	}
	c.relax()
}

func (c *Classifier) ingest(left, right string) {
	c.register(left)
	c.register(right)
	c.relations = append(c.relations, Relation{Left: left, Right: right})
	if left == right {
		// A self-distance would sit in the map forever: the closure's
		// distinct-triple guard can neither extend nor remove it. Count
		// the relation record, skip the entry.
		return
	}
	c.distances[pair{left, right}] = 1
}

func (c *Classifier) register(id string) {
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	c.entities = append(c.entities, id)
}

// Stats returns entity, relation, and distance-entry counts.
func (c *Classifier) Stats() Stats {
	return Stats{
		Entities:  len(c.entities),
		Relations: len(c.relations),
		Distances: len(c.distances),
	}
}

// Entities returns all registered entities in insertion order.
func (c *Classifier) Entities() []string {
	out := make([]string, len(c.entities))
	copy(out, c.entities)
	return out
}

// Relations returns a copy of all recorded relations in insertion order,
// duplicates included.
func (c *Classifier) Relations() []Relation {
	out := make([]Relation, len(c.relations))
	copy(out, c.relations)
	return out
}

// Distance returns the longest known directed path length from left to
// right in relation hops, and whether such a path is known.
func (c *Classifier) Distance(left, right string) (int, bool) {
	d, ok := c.distances[pair{left, right}]
	return d, ok
}

// ComputeLayers groups every registered entity into ordered layer buckets.
// Buckets are ascending by layer; entities within a bucket are sorted
// lexicographically. Returns nil if no entities are registered.
//
// The computation is read-only: it derives a fresh layer assignment from
// the current distance map on every call, so calling it twice without an
// intervening mutation yields identical output.
func (c *Classifier) ComputeLayers() [][]string {
	if len(c.entities) == 0 {
		return nil
	}
	reference := c.selectReference()
	layout := c.propagate(reference)
	return group(normalize(layout, reference, c.observer))
}
