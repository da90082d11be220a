// Package classifier assigns entities to hierarchical layers from pairwise
// precedence relations.
//
// A relation "A precedes B" states that A must be positioned in a strictly
// earlier layer than B. The classifier maintains a sparse distance map
// holding, for every ordered entity pair with a known directed path, the
// length of the longest such path in relation hops. Layers are derived from
// that closure: the most-connected entity is anchored at layer 0 and every
// other entity is pushed to the maximal position consistent with all known
// distances, so entities separated by more intervening relations end up
// farther apart.
//
// # Usage
//
//	c := classifier.New()
//	c.AddRelation("app", "lib")
//	c.AddRelation("lib", "syscall")
//	buckets := c.ComputeLayers() // [[app] [lib] [syscall]]
//
// # Model
//
// The engine is deliberately simple:
//   - Entities are created implicitly by relations and never removed.
//   - Duplicate relations are recorded with multiplicity; they influence
//     reference selection but map to a single distance entry.
//   - Cycles are not detected or rejected. Feeding cyclic relations
//     inflates distances instead of failing.
//   - Every mutation recomputes the full closure. Use AddRelations to
//     amortize the cost over a batch.
//
// ComputeLayers is read-only and deterministic: entity traversal follows
// insertion order, reference ties break toward the smaller identifier, and
// distance entries are swept in sorted pair order, so repeated calls and
// repeated runs produce identical output.
//
// Classifier is not safe for concurrent use; callers must serialize access.
package classifier
