// Package layers defines the canonical serialization format for relation
// sets and classification results.
//
// This package sits at the serialization boundary between the in-memory
// engine (pkg/classifier) and external formats: JSON files, API requests
// and responses, cache entries, and stored documents (the types carry bson
// tags for MongoDB persistence).
//
// # Formats
//
// A relation set is a simple list of directed precedence facts:
//
//	{
//	  "name": "workspace",
//	  "relations": [{"left": "chat", "right": "workspaces"}]
//	}
//
// A layering is the ordered bucket output plus engine statistics:
//
//	{
//	  "layers": [["chat", "invite"], ["users", "workspaces"], ["teams"]],
//	  "stats": {"entities": 5, "relations": 5, "distances": 7}
//	}
//
// Marshal output is deterministic: relation order is preserved as given and
// layering buckets are already ordered by the engine.
package layers
