package classifier

// Observer receives diagnostic events from ComputeLayers. Implementations
// can log or record them; the engine never writes to a terminal itself.
//
// All methods are called synchronously from ComputeLayers on the caller's
// goroutine. Implementations must not call back into the classifier.
type Observer interface {
	// ReferenceSelected reports the chosen layer-0 anchor with its direct
	// connection count and neighbor connection sum.
	ReferenceSelected(entity string, direct, neighborSum int)

	// OffsetsComputed reports entities grouped by signed layer offset
	// relative to the reference, before normalization. The reference
	// itself is excluded; negative offsets precede it.
	OffsetsComputed(reference string, offsets map[int][]string)

	// Normalized reports the shift applied to make the minimum layer 0
	// and the reference's resulting layer. Not called when no shift was
	// needed.
	Normalized(shift, referenceLayer int)
}

// NopObserver is an Observer that discards every event.
type NopObserver struct{}

func (NopObserver) ReferenceSelected(string, int, int)      {}
func (NopObserver) OffsetsComputed(string, map[int][]string) {}
func (NopObserver) Normalized(int, int)                      {}

var _ Observer = NopObserver{}
