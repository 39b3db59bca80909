package digest

// ChunkKind tells the packer how a chunk may start a fresh segment after an
// overflow: job entries get a continuation marker, everything else starts
// the new segment bare.
type ChunkKind int

const (
	HeaderChunk ChunkKind = iota
	SectionChunk
	JobChunk
	FooterChunk
)

// Chunk is one indivisible piece of digest text. The packer never splits a
// chunk across segments.
type Chunk struct {
	Kind ChunkKind
	Text string
}

// Segment is one bounded-length message.
type Segment struct {
	Text         string
	Continuation bool // opened with the continuation marker
}

const continuationMarker = "*(Continuation)*\n\n"

// Pack assembles chunks into segments of at most limit characters, in order.
// When appending a chunk would push the current segment past the limit, the
// segment is closed and the chunk opens the next one, prefixed with the
// continuation marker when it is a job entry. The marker is dropped when it
// would push an otherwise-fitting entry past the limit. A single chunk
// longer than the limit is emitted whole as its own oversized segment;
// truncating mid-entry would be worse than an occasional long message.
//
// Concatenating all segment texts, with continuation markers removed,
// reproduces the chunk texts exactly.
func Pack(chunks []Chunk, limit int) []Segment {
	var (
		segments []Segment
		current  string
		cont     bool
	)

	for _, c := range chunks {
		if c.Text == "" {
			continue
		}
		if current != "" && len(current)+len(c.Text) > limit {
			segments = append(segments, Segment{Text: current, Continuation: cont})
			current, cont = "", false
			if c.Kind == JobChunk && markerFits(c.Text, limit) {
				current, cont = continuationMarker, true
			}
		}
		current += c.Text
	}

	if current != "" {
		segments = append(segments, Segment{Text: current, Continuation: cont})
	}
	return segments
}

// markerFits reports whether a job chunk opening a fresh segment may carry
// the continuation marker without breaching the limit. Chunks that exceed
// the limit on their own breach it either way and keep the marker.
func markerFits(text string, limit int) bool {
	return len(continuationMarker)+len(text) <= limit || len(text) > limit
}
