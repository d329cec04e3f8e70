package format

type LongArrayLayout int

const (
	// Compact arrays let values straddle two words.
	Compact LongArrayLayout = iota
	// Padded arrays never split a value; leftover high bits are zero.
	Padded
)

func (l LongArrayLayout) String() string {
	if l == Padded {
		return "padded"
	}
	return "compact"
}

// Features describe what a codec variant supports so callers can adapt
// without branching on version numbers.
type Features struct {
	ChunkVersion int
	// DataVersion written into chunks that do not carry one yet.
	DataVersion   int
	ChunkHeight   int
	SectionHeight int
	LongArray     LongArrayLayout
	// Minimum bits per block state index when encoding.
	MinBitsPerValue int
	// Entities is false while entity decoding is unsupported: decoded chunks
	// carry no entities or tile entities.
	Entities bool
}

func (f Features) Sections() int {
	return f.ChunkHeight / f.SectionHeight
}
