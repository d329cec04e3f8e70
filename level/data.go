package level

import (
	"errors"
	"fmt"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/internal/util"
)

var ErrIndexOutOfPalette = errors.New("block index out of palette")

type ChunkPos struct {
	X int32
	Z int32
}

func (pos ChunkPos) Region() RegionPos {
	return RegionPos{
		util.DivideAndFloorI32(pos.X, RegionWidth),
		util.DivideAndFloorI32(pos.Z, RegionWidth),
	}
}

func (pos ChunkPos) String() string {
	return fmt.Sprintf("%d,%d", pos.X, pos.Z)
}

type RegionPos struct {
	X int32
	Z int32
}

// Chunk is one column of the world in the version independent model. Every
// value in Blocks is an ID into the palette the chunk was decoded with.
type Chunk struct {
	Pos    ChunkPos
	Blocks *Volume

	// Entities and tile entities are not decoded by any codec yet, so these
	// are always empty after a decode.
	Entities     []any
	TileEntities []any

	// Format specific data the codec does not interpret. Encoding starts from
	// it, so fields the codec does not manage survive a round trip.
	Extra any
}

func NewChunk(pos ChunkPos, height int) *Chunk {
	return &Chunk{
		Pos:          pos,
		Blocks:       NewVolume(height),
		Entities:     []any{},
		TileEntities: []any{},
	}
}

// Validate checks that every block refers to an entry of palette.
func (c *Chunk) Validate(palette blocks.Palette) error {
	if c.Blocks == nil {
		return fmt.Errorf("chunk %s has no block volume", c.Pos)
	}

	if m := c.Blocks.Max(); int(m) >= palette.Len() {
		return fmt.Errorf("%w: chunk %s references id %d but palette has %d entries", ErrIndexOutOfPalette, c.Pos, m, palette.Len())
	}
	return nil
}
