package convert

import (
	"sort"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/level"
)

type BlockCount struct {
	ID    int
	Block blocks.Block
	Count int
}

// CountBlocks returns how often each palette entry occurs in chunk, most
// frequent first. Unused entries are listed with a count of 0.
func CountBlocks(chunk *level.Chunk, palette blocks.Palette) []BlockCount {
	counts := make([]BlockCount, palette.Len())
	for id, b := range palette.Blocks() {
		counts[id] = BlockCount{ID: id, Block: b}
	}

	for x := 0; x < level.ChunkWidth; x++ {
		for y := 0; y < chunk.Blocks.Height(); y++ {
			for z := 0; z < level.ChunkWidth; z++ {
				if id := int(chunk.Blocks.Get(x, y, z)); id < len(counts) {
					counts[id].Count++
				}
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
