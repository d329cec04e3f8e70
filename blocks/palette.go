package blocks

import "sort"

// Palette maps small integer IDs to blocks. The position of a block is its
// ID and no block appears twice. A palette belongs to the chunk it was
// decoded with.
type Palette struct {
	blocks []Block
	ids    map[string]int
}

// NewPalette builds a palette from blocks, keeping the first occurrence of
// any repeated block.
func NewPalette(blocks ...Block) Palette {
	p := Palette{ids: make(map[string]int, len(blocks))}
	for _, b := range blocks {
		p.GetAdd(b)
	}
	return p
}

func (p Palette) Len() int {
	return len(p.blocks)
}

// Block returns the block with the given ID. It panics if the ID is out of
// range, like a slice index.
func (p Palette) Block(id int) Block {
	return p.blocks[id]
}

// Blocks returns a copy of the blocks in ID order.
func (p Palette) Blocks() []Block {
	out := make([]Block, len(p.blocks))
	copy(out, p.blocks)
	return out
}

func (p Palette) ID(b Block) (int, bool) {
	id, ok := p.ids[b.Key()]
	return id, ok
}

// GetAdd returns the ID of b, appending it first if the palette does not
// contain it yet.
func (p *Palette) GetAdd(b Block) int {
	if p.ids == nil {
		p.ids = make(map[string]int)
	}

	key := b.Key()
	if id, ok := p.ids[key]; ok {
		return id
	}

	id := len(p.blocks)
	p.blocks = append(p.blocks, b)
	p.ids[key] = id
	return id
}

// Dedup collapses a list that may repeat blocks into a palette of unique
// blocks sorted by key. remap[i] is the new ID of blocks[i].
func Dedup(blocks []Block) (palette Palette, remap []uint32) {
	keys := make([]string, len(blocks))
	unique := make(map[string]Block, len(blocks))
	for i, b := range blocks {
		keys[i] = b.Key()
		unique[keys[i]] = b
	}

	sorted := make([]string, 0, len(unique))
	for k := range unique {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	palette = Palette{
		blocks: make([]Block, len(sorted)),
		ids:    make(map[string]int, len(sorted)),
	}
	for id, k := range sorted {
		palette.blocks[id] = unique[k]
		palette.ids[k] = id
	}

	remap = make([]uint32, len(blocks))
	for i, k := range keys {
		remap[i] = uint32(palette.ids[k])
	}

	return palette, remap
}
