// Package anvil implements the chunk codecs of the Java Edition Anvil format
// for data versions 1444 up to the 1.18 section rework.
package anvil

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/Tnze/go-mc/nbt"

	"github.com/richgrov/worldcodec/bitpack"
	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/level"
)

const Format = "anvil"

// Data versions bounding the codecs of this package.
const (
	// 1.13, first version with block state palettes.
	DataVersion1444 = 1444
	// 1.16 snapshot 20w17a, block states stop straddling words.
	DataVersion2529 = 2529
	// 1.18 snapshot 21w43a, sections move out of Level.
	DataVersion2844 = 2844
)

// Anvil2 is the behaviour shared by all codecs of the family. It keeps no
// state.
type Anvil2 struct{}

var _ format.Interface = Anvil2{}

// New returns the base codec, valid for data versions [1444, 2529).
func New() *format.Codec {
	return format.New(
		"anvil2",
		format.VersionRange(Format, format.Version{DataVersion1444}, format.Version{DataVersion2529}),
		format.Features{
			ChunkVersion:    1,
			DataVersion:     DataVersion1444,
			ChunkHeight:     256,
			SectionHeight:   level.SectionHeight,
			LongArray:       format.Compact,
			MinBitsPerValue: 2,
		},
		Anvil2{},
	)
}

// New2529 refines the base codec for the padded block state layout.
func New2529(base *format.Codec) *format.Codec {
	return base.Refine(
		"anvil2_2529",
		format.VersionRange(Format, format.Version{DataVersion2529}, format.Version{DataVersion2844}),
		func(f *format.Features) {
			f.ChunkVersion = 2
			f.DataVersion = DataVersion2529
			f.LongArray = format.Padded
			f.MinBitsPerValue = 4
		},
	)
}

func (Anvil2) Decode(data []byte, features format.Features) (*level.Chunk, blocks.Palette, error) {
	raw, err := readChunk(data)
	if err != nil {
		return nil, blocks.Palette{}, err
	}
	// An empty section list is an all air chunk, a missing one was never
	// generated.
	if !raw.hasSections {
		return nil, blocks.Palette{}, fmt.Errorf("%w: chunk %d,%d has no section data", format.ErrUnsupportedChunkState, raw.x, raw.z)
	}

	chunk := level.NewChunk(level.ChunkPos{X: raw.x, Z: raw.z}, features.ChunkHeight)

	// ID 0 is the block of every slab without a section.
	merged := []blocks.Block{blocks.Air}

	for _, s := range raw.sections {
		// Sections holding only light data have no palette.
		if len(s.Palette) == 0 {
			continue
		}
		if int(s.Y) < 0 || int(s.Y) >= features.Sections() {
			return nil, blocks.Palette{}, fmt.Errorf("%w: section y=%d outside chunk height %d", format.ErrUnsupportedChunkState, s.Y, features.ChunkHeight)
		}

		local, err := decodePalette(s.Palette)
		if err != nil {
			return nil, blocks.Palette{}, fmt.Errorf("section %d: %w", s.Y, err)
		}

		indices, err := decodeBlockStates(s.BlockStates, len(local), features)
		if err != nil {
			return nil, blocks.Palette{}, fmt.Errorf("section %d: %w", s.Y, err)
		}

		offset := uint32(len(merged))
		for i, index := range indices {
			if int(index) >= len(local) {
				return nil, blocks.Palette{}, fmt.Errorf("%w: section %d index %d outside palette of %d", bitpack.ErrMalformedBitstream, s.Y, index, len(local))
			}
			indices[i] = index + offset
		}

		merged = append(merged, local...)
		chunk.Blocks.SetSection(int(s.Y), indices)
	}

	palette, remap := blocks.Dedup(merged)
	chunk.Blocks.Map(func(id uint32) uint32 {
		return remap[id]
	})
	chunk.Blocks.Narrow()
	chunk.Extra = raw.extra

	return chunk, palette, nil
}

func decodePalette(entries []paletteEntry) ([]blocks.Block, error) {
	local := make([]blocks.Block, len(entries))
	for i, entry := range entries {
		b, err := blocks.ParseBlock(entry.Name, entry.Properties)
		if err != nil {
			return nil, err
		}
		local[i] = b
	}
	return local, nil
}

func decodeBlockStates(words []int64, paletteLen int, features format.Features) ([]uint32, error) {
	if features.LongArray == format.Compact {
		return bitpack.Decode(words, level.SectionVolume)
	}

	minBits := bits.Len(uint(paletteLen - 1))
	bitsPerValue, err := bitpack.PaddedBitsPerValue(len(words), level.SectionVolume, minBits)
	if err != nil {
		return nil, err
	}
	return bitpack.DecodePadded(words, level.SectionVolume, bitsPerValue)
}

func (Anvil2) Encode(chunk *level.Chunk, palette blocks.Palette, features format.Features) ([]byte, error) {
	extra, ok := chunk.Extra.(*Extra)
	if !ok || extra == nil {
		extra = &Extra{}
	}

	sections := make([]section, 0, features.Sections())
	for sy := 0; sy < features.Sections(); sy++ {
		local, indices, err := localPalette(palette, chunk.Blocks.Section(sy))
		if err != nil {
			return nil, err
		}

		// All air slabs are left out.
		if len(local) == 1 && local[0].IsAir() {
			continue
		}

		words, err := encodeBlockStates(indices, len(local), features)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", sy, err)
		}

		sections = append(sections, section{
			Y:           int8(sy),
			Palette:     encodePalette(local),
			BlockStates: words,
			BlockLight:  make([]byte, lightArrayLength),
			SkyLight:    make([]byte, lightArrayLength),
		})
	}

	return writeChunk(extra, chunk.Pos.X, chunk.Pos.Z, int32(features.DataVersion), sections)
}

// localPalette builds the palette of one section: air first, then every other
// block of the section in ascending chunk palette order. The returned indices
// refer to it.
func localPalette(palette blocks.Palette, values []uint32) ([]blocks.Block, []uint32, error) {
	present := make(map[uint32]struct{})
	for _, id := range values {
		if int(id) >= palette.Len() {
			return nil, nil, fmt.Errorf("%w: id %d, palette has %d entries", level.ErrIndexOutOfPalette, id, palette.Len())
		}
		present[id] = struct{}{}
	}

	ids := make([]uint32, 0, len(present))
	for id := range present {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	local := []blocks.Block{blocks.Air}
	remap := make(map[uint32]uint32, len(ids))
	for _, id := range ids {
		b := palette.Block(int(id))
		if b.IsAir() {
			remap[id] = 0
			continue
		}
		remap[id] = uint32(len(local))
		local = append(local, b)
	}

	indices := make([]uint32, len(values))
	for i, id := range values {
		indices[i] = remap[id]
	}
	return local, indices, nil
}

func encodeBlockStates(indices []uint32, paletteLen int, features format.Features) ([]int64, error) {
	if features.LongArray == format.Compact {
		return bitpack.Encode(indices), nil
	}

	bitsPerValue := max(bits.Len(uint(paletteLen-1)), features.MinBitsPerValue)
	return bitpack.EncodePadded(indices, bitsPerValue)
}

func encodePalette(local []blocks.Block) []paletteEntry {
	entries := make([]paletteEntry, len(local))
	for i, b := range local {
		props := b.Properties
		if props == nil {
			props = map[string]string{}
		}
		entries[i] = paletteEntry{Name: b.Identifier(), Properties: props}
	}
	return entries
}

// TranslatorKey prefers the data version stored in the chunk.
func (Anvil2) TranslatorKey(key format.Key, data []byte) (format.Key, error) {
	if data == nil {
		return key, nil
	}

	root, err := readRoot(data)
	if err != nil {
		return format.Key{}, err
	}

	raw, ok := root[tagDataVersion]
	if !ok {
		return key, nil
	}

	var dataVersion int32
	if err := unmarshalTag(raw, nbt.TagInt, &dataVersion, tagDataVersion); err != nil {
		return format.Key{}, err
	}
	return format.NewKey(Format, int(dataVersion)), nil
}
