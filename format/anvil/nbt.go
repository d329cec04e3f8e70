package anvil

import (
	"errors"
	"fmt"

	"github.com/Tnze/go-mc/nbt"

	"github.com/richgrov/worldcodec/format"
)

// Tag names of the raw chunk record.
const (
	tagDataVersion = "DataVersion"
	tagLevel       = "Level"
	tagXPos        = "xPos"
	tagZPos        = "zPos"
	tagSections    = "Sections"
)

const lightArrayLength = 2048

// Extra holds every tag of a raw chunk the codec does not interpret, as
// undecoded NBT, so encoding writes them back byte for byte.
type Extra struct {
	Root  map[string]nbt.RawMessage
	Level map[string]nbt.RawMessage
}

func (e *Extra) clone() *Extra {
	out := &Extra{
		Root:  make(map[string]nbt.RawMessage, len(e.Root)+1),
		Level: make(map[string]nbt.RawMessage, len(e.Level)+3),
	}
	for k, v := range e.Root {
		out.Root[k] = v
	}
	for k, v := range e.Level {
		out.Level[k] = v
	}
	return out
}

// SetDataVersion replaces the data version written on encode, for chunks
// converted to another version.
func (e *Extra) SetDataVersion(version int) error {
	raw, err := rawOf(int32(version))
	if err != nil {
		return err
	}
	if e.Root == nil {
		e.Root = make(map[string]nbt.RawMessage)
	}
	e.Root[tagDataVersion] = raw
	return nil
}

type section struct {
	Y           int8           `nbt:"Y"`
	Palette     []paletteEntry `nbt:"Palette"`
	BlockStates []int64        `nbt:"BlockStates"`
	BlockLight  []byte         `nbt:"BlockLight"`
	SkyLight    []byte         `nbt:"SkyLight"`
}

type paletteEntry struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties"`
}

// rawChunk is the part of the record the codec reads, checked once at the
// boundary.
type rawChunk struct {
	dataVersion    int32
	hasDataVersion bool
	x, z           int32
	hasSections    bool
	sections       []section
	extra          *Extra
}

func readRoot(data []byte) (map[string]nbt.RawMessage, error) {
	var root map[string]nbt.RawMessage
	if err := nbt.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid chunk nbt: %w", err)
	}
	return root, nil
}

func readChunk(data []byte) (*rawChunk, error) {
	root, err := readRoot(data)
	if err != nil {
		return nil, err
	}

	chunk := &rawChunk{extra: &Extra{Root: root}}

	if raw, ok := root[tagDataVersion]; ok {
		if err := unmarshalTag(raw, nbt.TagInt, &chunk.dataVersion, tagDataVersion); err != nil {
			return nil, err
		}
		chunk.hasDataVersion = true
	}

	rawLevel, ok := root[tagLevel]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s tag", format.ErrUnsupportedChunkState, tagLevel)
	}
	if err := unmarshalTag(rawLevel, nbt.TagCompound, &chunk.extra.Level, tagLevel); err != nil {
		return nil, err
	}
	delete(chunk.extra.Root, tagLevel)

	levelTags := chunk.extra.Level
	for name, dst := range map[string]*int32{tagXPos: &chunk.x, tagZPos: &chunk.z} {
		raw, ok := levelTags[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s tag", format.ErrUnsupportedChunkState, name)
		}
		if err := unmarshalTag(raw, nbt.TagInt, dst, name); err != nil {
			return nil, err
		}
	}

	if raw, ok := levelTags[tagSections]; ok {
		if err := unmarshalTag(raw, nbt.TagList, &chunk.sections, tagSections); err != nil {
			if errors.Is(err, format.ErrUnsupportedChunkState) {
				return nil, err
			}
			// The list is there but its sections do not hold block data
			return nil, fmt.Errorf("%w: %w", format.ErrMalformedBitstream, err)
		}
		chunk.hasSections = true
		delete(levelTags, tagSections)
	}

	return chunk, nil
}

func unmarshalTag(raw nbt.RawMessage, tagType byte, v any, name string) error {
	if raw.Type != tagType {
		return fmt.Errorf("%w: tag %s has type %d, want %d", format.ErrUnsupportedChunkState, name, raw.Type, tagType)
	}
	if err := raw.Unmarshal(v); err != nil {
		return fmt.Errorf("in tag %s: %w", name, err)
	}
	return nil
}

// rawOf encodes v as an unnamed tag.
func rawOf(v any) (nbt.RawMessage, error) {
	data, err := nbt.Marshal(v)
	if err != nil {
		return nbt.RawMessage{}, err
	}

	// Marshal writes the tag type and an empty name (two zero length bytes)
	// before the payload.
	if len(data) < 3 {
		return nbt.RawMessage{}, fmt.Errorf("short nbt encoding of %T", v)
	}
	return nbt.RawMessage{Type: data[0], Data: data[3:]}, nil
}

func writeChunk(extra *Extra, x, z int32, dataVersion int32, sections []section) ([]byte, error) {
	out := extra.clone()

	fields := []struct {
		tags  map[string]nbt.RawMessage
		name  string
		value any
	}{
		{out.Level, tagXPos, x},
		{out.Level, tagZPos, z},
		{out.Level, tagSections, sections},
	}
	if _, ok := out.Root[tagDataVersion]; !ok {
		fields = append(fields, struct {
			tags  map[string]nbt.RawMessage
			name  string
			value any
		}{out.Root, tagDataVersion, dataVersion})
	}

	for _, f := range fields {
		raw, err := rawOf(f.value)
		if err != nil {
			return nil, fmt.Errorf("error encoding %s: %w", f.name, err)
		}
		f.tags[f.name] = raw
	}

	level, err := rawOf(out.Level)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s: %w", tagLevel, err)
	}
	out.Root[tagLevel] = level

	return nbt.Marshal(out.Root)
}
