package format

import (
	"fmt"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/level"
)

// Interface is the behaviour shared by a family of codecs. Implementations
// must be pure: no state is kept between calls, so one value may serve many
// goroutines.
type Interface interface {
	Decode(data []byte, features Features) (*level.Chunk, blocks.Palette, error)
	Encode(chunk *level.Chunk, palette blocks.Palette, features Features) ([]byte, error)
	// TranslatorKey picks the key to resolve a translator with. data is the
	// raw chunk, or nil when only the caller's key is known.
	TranslatorKey(key Key, data []byte) (Key, error)
}

// Validator reports whether a codec handles a version key.
type Validator func(key Key) bool

// Codec binds an implementation to the versions it is valid for and the
// features it advertises.
type Codec struct {
	name     string
	valid    Validator
	features Features
	impl     Interface
}

func New(name string, valid Validator, features Features, impl Interface) *Codec {
	return &Codec{
		name:     name,
		valid:    valid,
		features: features,
		impl:     impl,
	}
}

// Refine derives a codec that reuses all behaviour of c and only changes the
// versions it accepts and, through patch, selected features. patch may be nil.
func (c *Codec) Refine(name string, valid Validator, patch func(*Features)) *Codec {
	features := c.features
	if patch != nil {
		patch(&features)
	}

	return &Codec{
		name:     name,
		valid:    valid,
		features: features,
		impl:     c.impl,
	}
}

func (c *Codec) Name() string {
	return c.name
}

func (c *Codec) Features() Features {
	return c.features
}

func (c *Codec) IsValid(key Key) bool {
	return c.valid(key)
}

func (c *Codec) Decode(data []byte) (*level.Chunk, blocks.Palette, error) {
	chunk, palette, err := c.impl.Decode(data, c.features)
	if err != nil {
		return nil, blocks.Palette{}, fmt.Errorf("%s decode: %w", c.name, err)
	}
	return chunk, palette, nil
}

func (c *Codec) Encode(chunk *level.Chunk, palette blocks.Palette) ([]byte, error) {
	if err := chunk.Validate(palette); err != nil {
		return nil, fmt.Errorf("%s encode: %w", c.name, err)
	}
	if h := chunk.Blocks.Height(); h != c.features.ChunkHeight {
		return nil, fmt.Errorf("%s encode: %w: chunk %s is %d blocks high, format stores %d", c.name, ErrUnsupportedChunkState, chunk.Pos, h, c.features.ChunkHeight)
	}

	data, err := c.impl.Encode(chunk, palette, c.features)
	if err != nil {
		return nil, fmt.Errorf("%s encode: %w", c.name, err)
	}
	return data, nil
}

// Translator resolves the translator for a chunk. When data is given, a
// version stored in the chunk itself takes precedence over key.
func (c *Codec) Translator(resolver Resolver, key Key, data []byte) (Translator, error) {
	translatorKey, err := c.impl.TranslatorKey(key, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	return resolver.Translator(translatorKey)
}

func (c *Codec) String() string {
	return c.name
}

// FormatIs accepts every version of a format.
func FormatIs(format string) Validator {
	return func(key Key) bool {
		return key.Format == format
	}
}

// VersionRange accepts versions of format in [from, to). A nil bound is
// open.
func VersionRange(format string, from Version, to Version) Validator {
	return func(key Key) bool {
		if key.Format != format {
			return false
		}
		if from != nil && key.Version.Compare(from) < 0 {
			return false
		}
		if to != nil && key.Version.Compare(to) >= 0 {
			return false
		}
		return true
	}
}

func VersionEquals(format string, version ...int) Validator {
	want := Version(version)
	return func(key Key) bool {
		return key.Format == format && key.Version.Compare(want) == 0
	}
}
