// Package translate maps blocks between version specific namespaces and the
// universal namespace.
package translate

import (
	"fmt"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/format"
)

// Identity translates by rewriting the namespace only. Blocks of other
// namespaces pass through unchanged.
type Identity struct {
	// Namespace of the version side, minecraft when empty.
	Namespace string
}

var _ format.Translator = Identity{}

func (t Identity) namespace() string {
	if t.Namespace == "" {
		return blocks.MinecraftNamespace
	}
	return t.Namespace
}

func (t Identity) ToUniversal(b blocks.Block) (blocks.Block, error) {
	if b.Namespace != t.namespace() {
		return b, nil
	}
	return blocks.NewBlock(blocks.UniversalNamespace, b.BaseName, b.Properties), nil
}

func (t Identity) FromUniversal(b blocks.Block) (blocks.Block, error) {
	if b.Namespace != blocks.UniversalNamespace {
		return b, nil
	}
	return blocks.NewBlock(t.namespace(), b.BaseName, b.Properties), nil
}

// TranslatePalette translates every block of palette in one direction.
// Distinct blocks may translate to the same block, so the result can be
// shorter; remap[i] is the new ID of the block with ID i.
func TranslatePalette(t format.Translator, palette blocks.Palette, toUniversal bool) (blocks.Palette, []uint32, error) {
	translate := t.FromUniversal
	if toUniversal {
		translate = t.ToUniversal
	}

	var out blocks.Palette
	remap := make([]uint32, palette.Len())
	for id, b := range palette.Blocks() {
		translated, err := translate(b)
		if err != nil {
			return blocks.Palette{}, nil, fmt.Errorf("translating %s: %w", b, err)
		}
		remap[id] = uint32(out.GetAdd(translated))
	}

	return out, remap, nil
}
