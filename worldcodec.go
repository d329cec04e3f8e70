// Package worldcodec decodes and encodes voxel world chunks stored in
// versioned on-disk formats.
package worldcodec

import (
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/format/anvil"
)

// NewRegistry returns a registry of every built-in codec. Codecs are tried
// in the order listed here.
func NewRegistry() *format.Registry {
	anvil2 := anvil.New()

	registry, err := format.NewRegistry(
		anvil2,
		anvil.New2529(anvil2),
	)
	if err != nil {
		panic(err)
	}
	return registry
}
