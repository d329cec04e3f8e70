//go:generate mockgen -source=translator.go -destination=mock_translator.go -package=format

package format

import "github.com/richgrov/worldcodec/blocks"

// Translator maps blocks of one format version to and from the universal
// namespace. The mapping tables live outside this module.
type Translator interface {
	ToUniversal(b blocks.Block) (blocks.Block, error)
	FromUniversal(b blocks.Block) (blocks.Block, error)
}

// Resolver finds the translator for a version key.
type Resolver interface {
	Translator(key Key) (Translator, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(key Key) (Translator, error)

func (f ResolverFunc) Translator(key Key) (Translator, error) {
	return f(key)
}
