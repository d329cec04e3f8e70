package format

import (
	"errors"

	"github.com/richgrov/worldcodec/bitpack"
	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/level"
)

var (
	ErrNoMatchingCodec       = errors.New("no codec matches version key")
	ErrUnsupportedChunkState = errors.New("unsupported chunk state")
	ErrNoTranslator          = errors.New("no translator for version key")

	ErrMalformedBitstream     = bitpack.ErrMalformedBitstream
	ErrUnknownBlockIdentifier = blocks.ErrUnknownBlockIdentifier
	ErrIndexOutOfPalette      = level.ErrIndexOutOfPalette
)
