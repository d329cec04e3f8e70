// Package bitpack packs fixed-width unsigned integers into the 64-bit words
// used by Anvil block state arrays.
package bitpack

import (
	"errors"
	"fmt"
	"math/bits"
)

var ErrMalformedBitstream = errors.New("malformed bitstream")

const (
	wordBits        = 64
	maxBitsPerValue = 32
)

// BitsPerValue returns the width Encode uses when the largest value is
// maxValue. Widths never go below 2.
func BitsPerValue(maxValue uint32) int {
	return max(bits.Len32(maxValue), 2)
}

// Decode unpacks count values from words. The value width is
// floor(64*len(words)/count) and values are stored back to back, so a value
// may straddle two words. Reading the words in reverse as one big-endian bit
// stream, slicing groups from the most significant end and reversing them
// gives the values in order. Bits left over by that slicing sit at the least
// significant end of word 0, so value 0 starts right above them.
func Decode(words []int64, count int) ([]uint32, error) {
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: negative value count %d", ErrMalformedBitstream, count)
	case count == 0:
		if len(words) != 0 {
			return nil, fmt.Errorf("%w: %d words for zero values", ErrMalformedBitstream, len(words))
		}
		return []uint32{}, nil
	case len(words)*wordBits < count:
		return nil, fmt.Errorf("%w: %d words cannot hold %d values", ErrMalformedBitstream, len(words), count)
	}

	bitsPerValue := wordBits * len(words) / count
	if bitsPerValue > maxBitsPerValue {
		return nil, fmt.Errorf("%w: %d bits per value exceeds maximum %d", ErrMalformedBitstream, bitsPerValue, maxBitsPerValue)
	}

	return unpack(words, count, bitsPerValue), nil
}

// Encode packs values using the narrowest width able to hold the largest
// value (at least 2 bits), in the layout Decode reads: spare bits go below
// value 0. Decode(Encode(v), len(v)) returns v whenever the word count maps
// back to the same width, which always holds for 4096-value sections.
func Encode(values []uint32) []int64 {
	if len(values) == 0 {
		return nil
	}

	var maxValue uint32
	for _, v := range values {
		maxValue = max(maxValue, v)
	}

	return pack(values, BitsPerValue(maxValue))
}

func unpack(words []int64, count int, bitsPerValue int) []uint32 {
	mask := uint64(1)<<bitsPerValue - 1
	values := make([]uint32, count)
	base := len(words) * wordBits % bitsPerValue

	for i := range values {
		offset := base + i*bitsPerValue
		word, shift := offset/wordBits, offset%wordBits

		v := uint64(words[word]) >> shift
		if shift+bitsPerValue > wordBits {
			v |= uint64(words[word+1]) << (wordBits - shift)
		}
		values[i] = uint32(v & mask)
	}

	return values
}

func pack(values []uint32, bitsPerValue int) []int64 {
	words := make([]uint64, (len(values)*bitsPerValue+wordBits-1)/wordBits)
	mask := uint64(1)<<bitsPerValue - 1
	base := len(words) * wordBits % bitsPerValue

	for i, value := range values {
		v := uint64(value) & mask
		offset := base + i*bitsPerValue
		word, shift := offset/wordBits, offset%wordBits

		words[word] |= v << shift
		if shift+bitsPerValue > wordBits {
			words[word+1] |= v >> (wordBits - shift)
		}
	}

	return toSigned(words)
}

func toSigned(words []uint64) []int64 {
	out := make([]int64, len(words))
	for i, w := range words {
		out[i] = int64(w)
	}
	return out
}
