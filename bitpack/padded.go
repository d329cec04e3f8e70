package bitpack

import "fmt"

// The padded layout was introduced with data version 2529: values never
// cross a word boundary and the high bits left over in each word are zero.

// PaddedWords returns how many words the padded layout needs for count values.
func PaddedWords(count int, bitsPerValue int) int {
	valuesPerWord := wordBits / bitsPerValue
	return (count + valuesPerWord - 1) / valuesPerWord
}

// PaddedBitsPerValue derives the value width of a padded array from its word
// count. Several widths can share a word count (11 and 12 bits for a 4096
// value section), so the search starts at minBits.
func PaddedBitsPerValue(words int, count int, minBits int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: invalid value count %d", ErrMalformedBitstream, count)
	}

	for b := max(minBits, 1); b <= maxBitsPerValue; b++ {
		if PaddedWords(count, b) == words {
			return b, nil
		}
	}

	return 0, fmt.Errorf("%w: no width packs %d values into %d words", ErrMalformedBitstream, count, words)
}

func DecodePadded(words []int64, count int, bitsPerValue int) ([]uint32, error) {
	if bitsPerValue < 1 || bitsPerValue > maxBitsPerValue {
		return nil, fmt.Errorf("%w: invalid width %d", ErrMalformedBitstream, bitsPerValue)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", ErrMalformedBitstream, count)
	}
	if need := PaddedWords(count, bitsPerValue); len(words) < need {
		return nil, fmt.Errorf("%w: %d values of %d bits need %d words, got %d", ErrMalformedBitstream, count, bitsPerValue, need, len(words))
	}

	valuesPerWord := wordBits / bitsPerValue
	mask := uint64(1)<<bitsPerValue - 1
	values := make([]uint32, count)

	for i := range values {
		w := uint64(words[i/valuesPerWord])
		values[i] = uint32((w >> ((i % valuesPerWord) * bitsPerValue)) & mask)
	}

	return values, nil
}

func EncodePadded(values []uint32, bitsPerValue int) ([]int64, error) {
	if bitsPerValue < 1 || bitsPerValue > maxBitsPerValue {
		return nil, fmt.Errorf("%w: invalid width %d", ErrMalformedBitstream, bitsPerValue)
	}

	valuesPerWord := wordBits / bitsPerValue
	limit := uint64(1) << bitsPerValue
	words := make([]uint64, PaddedWords(len(values), bitsPerValue))

	for i, v := range values {
		if uint64(v) >= limit {
			return nil, fmt.Errorf("%w: value %d does not fit in %d bits", ErrMalformedBitstream, v, bitsPerValue)
		}
		words[i/valuesPerWord] |= uint64(v) << ((i % valuesPerWord) * bitsPerValue)
	}

	return toSigned(words), nil
}
