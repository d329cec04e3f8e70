package util

// DivideAndFloorI32 divides rounding towards negative infinity, which is how
// block and chunk coordinates map to the chunk and region containing them.
func DivideAndFloorI32(a int32, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// SmallestUnsignedWidth returns the narrowest of 8, 16 or 32 bits able to
// hold maxValue.
func SmallestUnsignedWidth(maxValue uint32) int {
	switch {
	case maxValue <= 0xFF:
		return 8
	case maxValue <= 0xFFFF:
		return 16
	default:
		return 32
	}
}
