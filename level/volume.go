package level

import "github.com/richgrov/worldcodec/internal/util"

const (
	ChunkWidth    = 16
	SectionHeight = 16
	SectionVolume = ChunkWidth * SectionHeight * ChunkWidth
)

// Volume is the dense block index array of one chunk column, laid out in
// (x, y, z) order. Values are stored in the narrowest unsigned width that
// holds the largest value written so far; Set widens on demand.
type Volume struct {
	height int
	width  int

	u8  []uint8
	u16 []uint16
	u32 []uint32
}

func NewVolume(height int) *Volume {
	return &Volume{
		height: height,
		width:  8,
		u8:     make([]uint8, ChunkWidth*height*ChunkWidth),
	}
}

func (v *Volume) Height() int {
	return v.height
}

func (v *Volume) Len() int {
	return ChunkWidth * v.height * ChunkWidth
}

// Width is the bit width of the backing array: 8, 16 or 32.
func (v *Volume) Width() int {
	return v.width
}

func (v *Volume) index(x, y, z int) int {
	return (x*v.height+y)*ChunkWidth + z
}

func (v *Volume) Get(x, y, z int) uint32 {
	return v.at(v.index(x, y, z))
}

func (v *Volume) Set(x, y, z int, value uint32) {
	v.put(v.index(x, y, z), value)
}

func (v *Volume) at(i int) uint32 {
	switch v.width {
	case 8:
		return uint32(v.u8[i])
	case 16:
		return uint32(v.u16[i])
	default:
		return v.u32[i]
	}
}

func (v *Volume) put(i int, value uint32) {
	if w := util.SmallestUnsignedWidth(value); w > v.width {
		v.convert(w)
	}

	switch v.width {
	case 8:
		v.u8[i] = uint8(value)
	case 16:
		v.u16[i] = uint16(value)
	default:
		v.u32[i] = value
	}
}

func (v *Volume) Fill(value uint32) {
	for i, n := 0, v.Len(); i < n; i++ {
		v.put(i, value)
	}
}

// Map replaces every value with fn(value).
func (v *Volume) Map(fn func(uint32) uint32) {
	for i, n := 0, v.Len(); i < n; i++ {
		v.put(i, fn(v.at(i)))
	}
}

func (v *Volume) Max() uint32 {
	var m uint32
	for i, n := 0, v.Len(); i < n; i++ {
		m = max(m, v.at(i))
	}
	return m
}

// Narrow shrinks the backing array to the smallest width able to hold the
// current maximum.
func (v *Volume) Narrow() {
	if w := util.SmallestUnsignedWidth(v.Max()); w != v.width {
		v.convert(w)
	}
}

func (v *Volume) convert(width int) {
	n := v.Len()
	values := make([]uint32, n)
	for i := range values {
		values[i] = v.at(i)
	}

	v.u8, v.u16, v.u32 = nil, nil, nil
	switch width {
	case 8:
		v.u8 = make([]uint8, n)
		for i, val := range values {
			v.u8[i] = uint8(val)
		}
	case 16:
		v.u16 = make([]uint16, n)
		for i, val := range values {
			v.u16[i] = uint16(val)
		}
	default:
		v.u32 = values
	}
	v.width = width
}

// Section returns the 4096 values of the sy-th 16 block tall slab in section
// storage order: index = (y*16 + z)*16 + x.
func (v *Volume) Section(sy int) []uint32 {
	values := make([]uint32, SectionVolume)
	base := sy * SectionHeight
	for i := range values {
		x, y, z := sectionCoords(i)
		values[i] = v.Get(x, base+y, z)
	}
	return values
}

// SetSection writes values, given in section storage order, into the sy-th
// slab.
func (v *Volume) SetSection(sy int, values []uint32) {
	base := sy * SectionHeight
	for i, val := range values {
		x, y, z := sectionCoords(i)
		v.Set(x, base+y, z, val)
	}
}

func sectionCoords(i int) (x, y, z int) {
	return i & 15, i >> 8, (i >> 4) & 15
}
