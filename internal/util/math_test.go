package util

import "testing"

func TestDivideAndFloorI32(t *testing.T) {
	cases := []struct {
		a, b, want int32
	}{
		{0, 32, 0},
		{31, 32, 0},
		{32, 32, 1},
		{-1, 32, -1},
		{-32, 32, -1},
		{-33, 32, -2},
		{-17, 16, -2},
		{17, -16, -2},
	}

	for _, c := range cases {
		if got := DivideAndFloorI32(c.a, c.b); got != c.want {
			t.Errorf("DivideAndFloorI32(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSmallestUnsignedWidth(t *testing.T) {
	cases := map[uint32]int{
		0:         8,
		255:       8,
		256:       16,
		65535:     16,
		65536:     32,
		1<<32 - 1: 32,
	}

	for max, want := range cases {
		if got := SmallestUnsignedWidth(max); got != want {
			t.Errorf("SmallestUnsignedWidth(%d) = %d, want %d", max, got, want)
		}
	}
}
