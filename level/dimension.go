package level

import "path/filepath"

type Dimension int8

const (
	Nether    Dimension = -1
	Overworld Dimension = 0
	End       Dimension = 1
)

// RegionDir returns the directory holding the region files of a dimension.
func (dim Dimension) RegionDir(worldDir string) string {
	switch dim {
	case Nether:
		return filepath.Join(worldDir, "DIM-1", "region")
	case End:
		return filepath.Join(worldDir, "DIM1", "region")
	default:
		return filepath.Join(worldDir, "region")
	}
}

func (dim Dimension) String() string {
	switch dim {
	case Nether:
		return "nether"
	case End:
		return "end"
	default:
		return "overworld"
	}
}
