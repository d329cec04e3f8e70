package level

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

const (
	RegionWidth = 32

	sectorSize    = 4096
	headerSectors = 2
	maxSectors    = 255
	entries       = RegionWidth * RegionWidth
)

const (
	compressionGzip = 1
	compressionZlib = 2
	compressionNone = 3
)

var (
	ErrChunkNotPresent = errors.New("chunk not present in region")
	ErrChunkTooLarge   = errors.New("chunk too large for region sectors")
	ErrRegionName      = errors.New("region file name is not r.<x>.<z>.mca")
)

// Region is an open Anvil region file holding up to 32x32 chunks. The file
// starts with a table of 4KiB sector locations followed by a table of
// modification timestamps.
type Region struct {
	Pos RegionPos

	file       *os.File
	locations  [entries]uint32
	timestamps [entries]uint32
}

func RegionPath(worldDir string, dim Dimension, pos RegionPos) string {
	return filepath.Join(dim.RegionDir(worldDir), fmt.Sprintf("r.%d.%d.mca", pos.X, pos.Z))
}

// OpenRegion opens an existing region file for reading and writing. The
// region position comes from the file name.
func OpenRegion(path string) (*Region, error) {
	pos, err := ParseRegionPos(path)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	region := &Region{
		Pos:  pos,
		file: file,
	}

	if err := region.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("error reading region header of %s: %w", path, err)
	}
	return region, nil
}

// CreateRegion creates an empty region file, truncating any existing one.
// The region position comes from the file name.
func CreateRegion(path string) (*Region, error) {
	pos, err := ParseRegionPos(path)
	if err != nil {
		return nil, err
	}
	return CreateRegionAt(path, pos)
}

// CreateRegionAt is CreateRegion for a file of any name holding the region
// at pos.
func CreateRegionAt(path string, pos RegionPos) (*Region, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if _, err := file.Write(make([]byte, headerSectors*sectorSize)); err != nil {
		file.Close()
		return nil, err
	}

	return &Region{
		Pos:  pos,
		file: file,
	}, nil
}

// ParseRegionPos reads the region position from a file named r.<x>.<z>.mca.
func ParseRegionPos(path string) (RegionPos, error) {
	name := filepath.Base(path)

	var pos RegionPos
	if _, err := fmt.Sscanf(name, "r.%d.%d.mca", &pos.X, &pos.Z); err != nil {
		return RegionPos{}, fmt.Errorf("%w: %s", ErrRegionName, name)
	}
	if fmt.Sprintf("r.%d.%d.mca", pos.X, pos.Z) != name {
		return RegionPos{}, fmt.Errorf("%w: %s", ErrRegionName, name)
	}
	return pos, nil
}

func (region *Region) readHeader() error {
	header := make([]byte, headerSectors*sectorSize)
	if _, err := region.file.ReadAt(header, 0); err != nil {
		return err
	}

	for i := 0; i < entries; i++ {
		region.locations[i] = binary.BigEndian.Uint32(header[i*4:])
		region.timestamps[i] = binary.BigEndian.Uint32(header[sectorSize+i*4:])
	}
	return nil
}

func entryIndex(pos ChunkPos) int {
	return int((pos.X & 31) + (pos.Z&31)*32)
}

// Chunks returns the positions of every chunk stored in the region.
func (region *Region) Chunks() []ChunkPos {
	positions := make([]ChunkPos, 0)
	for i, location := range region.locations {
		if location == 0 {
			continue
		}
		positions = append(positions, ChunkPos{
			X: region.Pos.X*RegionWidth + int32(i%RegionWidth),
			Z: region.Pos.Z*RegionWidth + int32(i/RegionWidth),
		})
	}
	return positions
}

func (region *Region) HasChunk(pos ChunkPos) bool {
	return region.locations[entryIndex(pos)] != 0
}

// Timestamp returns the last modification time recorded for a chunk.
func (region *Region) Timestamp(pos ChunkPos) time.Time {
	return time.Unix(int64(region.timestamps[entryIndex(pos)]), 0)
}

// ReadChunk returns the uncompressed NBT payload of a chunk.
func (region *Region) ReadChunk(pos ChunkPos) ([]byte, error) {
	location := region.locations[entryIndex(pos)]

	// 0 offset means the chunk is not present in the region
	offset := int64(location >> 8)
	if offset == 0 {
		return nil, fmt.Errorf("%w: %s", ErrChunkNotPresent, pos)
	}

	var lengthBuf [4]byte
	if _, err := region.file.ReadAt(lengthBuf[:], offset*sectorSize); err != nil {
		return nil, err
	}

	dataLength := int64(binary.BigEndian.Uint32(lengthBuf[:]))
	if dataLength < 1 || dataLength > int64(location&0xFF)*sectorSize {
		return nil, fmt.Errorf("chunk %s has invalid length %d", pos, dataLength)
	}

	data := make([]byte, dataLength)
	if _, err := region.file.ReadAt(data, offset*sectorSize+4); err != nil {
		return nil, err
	}

	uncompressor, err := decompressChunkData(data)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", pos, err)
	}
	defer uncompressor.Close()

	return io.ReadAll(uncompressor)
}

func decompressChunkData(data []byte) (io.ReadCloser, error) {
	switch data[0] {
	case compressionGzip:
		return gzip.NewReader(bytes.NewReader(data[1:]))
	case compressionZlib:
		return zlib.NewReader(bytes.NewReader(data[1:]))
	case compressionNone:
		return io.NopCloser(bytes.NewReader(data[1:])), nil
	default:
		return nil, fmt.Errorf("unsupported compression type %d", data[0])
	}
}

// WriteChunk zlib-compresses payload and stores it. The chunk keeps its
// sectors when the new data fits, otherwise it moves to the end of the file.
func (region *Region) WriteChunk(pos ChunkPos, payload []byte) error {
	var compressed bytes.Buffer
	compressed.WriteByte(compressionZlib)
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(payload); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	sectors := (compressed.Len() + 4 + sectorSize - 1) / sectorSize
	if sectors > maxSectors {
		return fmt.Errorf("%w: %s needs %d sectors", ErrChunkTooLarge, pos, sectors)
	}

	index := entryIndex(pos)
	offset := region.locations[index] >> 8
	if offset == 0 || sectors > int(region.locations[index]&0xFF) {
		offset = region.endSector()
	}

	buf := make([]byte, sectors*sectorSize)
	binary.BigEndian.PutUint32(buf, uint32(compressed.Len()))
	copy(buf[4:], compressed.Bytes())
	if _, err := region.file.WriteAt(buf, int64(offset)*sectorSize); err != nil {
		return err
	}

	region.locations[index] = offset<<8 | uint32(sectors)
	region.timestamps[index] = uint32(time.Now().Unix())
	return region.writeHeaderEntry(index)
}

func (region *Region) endSector() uint32 {
	end := uint32(headerSectors)
	for _, location := range region.locations {
		if location == 0 {
			continue
		}
		end = max(end, location>>8+location&0xFF)
	}
	return end
}

func (region *Region) writeHeaderEntry(index int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], region.locations[index])
	if _, err := region.file.WriteAt(buf[:], int64(index*4)); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(buf[:], region.timestamps[index])
	_, err := region.file.WriteAt(buf[:], int64(sectorSize+index*4))
	return err
}

func (region *Region) Close() error {
	return region.file.Close()
}
