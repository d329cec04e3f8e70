package level_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/level"
)

func TestVolumeWidth(t *testing.T) {
	v := level.NewVolume(256)
	if v.Width() != 8 || v.Len() != 16*256*16 {
		t.Fatalf("new volume has width %d and length %d", v.Width(), v.Len())
	}

	v.Set(1, 2, 3, 300)
	if v.Width() != 16 {
		t.Fatalf("width after storing 300 is %d, want 16", v.Width())
	}
	v.Set(15, 255, 15, 70000)
	if v.Width() != 32 {
		t.Fatalf("width after storing 70000 is %d, want 32", v.Width())
	}

	if v.Get(1, 2, 3) != 300 || v.Get(15, 255, 15) != 70000 || v.Get(0, 0, 0) != 0 {
		t.Fatal("values changed while widening")
	}

	v.Set(15, 255, 15, 0)
	v.Narrow()
	if v.Width() != 16 {
		t.Errorf("narrowed width is %d, want 16", v.Width())
	}
	v.Set(1, 2, 3, 7)
	v.Narrow()
	if v.Width() != 8 || v.Get(1, 2, 3) != 7 {
		t.Errorf("narrowed width is %d, value %d", v.Width(), v.Get(1, 2, 3))
	}
}

func TestVolumeSections(t *testing.T) {
	v := level.NewVolume(64)

	values := make([]uint32, level.SectionVolume)
	for i := range values {
		values[i] = uint32(i % 251)
	}
	v.SetSection(2, values)

	// Section storage order is (y, z, x)
	if got := v.Get(1, 32, 0); got != 1 {
		t.Errorf("x=1 y=32 z=0: got %d, want 1", got)
	}
	if got := v.Get(0, 32, 1); got != 16 {
		t.Errorf("x=0 y=32 z=1: got %d, want 16", got)
	}
	if got := v.Get(0, 33, 0); got != 256%251 {
		t.Errorf("x=0 y=33 z=0: got %d, want %d", got, 256%251)
	}

	if got := v.Section(2); !reflect.DeepEqual(got, values) {
		t.Error("section read back differs from the one written")
	}
	if got := v.Section(1); !reflect.DeepEqual(got, make([]uint32, level.SectionVolume)) {
		t.Error("untouched section is not empty")
	}
}

func TestChunkValidate(t *testing.T) {
	chunk := level.NewChunk(level.ChunkPos{X: -3, Z: 4}, 256)
	palette := blocks.NewPalette(blocks.Air, blocks.NewBlock("minecraft", "stone", nil))

	if err := chunk.Validate(palette); err != nil {
		t.Fatal(err)
	}

	chunk.Blocks.Set(0, 0, 0, 2)
	if err := chunk.Validate(palette); !errors.Is(err, level.ErrIndexOutOfPalette) {
		t.Errorf("got %v, want ErrIndexOutOfPalette", err)
	}
}

func TestChunkPosRegion(t *testing.T) {
	cases := map[level.ChunkPos]level.RegionPos{
		{X: 0, Z: 0}:     {X: 0, Z: 0},
		{X: 31, Z: 32}:   {X: 0, Z: 1},
		{X: -1, Z: -32}:  {X: -1, Z: -1},
		{X: -33, Z: 100}: {X: -2, Z: 3},
	}

	for pos, want := range cases {
		if got := pos.Region(); got != want {
			t.Errorf("%s: got region %v, want %v", pos, got, want)
		}
	}
}

func TestRegionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.-1.2.mca")

	region, err := level.CreateRegion(path)
	if err != nil {
		t.Fatal(err)
	}

	small := []byte("small chunk payload")
	large := bytes.Repeat([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 4096)
	first := level.ChunkPos{X: -32, Z: 64}
	second := level.ChunkPos{X: -1, Z: 95}

	if err := region.WriteChunk(first, small); err != nil {
		t.Fatal(err)
	}
	if err := region.WriteChunk(second, large); err != nil {
		t.Fatal(err)
	}
	// Rewrite the first chunk after another one was appended
	grown := bytes.Repeat([]byte("grown"), 20000)
	if err := region.WriteChunk(first, grown); err != nil {
		t.Fatal(err)
	}
	if err := region.Close(); err != nil {
		t.Fatal(err)
	}

	region, err = level.OpenRegion(path)
	if err != nil {
		t.Fatal(err)
	}
	defer region.Close()

	if region.Pos != (level.RegionPos{X: -1, Z: 2}) {
		t.Errorf("region position parsed as %v", region.Pos)
	}

	chunks := region.Chunks()
	if !reflect.DeepEqual(chunks, []level.ChunkPos{first, second}) {
		t.Errorf("got chunks %v, want %v", chunks, []level.ChunkPos{first, second})
	}

	data, err := region.ReadChunk(first)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, grown) {
		t.Error("first chunk payload differs")
	}

	data, err = region.ReadChunk(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, large) {
		t.Error("second chunk payload differs")
	}

	if _, err := region.ReadChunk(level.ChunkPos{X: -31, Z: 64}); !errors.Is(err, level.ErrChunkNotPresent) {
		t.Errorf("missing chunk: got %v", err)
	}
	if region.Timestamp(first).IsZero() {
		t.Error("timestamp not recorded")
	}
}

func TestRegionStoredCompression(t *testing.T) {
	payload := []byte("raw nbt bytes")

	var gzipped bytes.Buffer
	w := gzip.NewWriter(&gzipped)
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		compression byte
		stored      []byte
	}{
		{"none", 3, payload},
		{"gzip", 1, gzipped.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := make([]byte, 3*4096)
			// Chunk 0,0 lives in sector 2 and spans one sector
			binary.BigEndian.PutUint32(file[0:], 2<<8|1)
			binary.BigEndian.PutUint32(file[2*4096:], uint32(len(tt.stored)+1))
			file[2*4096+4] = tt.compression
			copy(file[2*4096+5:], tt.stored)

			path := filepath.Join(t.TempDir(), "r.0.0.mca")
			if err := os.WriteFile(path, file, 0o644); err != nil {
				t.Fatal(err)
			}

			region, err := level.OpenRegion(path)
			if err != nil {
				t.Fatal(err)
			}
			defer region.Close()

			data, err := region.ReadChunk(level.ChunkPos{})
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, payload) {
				t.Errorf("got %q, want %q", data, payload)
			}
		})
	}
}

func TestRegionName(t *testing.T) {
	pos, err := level.ParseRegionPos(filepath.Join("world", "region", "r.-3.12.mca"))
	if err != nil {
		t.Fatal(err)
	}
	if pos != (level.RegionPos{X: -3, Z: 12}) {
		t.Errorf("got %v", pos)
	}

	for _, name := range []string{"chunks.mca", "r.1.mca", "r.1.2.mcr", "r.1.2.mca.bak", "r.01.2.mca"} {
		if _, err := level.ParseRegionPos(name); !errors.Is(err, level.ErrRegionName) {
			t.Errorf("%s: got %v, want ErrRegionName", name, err)
		}
	}

	dir := t.TempDir()
	if _, err := level.OpenRegion(filepath.Join(dir, "backup.mca")); !errors.Is(err, level.ErrRegionName) {
		t.Errorf("open: got %v, want ErrRegionName", err)
	}

	region, err := level.CreateRegionAt(filepath.Join(dir, "backup.mca"), level.RegionPos{X: 4, Z: -1})
	if err != nil {
		t.Fatal(err)
	}
	defer region.Close()
	if region.Pos != (level.RegionPos{X: 4, Z: -1}) {
		t.Errorf("created region at %v", region.Pos)
	}
}

func TestRegionPath(t *testing.T) {
	got := level.RegionPath("world", level.Nether, level.RegionPos{X: -1, Z: 3})
	if want := filepath.Join("world", "DIM-1", "region", "r.-1.3.mca"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := level.End.RegionDir("world"); got != filepath.Join("world", "DIM1", "region") {
		t.Errorf("end region dir %s", got)
	}
}
