package blocks_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/richgrov/worldcodec/blocks"
)

func TestBlock(t *testing.T) {
	Convey("block values", t, func() {
		a := blocks.NewBlock("minecraft", "oak_log", map[string]string{"axis": "y", "waterlogged": "false"})
		b := blocks.NewBlock("minecraft", "oak_log", map[string]string{"waterlogged": "false", "axis": "y"})
		c := blocks.NewBlock("minecraft", "oak_log", map[string]string{"axis": "x", "waterlogged": "false"})

		Convey("equality ignores property order", func() {
			So(a.Equal(b), ShouldBeTrue)
			So(a.Key(), ShouldEqual, b.Key())
			So(a.Equal(c), ShouldBeFalse)
			So(a.Key(), ShouldEqual, "minecraft:oak_log[axis=y,waterlogged=false]")
		})

		Convey("properties are copied", func() {
			props := map[string]string{"lit": "true"}
			furnace := blocks.NewBlock("minecraft", "furnace", props)
			props["lit"] = "false"
			So(furnace.Properties["lit"], ShouldEqual, "true")
		})

		Convey("delimiters inside names and values do not make keys collide", func() {
			joined := blocks.NewBlock("minecraft", "x", map[string]string{"a": "1,b=2"})
			split := blocks.NewBlock("minecraft", "x", map[string]string{"a": "1", "b": "2"})
			So(joined.Equal(split), ShouldBeFalse)
			So(joined.Key(), ShouldNotEqual, split.Key())

			short := blocks.NewBlock("a", "b:c", nil)
			long := blocks.NewBlock("a:b", "c", nil)
			So(short.Equal(long), ShouldBeFalse)
			So(short.Key(), ShouldNotEqual, long.Key())

			p, remap := blocks.Dedup([]blocks.Block{joined, split, short, long})
			So(p.Len(), ShouldEqual, 4)
			So(remap[0], ShouldNotEqual, remap[1])
			So(remap[2], ShouldNotEqual, remap[3])
			So(blocks.NewPalette(joined, split).Len(), ShouldEqual, 2)
		})

		Convey("an empty property map equals a nil one", func() {
			So(blocks.NewBlock("minecraft", "air", map[string]string{}).Equal(blocks.Air), ShouldBeTrue)
			So(blocks.Air.IsAir(), ShouldBeTrue)
			So(a.IsAir(), ShouldBeFalse)
		})

		Convey("ordering follows the key", func() {
			So(c.Less(a), ShouldBeTrue)
			So(a.Less(c), ShouldBeFalse)
		})
	})

	Convey("parsing identifiers", t, func() {
		b, err := blocks.ParseBlock("minecraft:stone", nil)
		So(err, ShouldBeNil)
		So(b.Namespace, ShouldEqual, "minecraft")
		So(b.BaseName, ShouldEqual, "stone")
		So(b.String(), ShouldEqual, "minecraft:stone")

		b, err = blocks.ParseBlock("mod:machine:core", nil)
		So(err, ShouldBeNil)
		So(b.BaseName, ShouldEqual, "machine:core")

		for _, id := range []string{"stone", ":stone", "minecraft:", ""} {
			_, err := blocks.ParseBlock(id, nil)
			So(errors.Is(err, blocks.ErrUnknownBlockIdentifier), ShouldBeTrue)
		}
	})
}

func TestPalette(t *testing.T) {
	stone := blocks.NewBlock("minecraft", "stone", nil)
	dirt := blocks.NewBlock("minecraft", "dirt", nil)
	snowy := blocks.NewBlock("minecraft", "grass_block", map[string]string{"snowy": "true"})
	plain := blocks.NewBlock("minecraft", "grass_block", map[string]string{"snowy": "false"})

	Convey("building a palette", t, func() {
		p := blocks.NewPalette(blocks.Air, stone, blocks.Air, dirt)

		So(p.Len(), ShouldEqual, 3)
		So(p.Block(0).IsAir(), ShouldBeTrue)
		So(p.Block(1).Equal(stone), ShouldBeTrue)

		id, ok := p.ID(dirt)
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, 2)

		_, ok = p.ID(snowy)
		So(ok, ShouldBeFalse)

		So(p.GetAdd(snowy), ShouldEqual, 3)
		So(p.GetAdd(snowy), ShouldEqual, 3)
		So(p.Len(), ShouldEqual, 4)
	})

	Convey("the zero palette is usable", t, func() {
		var p blocks.Palette
		So(p.Len(), ShouldEqual, 0)
		So(p.GetAdd(stone), ShouldEqual, 0)
	})

	Convey("deduplicating a repeating list", t, func() {
		list := []blocks.Block{blocks.Air, stone, blocks.Air, snowy, plain, stone, blocks.Air}
		p, remap := blocks.Dedup(list)

		So(p.Len(), ShouldEqual, 4)
		So(len(remap), ShouldEqual, len(list))

		for i, b := range list {
			So(p.Block(int(remap[i])).Equal(b), ShouldBeTrue)
		}

		seen := make(map[string]bool)
		for _, b := range p.Blocks() {
			So(seen[b.Key()], ShouldBeFalse)
			seen[b.Key()] = true
		}

		for i := 1; i < p.Len(); i++ {
			So(p.Block(i-1).Less(p.Block(i)), ShouldBeTrue)
		}
	})
}
