package command

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/internal/config"
	"github.com/richgrov/worldcodec/level"
	"github.com/richgrov/worldcodec/translate"
)

func TestParseChunkPos(t *testing.T) {
	Convey("chunk positions", t, func() {
		pos, err := parseChunkPos("-3,17")
		So(err, ShouldBeNil)
		So(pos, ShouldResemble, level.ChunkPos{X: -3, Z: 17})

		_, err = parseChunkPos("3")
		So(err, ShouldNotBeNil)
	})
}

func TestNewResolver(t *testing.T) {
	Convey("building the translator resolver from config", t, func() {
		cfg := config.Default()

		Convey("identity fallback without tables", func() {
			resolver, err := newResolver(cfg)
			So(err, ShouldBeNil)
			tr, err := resolver.Translator(format.NewKey("anvil", 1976))
			So(err, ShouldBeNil)
			So(tr, ShouldResemble, translate.Identity{})
		})

		Convey("no translation at all", func() {
			cfg.DefaultTranslator = config.TranslatorNone
			resolver, err := newResolver(cfg)
			So(err, ShouldBeNil)
			So(resolver, ShouldBeNil)
		})

		Convey("tables without fallback", func() {
			path := filepath.Join(t.TempDir(), "tables.yaml")
			So(os.WriteFile(path, []byte("translators:\n  - name: t\n    format: anvil\n    min_version: 2529\n"), 0o644), ShouldBeNil)

			cfg.TranslationTables = path
			cfg.DefaultTranslator = config.TranslatorNone
			resolver, err := newResolver(cfg)
			So(err, ShouldBeNil)

			_, err = resolver.Translator(format.NewKey("anvil", 2586))
			So(err, ShouldBeNil)
			_, err = resolver.Translator(format.NewKey("anvil", 1976))
			So(errors.Is(err, format.ErrNoTranslator), ShouldBeTrue)
		})
	})
}
