package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/richgrov/worldcodec/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worldcodec.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("loading a config file", t, func() {
		Convey("expands environment variables", func() {
			t.Setenv("WORLDCODEC_TABLES", "/srv/tables.yaml")
			path := writeConfig(t, `
log_level: debug
workers: 3
translation_tables: ${WORLDCODEC_TABLES}
metrics:
  enabled: true
`)

			cfg, err := config.Load(path)
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.Workers, ShouldEqual, 3)
			So(cfg.TranslationTables, ShouldEqual, "/srv/tables.yaml")
			So(cfg.Metrics.Enabled, ShouldBeTrue)
			So(cfg.Metrics.Addr, ShouldEqual, ":2112")
			So(cfg.DefaultTranslator, ShouldEqual, config.TranslatorIdentity)
		})

		Convey("rejects invalid values", func() {
			_, err := config.Load(writeConfig(t, "workers: 0\n"))
			So(err, ShouldNotBeNil)

			_, err = config.Load(writeConfig(t, "default_translator: magic\n"))
			So(err, ShouldNotBeNil)

			_, err = config.Load(writeConfig(t, "workers: [1\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("a missing file is an error", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})

	Convey("defaults are valid", t, func() {
		So(config.Default().Validate(), ShouldBeNil)
	})
}
