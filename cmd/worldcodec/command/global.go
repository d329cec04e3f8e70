package command

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/richgrov/worldcodec"
	"github.com/richgrov/worldcodec/convert"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/internal/config"
	"github.com/richgrov/worldcodec/internal/log"
	"github.com/richgrov/worldcodec/internal/metrics"
	"github.com/richgrov/worldcodec/translate"
)

const (
	FormatJSON = "json"
)

type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	Format     string

	config config.Config
}

func (g *GlobalFlags) IsFormatJSON() bool {
	return strings.ToLower(g.Format) == FormatJSON
}

// Setup loads the configuration and installs the logger. It runs before
// every command.
func Setup(g *GlobalFlags) error {
	cfg := config.Default()
	if g.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(g.ConfigFile); err != nil {
			return err
		}
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	g.config = cfg

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLogger(logger)

	if cfg.Metrics.Enabled {
		metrics.Register()
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Logger().Error("metrics endpoint stopped", zap.String("addr", cfg.Metrics.Addr), zap.Error(err))
			}
		}()
	}
	return nil
}

func newResolver(cfg config.Config) (format.Resolver, error) {
	var resolver *translate.TableResolver
	if cfg.TranslationTables != "" {
		var err error
		if resolver, err = translate.LoadTables(cfg.TranslationTables); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultTranslator == config.TranslatorIdentity {
		if resolver == nil {
			resolver = &translate.TableResolver{}
		}
		resolver.Fallback = translate.Identity{}
	}

	if resolver == nil {
		return nil, nil
	}
	return resolver, nil
}

func newConverter(g *GlobalFlags) (*convert.Converter, error) {
	resolver, err := newResolver(g.config)
	if err != nil {
		return nil, err
	}

	return &convert.Converter{
		Registry: worldcodec.NewRegistry(),
		Resolver: resolver,
		Workers:  g.config.Workers,
	}, nil
}
