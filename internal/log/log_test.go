package log_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/richgrov/worldcodec/internal/log"
)

func TestLogger(t *testing.T) {
	if log.Logger() == nil {
		t.Fatal("default logger is nil")
	}

	l, err := log.New("warn")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) || !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn logger has the wrong level")
	}

	log.SetLogger(l)
	defer log.SetLogger(zap.NewNop())
	if log.Logger() != l {
		t.Error("SetLogger did not replace the logger")
	}

	if _, err := log.New("loud"); err == nil {
		t.Error("unknown level accepted")
	}
}
