package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("FC_LOG_LEVEL", "debug")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestMinLevel(t *testing.T) {
	t.Setenv("FC_LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, minLevel())

	t.Setenv("FC_LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, minLevel())

	t.Setenv("FC_LOG_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, minLevel())
}
