package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"Error": zerolog.ErrorLevel,
		"trace": zerolog.TraceLevel,
		"info":  zerolog.InfoLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestNew_FiltersAndTees(t *testing.T) {
	var console, file bytes.Buffer
	log := New(&console, &file, "warn")

	log.Info().Msg("quiet")
	log.Warn().Str("template", "bullet").Msg("pool exhausted")

	assert.NotContains(t, file.String(), "quiet")
	assert.Contains(t, file.String(), "pool exhausted")
	assert.Contains(t, file.String(), "template=bullet")
	assert.Contains(t, console.String(), "pool exhausted")
}

func TestNew_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	log := New(&console, nil, "debug")

	log.Debug().Msg("tick")

	assert.Contains(t, console.String(), "tick")
}
