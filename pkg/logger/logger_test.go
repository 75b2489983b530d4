package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "nivel vacío usa info")
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNop_NoEmite(t *testing.T) {
	l := Nop().Component("ledger")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
