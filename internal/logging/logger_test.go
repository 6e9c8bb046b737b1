package logging

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestLoggerFormat(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger("test", &out)
	log.Level = Info

	log.Info("frame %d", 7)

	line := out.String()
	assert.Contains(t, line, " I/test[logger_test.go:")
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("] frame 7\n")), line)
}

func TestLoggerSuppressesVerboseLevels(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger("test", &out)
	log.Level = Warn

	log.Info("hidden")
	log.Debug("hidden")
	assert.Zero(t, out.Len())

	log.Error("shown")
	assert.Contains(t, out.String(), " E/test[")
}

func TestWithTagSharesDestination(t *testing.T) {
	var out bytes.Buffer
	parent := NewLogger("", &out)
	parent.Level = Debug

	child := parent.WithTag("child")
	child.Level = Debug
	child.Debug("hello")

	assert.Contains(t, out.String(), " D/child[")
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"e": Error, "WARN": Warn, "info": Info, "D": Debug, "trace": MaxLevel, "5": Level(5),
	} {
		got, err := parseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := parseLevel("loud")
	assert.Error(t, err)
	_, err = parseLevel("10")
	assert.Error(t, err)
}

func TestParseDirectives(t *testing.T) {
	def, tags, errs := parseDirectives("debug,y4m=warn,,bogus=x", Info)

	assert.Equal(t, Debug, def)
	require.Len(t, tags, 1)
	assert.Equal(t, "y4m", tags[0].tag)
	assert.Equal(t, Warn, tags[0].level)
	assert.Len(t, errs, 1)
}

func TestLevelLetter(t *testing.T) {
	assert.Equal(t, byte('E'), Error.letter())
	assert.Equal(t, byte('D'), Debug.letter())
	assert.Equal(t, byte('7'), Level(7).letter())
}
