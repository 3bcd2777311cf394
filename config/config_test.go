package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Load(nil))
	assert.Equal(t, "./data/lexica", c.LexiconPath)
	assert.Equal(t, "wordlist", c.DefaultLexicon)
	assert.Equal(t, 1, c.Threads)
	assert.False(t, c.Debug)
}

func TestLoadFlags(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Load([]string{
		"--lexicon-path", "/tmp/lexica",
		"--threads", "8",
		"--debug",
	}))
	assert.Equal(t, "/tmp/lexica", c.LexiconPath)
	assert.Equal(t, 8, c.Threads)
	assert.True(t, c.Debug)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CROSSFILL_DEFAULT_LEXICON", "ospd")
	c := &Config{}
	require.NoError(t, c.Load(nil))
	assert.Equal(t, "ospd", c.DefaultLexicon)
}

func TestLoadBadFlag(t *testing.T) {
	c := &Config{}
	assert.Error(t, c.Load([]string{"--no-such-flag"}))
}
