package lexicon

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/crossfill/cache"
	"github.com/domino14/crossfill/config"
)

func TestNewNormalizes(t *testing.T) {
	l := New("test", []string{"cat", "CAT", " dog ", ""})
	assert.Equal(t, []string{"CAT", "DOG"}, l.Words())
	assert.True(t, l.HasWord("cat"))
	assert.True(t, l.HasWord("DOG"))
	assert.False(t, l.HasWord("EMU"))
}

func TestLoadTextLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\ndog\nemu\n"), 0644))

	l, err := LoadTextLexicon("animals", path)
	require.NoError(t, err)
	assert.Equal(t, "animals", l.Name())
	assert.Equal(t, []string{"CAT", "DOG", "EMU"}, l.Words())
}

func TestLoadDBLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE words (word TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO words (word) VALUES ('cat'), ('dog')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	l, err := LoadDBLexicon("animals", path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CAT", "DOG"}, l.Words())
}

func TestNamedLexiconCaches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animals.txt"), []byte("cat\n"), 0644))

	cache.Reset()
	cfg := &config.Config{LexiconPath: dir}

	l1, err := NamedLexicon(cfg, "animals")
	require.NoError(t, err)

	// Remove the backing file; the cached object must still be served.
	require.NoError(t, os.Remove(filepath.Join(dir, "animals.txt")))
	l2, err := NamedLexicon(cfg, "animals")
	require.NoError(t, err)
	assert.Same(t, l1, l2)
}

func TestNamedLexiconMissing(t *testing.T) {
	cache.Reset()
	cfg := &config.Config{LexiconPath: t.TempDir()}
	_, err := NamedLexicon(cfg, "nope")
	assert.Error(t, err)
}
