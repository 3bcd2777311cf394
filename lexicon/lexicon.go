// Package lexicon loads named word lists, from plain text files or from
// sqlite dictionary databases, and caches them across solves.
package lexicon

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/domino14/crossfill/cache"
	"github.com/domino14/crossfill/config"
)

// A Lexicon is a named vocabulary of candidate fill words.
type Lexicon struct {
	name    string
	words   []string
	wordSet map[string]bool
}

func New(name string, words []string) *Lexicon {
	normalized := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToUpper(strings.TrimSpace(w))
		return w, w != ""
	}))
	l := &Lexicon{
		name:    name,
		words:   normalized,
		wordSet: make(map[string]bool, len(normalized)),
	}
	for _, w := range normalized {
		l.wordSet[w] = true
	}
	return l
}

func (l *Lexicon) Name() string { return l.name }

// Words returns the vocabulary. Callers must not modify it.
func (l *Lexicon) Words() []string { return l.words }

func (l *Lexicon) HasWord(w string) bool {
	return l.wordSet[strings.ToUpper(w)]
}

// LoadTextLexicon reads a one-word-per-line file.
func LoadTextLexicon(name, path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(name, words), nil
}

// LoadDBLexicon reads every row of the words table in a sqlite dictionary
// database.
func LoadDBLexicon(name, path string) (*Lexicon, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT word FROM words")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(name, words), nil
}

// NamedLexicon resolves name under the configured lexicon path, preferring
// a .txt word list and falling back to a .db dictionary. Loads go through
// the global object cache so repeat solves don't re-read the file.
func NamedLexicon(cfg *config.Config, name string) (*Lexicon, error) {
	return cache.Load(cfg, "lexicon:"+name, func(cfg *config.Config, key string) (*Lexicon, error) {
		txt := filepath.Join(cfg.LexiconPath, name+".txt")
		if _, serr := os.Stat(txt); serr == nil {
			return LoadTextLexicon(name, txt)
		}
		dbPath := filepath.Join(cfg.LexiconPath, name+".db")
		if _, serr := os.Stat(dbPath); serr == nil {
			return LoadDBLexicon(name, dbPath)
		}
		return nil, fmt.Errorf("no word list named %v under %v", name, cfg.LexiconPath)
	})
}
