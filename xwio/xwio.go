// Package xwio implements parsers for crossword structure grids and word
// list files.
package xwio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/crossfill/puzzle"
)

// PlayableRune marks a fillable cell in a structure file. Any other
// character is a blocked cell.
const PlayableRune = '_'

var ErrEmptyStructure = errors.New("structure file contains no rows")

// ParseStructure reads a text grid into a playable/blocked matrix. The grid
// width is the longest line; shorter lines are padded with blocked cells.
// Files that aren't valid UTF-8 are re-read as ISO-8859-1, the same
// fallback the rest of the crossword file ecosystem uses.
func ParseStructure(reader io.Reader) ([][]bool, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		decoder := charmap.ISO8859_1.NewDecoder()
		raw, _, err = transform.Bytes(decoder, raw)
		if err != nil {
			return nil, err
		}
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	width := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, line)
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 || width == 0 {
		return nil, ErrEmptyStructure
	}

	structure := make([][]bool, len(lines))
	for i, line := range lines {
		structure[i] = make([]bool, width)
		for j, r := range []rune(line) {
			structure[i][j] = r == PlayableRune
		}
	}
	return structure, nil
}

// ParseWordList reads one word per line, skipping blanks. Normalization
// (upper-casing, dedup) is left to puzzle.New.
func ParseWordList(reader io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadPuzzle builds a puzzle from a structure file and a word list file.
func LoadPuzzle(structurePath, wordsPath string) (*puzzle.Puzzle, error) {
	sf, err := os.Open(structurePath)
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	structure, err := ParseStructure(sf)
	if err != nil {
		return nil, err
	}

	wf, err := os.Open(wordsPath)
	if err != nil {
		return nil, err
	}
	defer wf.Close()
	words, err := ParseWordList(wf)
	if err != nil {
		return nil, err
	}

	return puzzle.New(structure, words)
}
