// Package puzzle holds the immutable model of a crossword fill problem:
// the playable/blocked structure grid, the word slots (variables) derived
// from it, and the overlap geometry between slots.
package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Direction uint8

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Across {
		return "across"
	}
	return "down"
}

// A Variable is a maximal run of playable cells in one direction. It is a
// plain value type so it can be used directly as a map key; two variables
// are the same slot iff all four fields match.
type Variable struct {
	Row       int
	Col       int
	Direction Direction
	Length    int
}

func (v Variable) String() string {
	return fmt.Sprintf("(%d,%d) %s:%d", v.Row, v.Col, v.Direction, v.Length)
}

// Cell returns the grid coordinates of character offset k of v's word.
func (v Variable) Cell(k int) (int, int) {
	if v.Direction == Down {
		return v.Row + k, v.Col
	}
	return v.Row, v.Col + k
}

// An Overlap records that character X of the first variable's word and
// character Y of the second variable's word occupy the same grid cell.
type Overlap struct {
	X int
	Y int
}

var (
	ErrEmptyGrid     = errors.New("structure grid is empty")
	ErrNoVariables   = errors.New("structure contains no word slots")
	ErrEmptyWordList = errors.New("word list is empty")
)

type varPair struct {
	x, y Variable
}

// A Puzzle is fully immutable after New returns. It is shared read-only by
// the solver; nothing here is mutated during search.
type Puzzle struct {
	height   int
	width    int
	playable [][]bool

	words     []string
	variables []Variable
	overlaps  map[varPair]Overlap
	neighbors map[Variable][]Variable
}

// New builds a puzzle from a structure grid (true = playable cell) and a
// vocabulary. Words are upper-cased and deduplicated. It fails fast on
// inputs that could never be solved meaningfully: an empty grid, a grid
// that yields no word slots, or an empty vocabulary.
func New(structure [][]bool, words []string) (*Puzzle, error) {
	if len(structure) == 0 || len(structure[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(structure[0])
	playable := make([][]bool, len(structure))
	for i, row := range structure {
		if len(row) != width {
			return nil, fmt.Errorf("structure row %d has width %d, want %d", i, len(row), width)
		}
		playable[i] = make([]bool, width)
		copy(playable[i], row)
	}

	normalized := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToUpper(strings.TrimSpace(w))
		return w, w != ""
	}))
	if len(normalized) == 0 {
		return nil, ErrEmptyWordList
	}

	p := &Puzzle{
		height:   len(playable),
		width:    width,
		playable: playable,
		words:    normalized,
	}
	p.deriveVariables()
	if len(p.variables) == 0 {
		return nil, ErrNoVariables
	}
	p.deriveOverlaps()
	return p, nil
}

func (p *Puzzle) Height() int { return p.height }
func (p *Puzzle) Width() int  { return p.width }

// Playable reports whether cell (i, j) can hold a letter. Out-of-range
// coordinates are blocked.
func (p *Puzzle) Playable(i, j int) bool {
	if i < 0 || i >= p.height || j < 0 || j >= p.width {
		return false
	}
	return p.playable[i][j]
}

// Words returns the normalized vocabulary. Callers must not modify it.
func (p *Puzzle) Words() []string { return p.words }

// Variables returns every word slot in the grid. Callers must not modify it.
func (p *Puzzle) Variables() []Variable { return p.variables }

// Overlap returns the character offsets at which x and y share a cell, or
// ok=false when the two slots never cross.
func (p *Puzzle) Overlap(x, y Variable) (Overlap, bool) {
	ov, ok := p.overlaps[varPair{x, y}]
	return ov, ok
}

// Neighbors returns every variable that shares a cell with v. Callers must
// not modify the returned slice.
func (p *Puzzle) Neighbors(v Variable) []Variable {
	return p.neighbors[v]
}

// deriveVariables finds every maximal horizontal and vertical run of
// playable cells. Runs of a single cell are not slots.
func (p *Puzzle) deriveVariables() {
	for i := 0; i < p.height; i++ {
		for j := 0; j < p.width; j++ {
			if !p.playable[i][j] {
				continue
			}
			if j == 0 || !p.playable[i][j-1] {
				length := 0
				for j+length < p.width && p.playable[i][j+length] {
					length++
				}
				if length > 1 {
					p.variables = append(p.variables, Variable{
						Row: i, Col: j, Direction: Across, Length: length,
					})
				}
			}
			if i == 0 || !p.playable[i-1][j] {
				length := 0
				for i+length < p.height && p.playable[i+length][j] {
					length++
				}
				if length > 1 {
					p.variables = append(p.variables, Variable{
						Row: i, Col: j, Direction: Down, Length: length,
					})
				}
			}
		}
	}
}

// deriveOverlaps intersects the cell sets of every pair of variables once.
// Only crossing pairs are stored; Overlap's ok result covers the rest.
func (p *Puzzle) deriveOverlaps() {
	p.overlaps = make(map[varPair]Overlap)
	p.neighbors = make(map[Variable][]Variable, len(p.variables))

	type coord struct{ i, j int }
	cells := make([]map[coord]int, len(p.variables))
	for idx, v := range p.variables {
		cells[idx] = make(map[coord]int, v.Length)
		for k := 0; k < v.Length; k++ {
			ci, cj := v.Cell(k)
			cells[idx][coord{ci, cj}] = k
		}
	}

	for a := 0; a < len(p.variables); a++ {
		for b := a + 1; b < len(p.variables); b++ {
			x, y := p.variables[a], p.variables[b]
			for c, k := range cells[a] {
				l, shared := cells[b][c]
				if !shared {
					continue
				}
				p.overlaps[varPair{x, y}] = Overlap{X: k, Y: l}
				p.overlaps[varPair{y, x}] = Overlap{X: l, Y: k}
				p.neighbors[x] = append(p.neighbors[x], y)
				p.neighbors[y] = append(p.neighbors[y], x)
				break
			}
		}
	}
}
