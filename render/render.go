// Package render draws a solved (or partially solved) puzzle, either as
// terminal text or as a PNG image.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/domino14/crossfill/puzzle"
	"github.com/domino14/crossfill/solver"
)

const (
	cellSize   = 100
	cellBorder = 2
)

// Grid lays the assignment's words onto a letter grid. Unfilled playable
// cells hold the zero rune.
func Grid(p *puzzle.Puzzle, a solver.Assignment) [][]rune {
	letters := make([][]rune, p.Height())
	for i := range letters {
		letters[i] = make([]rune, p.Width())
	}
	for v, word := range a {
		for k, r := range []rune(word) {
			i, j := v.Cell(k)
			letters[i][j] = r
		}
	}
	return letters
}

// Text writes the puzzle to w the way the terminal renderer always has:
// solid blocks for blocked cells, letters (or spaces) for playable ones.
func Text(w io.Writer, p *puzzle.Puzzle, a solver.Assignment) error {
	letters := Grid(p, a)
	for i := 0; i < p.Height(); i++ {
		row := make([]rune, 0, p.Width()+1)
		for j := 0; j < p.Width(); j++ {
			switch {
			case !p.Playable(i, j):
				row = append(row, '█')
			case letters[i][j] != 0:
				row = append(row, letters[i][j])
			default:
				row = append(row, ' ')
			}
		}
		row = append(row, '\n')
		if _, err := io.WriteString(w, string(row)); err != nil {
			return err
		}
	}
	return nil
}

// SavePNG renders the puzzle to an image file: black canvas, white
// playable cells, centered letters.
func SavePNG(path string, p *puzzle.Puzzle, a solver.Assignment) error {
	letters := Grid(p, a)
	img := image.NewRGBA(image.Rect(0, 0, p.Width()*cellSize, p.Height()*cellSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i := 0; i < p.Height(); i++ {
		for j := 0; j < p.Width(); j++ {
			if !p.Playable(i, j) {
				continue
			}
			cell := image.Rect(
				j*cellSize+cellBorder, i*cellSize+cellBorder,
				(j+1)*cellSize-cellBorder, (i+1)*cellSize-cellBorder,
			)
			draw.Draw(img, cell, image.NewUniform(color.White), image.Point{}, draw.Src)

			if letters[i][j] == 0 {
				continue
			}
			s := string(letters[i][j])
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(color.Black),
				Face: face,
			}
			width := d.MeasureString(s).Ceil()
			d.Dot = fixed.P(
				j*cellSize+(cellSize-width)/2,
				i*cellSize+(cellSize+face.Metrics().Ascent.Ceil())/2,
			)
			d.DrawString(s)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
