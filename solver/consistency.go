package solver

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/puzzle"
)

// An Arc is a directed consistency obligation: every word left for X must
// have a supporting word in Y's domain at their shared cell.
type Arc struct {
	X puzzle.Variable
	Y puzzle.Variable
}

// EnforceNodeConsistency removes from every domain the words whose length
// does not match the slot. Idempotent; running it again removes nothing.
func (s *Solver) EnforceNodeConsistency() {
	for v, words := range s.domains {
		for w := range words {
			if len(w) != v.Length {
				delete(words, w)
			}
		}
	}
}

// Revise makes x arc-consistent with y by deleting every word of x's
// domain that has no supporting word in y's domain at the shared cell.
// It returns true iff at least one word was removed. When the two slots
// do not cross (or x and y are the same slot), x is vacuously consistent
// and nothing is touched.
func (s *Solver) Revise(x, y puzzle.Variable) bool {
	if x == y {
		return false
	}
	ov, ok := s.puzzle.Overlap(x, y)
	if !ok {
		return false
	}
	revised := false
	for wx := range s.domains[x] {
		// A word that doesn't reach the shared cell can never be placed
		// here; node consistency normally removes these first.
		if ov.X >= len(wx) {
			delete(s.domains[x], wx)
			revised = true
			continue
		}
		supported := false
		for wy := range s.domains[y] {
			// A word cannot support its own copy: two crossing slots
			// never hold the same word in a complete assignment.
			if wy != wx && ov.Y < len(wy) && wx[ov.X] == wy[ov.Y] {
				supported = true
				break
			}
		}
		if !supported {
			delete(s.domains[x], wx)
			revised = true
		}
	}
	return revised
}

// AC3 runs the arc-consistency closure over the domain store. A nil arcs
// argument means the full arc set, both directions of every crossing pair.
// It returns false as soon as some domain empties, which signals that no
// complete assignment exists for the current domains. Termination is
// guaranteed: every successful revise strictly shrinks a finite domain.
func (s *Solver) AC3(arcs []Arc) bool {
	queued := make(map[Arc]bool)
	var queue []Arc
	enqueue := func(a Arc) {
		if !queued[a] {
			queued[a] = true
			queue = append(queue, a)
		}
	}

	if arcs == nil {
		// Both directions of every crossing pair: revising (x, y) says
		// nothing about whether y's words still have support in x.
		for _, v := range s.puzzle.Variables() {
			for _, n := range s.puzzle.Neighbors(v) {
				enqueue(Arc{X: v, Y: n})
			}
		}
	} else {
		for _, a := range arcs {
			enqueue(a)
		}
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		delete(queued, a)

		if !s.Revise(a.X, a.Y) {
			continue
		}
		if len(s.domains[a.X]) == 0 {
			log.Debug().Str("variable", a.X.String()).Msg("domain-emptied")
			return false
		}
		// X's reduced domain may have knocked out the support that its
		// other neighbors were counting on.
		for _, z := range s.puzzle.Neighbors(a.X) {
			if z == a.Y {
				continue
			}
			enqueue(Arc{X: z, Y: a.X})
		}
	}
	return true
}
