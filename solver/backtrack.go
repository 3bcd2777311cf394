package solver

import (
	"context"
	"errors"
	"sort"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/crossfill/puzzle"
)

// Consistent reports whether a partial assignment is internally valid:
// all words pairwise distinct, every word the right length, and agreeing
// letters at every crossing between two assigned slots. Pure; safe to call
// on any assignment, not just ones built by the search.
func (s *Solver) Consistent(assignment Assignment) bool {
	seen := make(map[string]bool, len(assignment))
	for v, w := range assignment {
		if len(w) != v.Length {
			return false
		}
		if seen[w] {
			return false
		}
		seen[w] = true
	}
	vars := lo.Keys(assignment)
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			ov, ok := s.puzzle.Overlap(vars[i], vars[j])
			if !ok {
				continue
			}
			if assignment[vars[i]][ov.X] != assignment[vars[j]][ov.Y] {
				return false
			}
		}
	}
	return true
}

// SelectUnassignedVariable picks the next slot to fill: fewest remaining
// domain values first, highest crossing count on ties. Slots still tied on
// both counts are interchangeable, so one is picked at random.
func (s *Solver) SelectUnassignedVariable(assignment Assignment) puzzle.Variable {
	candidates := make([]puzzle.Variable, 0, len(s.domains))
	fewest := -1
	for _, v := range s.puzzle.Variables() {
		if _, assigned := assignment[v]; assigned {
			continue
		}
		n := len(s.domains[v])
		switch {
		case fewest < 0 || n < fewest:
			fewest = n
			candidates = append(candidates[:0], v)
		case n == fewest:
			candidates = append(candidates, v)
		}
	}

	if len(candidates) > 1 {
		highest := -1
		for _, v := range candidates {
			if d := len(s.puzzle.Neighbors(v)); d > highest {
				highest = d
			}
		}
		candidates = lo.Filter(candidates, func(v puzzle.Variable, _ int) bool {
			return len(s.puzzle.Neighbors(v)) == highest
		})
	}

	if len(candidates) > 1 {
		frand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	return candidates[0]
}

// OrderDomainValues returns v's remaining words least-constraining first:
// ascending by how many words each one would knock out of the domains of
// v's still-unassigned crossing slots. Ordering only affects how fast the
// search converges, never what it can find.
func (s *Solver) OrderDomainValues(v puzzle.Variable, assignment Assignment) []string {
	words := lo.Keys(s.domains[v])
	if len(words) <= 1 {
		return words
	}

	eliminated := make(map[string]int, len(words))
	for _, u := range s.puzzle.Neighbors(v) {
		if _, assigned := assignment[u]; assigned {
			continue
		}
		ov, ok := s.puzzle.Overlap(v, u)
		if !ok {
			continue
		}
		for _, w := range words {
			for wu := range s.domains[u] {
				// Words too short to reach the shared cell can never
				// coexist; node consistency normally removes them first.
				if ov.X >= len(w) || ov.Y >= len(wu) || w[ov.X] != wu[ov.Y] {
					eliminated[w]++
				}
			}
		}
	}

	sort.Slice(words, func(i, j int) bool {
		return eliminated[words[i]] < eliminated[words[j]]
	})
	return words
}

// Backtrack searches depth-first for a complete assignment extending the
// given partial one. Each recursion level works on its own copy of the
// assignment, so a failed branch cannot leak words into its siblings. The
// first complete assignment found is returned immediately. A cancelled
// context aborts the whole search with the context's error, never with a
// partial assignment.
func (s *Solver) Backtrack(ctx context.Context, assignment Assignment) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(assignment) == len(s.puzzle.Variables()) {
		return assignment, nil
	}

	v := s.SelectUnassignedVariable(assignment)
	for _, w := range s.OrderDomainValues(v, assignment) {
		s.nodes.Add(1)
		trial := make(Assignment, len(assignment)+1)
		for k, val := range assignment {
			trial[k] = val
		}
		trial[v] = w
		if !s.Consistent(trial) {
			continue
		}
		s.logTrial(v, w, len(assignment))
		result, err := s.Backtrack(ctx, trial)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, err
		}
	}
	return nil, ErrNoSolution
}
