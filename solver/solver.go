// Package solver fills a crossword puzzle from a vocabulary by modeling it
// as a constraint satisfaction problem: node consistency on word lengths,
// AC-3 arc consistency over crossing cells, then heuristically ordered
// backtracking search.
package solver

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/puzzle"
)

// ErrNoSolution is returned when the vocabulary cannot fill the grid,
// whether propagation emptied a domain up front or the search exhausted
// every branch. It is an expected outcome, not a fault.
var ErrNoSolution = errors.New("no solution found")

// An Assignment maps each decided slot to its word. A solved puzzle's
// assignment covers every variable.
type Assignment map[puzzle.Variable]string

type Solver struct {
	puzzle *puzzle.Puzzle

	// domains is mutated in place by the consistency passes before the
	// search starts, and is read-only for the rest of the solve. The
	// search extends per-call assignment copies instead.
	domains map[puzzle.Variable]map[string]bool

	threads   int
	nodes     atomic.Uint64
	logStream io.Writer
}

// Init points the solver at a puzzle and resets every slot's domain to the
// full vocabulary. Node consistency trims the lengths later.
func (s *Solver) Init(p *puzzle.Puzzle) error {
	s.puzzle = p
	s.threads = 1
	s.domains = make(map[puzzle.Variable]map[string]bool, len(p.Variables()))
	for _, v := range p.Variables() {
		d := make(map[string]bool, len(p.Words()))
		for _, w := range p.Words() {
			d[w] = true
		}
		s.domains[v] = d
	}
	return nil
}

// SetThreads configures the root-split parallel search. Anything below 2
// keeps the solve purely sequential.
func (s *Solver) SetThreads(threads int) {
	if threads < 2 {
		s.threads = 1
		return
	}
	s.threads = threads
}

// SetLogStream directs a YAML trace of every consistent trial placement to
// w. Nil (the default) disables tracing.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Nodes returns how many candidate placements the last solve tried.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Domain returns the current candidate words for v. The returned map is
// the live domain; callers must treat it as read-only.
func (s *Solver) Domain(v puzzle.Variable) map[string]bool {
	return s.domains[v]
}

// Solve runs the full pipeline: node consistency, the AC-3 closure, then
// backtracking search. It returns a complete assignment or ErrNoSolution;
// never a partial one. When AC-3 empties a domain the search is skipped,
// since no complete assignment can exist for the reduced domains.
func (s *Solver) Solve(ctx context.Context) (Assignment, error) {
	tstart := time.Now()
	s.nodes.Store(0)

	s.EnforceNodeConsistency()
	if !s.AC3(nil) {
		log.Debug().Msg("propagation-unsatisfiable")
		return nil, ErrNoSolution
	}

	var solution Assignment
	var err error
	if s.threads > 1 {
		solution, err = s.solveParallel(ctx)
	} else {
		solution, err = s.Backtrack(ctx, Assignment{})
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("variables", len(s.puzzle.Variables())).
		Uint64("nodes", s.nodes.Load()).
		Int("threads", s.threads).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return solution, nil
}
