package solver

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crossfill/puzzle"
)

// checkAssignment verifies the three solution invariants: full coverage,
// distinct words of the right lengths, and agreement at every crossing.
func checkAssignment(t *testing.T, s *Solver, a Assignment) {
	t.Helper()
	if len(a) != len(s.puzzle.Variables()) {
		t.Fatalf("assignment covers %d of %d variables", len(a), len(s.puzzle.Variables()))
	}
	seen := make(map[string]bool)
	for v, w := range a {
		if len(w) != v.Length {
			t.Fatalf("word %q does not fit slot %v", w, v)
		}
		if seen[w] {
			t.Fatalf("word %q assigned twice", w)
		}
		seen[w] = true
		for _, u := range s.puzzle.Neighbors(v) {
			ov, ok := s.puzzle.Overlap(v, u)
			if !ok {
				continue
			}
			if a[v][ov.X] != a[u][ov.Y] {
				t.Fatalf("crossing conflict between %v=%q and %v=%q", v, a[v], u, a[u])
			}
		}
	}
}

func TestSolveSingleVariable(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, []string{"___"}, []string{"CAT", "DOG"})

	a, err := s.Solve(context.Background())
	is.NoErr(err)
	checkAssignment(t, s, a)

	v := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	is.True(a[v] == "CAT" || a[v] == "DOG") // either word is acceptable
}

func TestSolveCrossingPair(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "ACE"})

	a, err := s.Solve(context.Background())
	is.NoErr(err)
	checkAssignment(t, s, a)

	// Both slots must be filled, one with each word; CAT's A and ACE's A
	// line up in either orientation.
	words := make(map[string]bool)
	for _, w := range a {
		words[w] = true
	}
	is.Equal(words, map[string]bool{"CAT": true, "ACE": true})
}

func TestSolveUnsatisfiableByPropagation(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, []string{
		"__",
		"_#",
	}, []string{"AX", "BY"})

	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveUnsatisfiableByDistinctness(t *testing.T) {
	is := is.New(t)
	// Two disjoint slots but only one word of the right length: the search
	// itself must fail, since propagation has nothing to remove.
	s := setUpSolver(t, []string{
		"___",
		"###",
		"___",
	}, []string{"CAT"})

	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveDisjointSlotsDistinctWords(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, []string{
		"___",
		"###",
		"___",
	}, []string{"CAT", "DOG"})

	a, err := s.Solve(context.Background())
	is.NoErr(err)
	checkAssignment(t, s, a)
}

// ringRows is a square ring of four slots, each crossing two others at its
// end cells.
var ringRows = []string{
	"____",
	"_##_",
	"_##_",
	"____",
}

var ringWords = []string{"ABCD", "APQR", "RSTU", "DVWU"}

func TestSolveRing(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, ringRows, ringWords)

	a, err := s.Solve(context.Background())
	is.NoErr(err)
	checkAssignment(t, s, a)
}

func TestSolveParallel(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, ringRows, ringWords)
	s.SetThreads(4)

	a, err := s.Solve(context.Background())
	is.NoErr(err)
	checkAssignment(t, s, a)
}

func TestSolveParallelUnsatisfiable(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, []string{
		"___",
		"###",
		"___",
	}, []string{"CAT"})
	s.SetThreads(4)

	_, err := s.Solve(context.Background())
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveCancelled(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, ringRows, ringWords)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, err := s.Solve(ctx)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(a, nil) // never a partial assignment
}

func TestConsistent(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "ACE", "COG", "ABE"})

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}

	is.True(s.Consistent(Assignment{}))
	is.True(s.Consistent(Assignment{across: "CAT"}))
	is.True(s.Consistent(Assignment{across: "CAT", down: "ACE"}))
	// Crossing letters disagree: COG's O vs CAT's C.
	is.True(!s.Consistent(Assignment{across: "COG", down: "CAT"}))
	// Same word twice.
	is.True(!s.Consistent(Assignment{across: "CAT", down: "CAT"}))
	// Wrong length.
	is.True(!s.Consistent(Assignment{across: "AX"}))
}

func TestSelectUnassignedVariableMRV(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "DOG", "ACE"})
	s.EnforceNodeConsistency()

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}

	// Shrink the down domain by hand; MRV must now prefer it.
	delete(s.domains[down], "DOG")
	is.Equal(s.SelectUnassignedVariable(Assignment{}), down)

	// With the down slot assigned, only the across slot remains.
	is.Equal(s.SelectUnassignedVariable(Assignment{down: "ACE"}), across)
}

func TestSelectUnassignedVariableDegreeTieBreak(t *testing.T) {
	is := is.New(t)
	// All three slots end up with two candidates each; the across slot
	// crosses two others while each down slot crosses one.
	s := setUpSolver(t, []string{
		"____",
		"#_#_",
		"#_#_",
	}, []string{"AAAA", "BBBB", "AAA", "BBB"})
	s.EnforceNodeConsistency()

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 4}
	is.Equal(s.SelectUnassignedVariable(Assignment{}), across)
}

func TestOrderDomainValuesLeastConstraining(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "COG", "ACE", "ABE"})
	s.EnforceNodeConsistency()

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}

	// Middle letters A and C each keep two down words alive; O and B kill
	// all four. The least constraining pair must come first, in either
	// internal order.
	ordered := s.OrderDomainValues(across, Assignment{})
	is.Equal(len(ordered), 4)
	firstTwo := map[string]bool{ordered[0]: true, ordered[1]: true}
	is.Equal(firstTwo, map[string]bool{"CAT": true, "ACE": true})
}

func TestOrderDomainValuesIgnoresAssignedNeighbors(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "COG", "ACE", "ABE"})
	s.EnforceNodeConsistency()

	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	down := puzzle.Variable{Row: 0, Col: 1, Direction: puzzle.Down, Length: 3}

	// With the only neighbor already assigned, no candidate eliminates
	// anything; all orderings are equally acceptable.
	ordered := s.OrderDomainValues(across, Assignment{down: "ACE"})
	is.Equal(len(ordered), 4)
}

func TestSolveLogStream(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, crossedRows, []string{"CAT", "ACE"})
	var buf bytes.Buffer
	s.SetLogStream(&buf)

	_, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(buf.Len() > 0)
	is.True(bytes.Contains(buf.Bytes(), []byte("word:")))
}

func TestNodesCounter(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, ringRows, ringWords)

	_, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.Nodes() > 0)

	// Workers fold their counts back into the parent solver.
	s.SetThreads(4)
	_, err = s.Solve(context.Background())
	is.NoErr(err)
	is.True(s.Nodes() > 0)
}

func TestOrderDomainValuesShortWords(t *testing.T) {
	is := is.New(t)
	s := setUpSolver(t, []string{
		"___",
		"##_",
		"##_",
	}, []string{"CAT", "AT", "TEA"})

	// Safe before any length filtering; a word too short to reach the
	// crossing sorts last because it conflicts with everything there.
	across := puzzle.Variable{Row: 0, Col: 0, Direction: puzzle.Across, Length: 3}
	words := s.OrderDomainValues(across, Assignment{})
	is.Equal(len(words), 3)
	is.Equal(words[2], "AT")
}
