package solver

import (
	"context"
	"errors"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/crossfill/puzzle"
)

// solveParallel splits the search at the root: the root slot is chosen
// once, its candidate words are sharded across workers, and each worker
// runs an ordinary sequential backtrack over its own deep copy of the
// domain store. The first worker to complete an assignment cancels its
// siblings. Propagation has already finished by the time this runs, so
// the shared domain store is read-only and only assignments are copied.
func (s *Solver) solveParallel(ctx context.Context) (Assignment, error) {
	root := s.SelectUnassignedVariable(Assignment{})
	values := s.OrderDomainValues(root, Assignment{})
	if len(values) == 0 {
		return nil, ErrNoSolution
	}

	workers := s.threads
	if workers > len(values) {
		workers = len(values)
	}
	buckets := make([][]string, workers)
	for _, w := range values {
		idx := xxhash.Sum64String(w) % uint64(workers)
		buckets[idx] = append(buckets[idx], w)
	}
	log.Debug().Int("workers", workers).Str("root", root.String()).Msg("parallel-root-split")

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Assignment, workers)
	g := errgroup.Group{}
	for t := 0; t < workers; t++ {
		bucket := buckets[t]
		g.Go(func() error {
			sub := s.workerCopy()
			defer func() { s.nodes.Add(sub.nodes.Load()) }()
			for _, w := range bucket {
				trial := Assignment{root: w}
				if !sub.Consistent(trial) {
					continue
				}
				solution, err := sub.Backtrack(searchCtx, trial)
				if err == nil {
					select {
					case results <- solution:
						cancel()
					default:
					}
					return nil
				}
				if !errors.Is(err, ErrNoSolution) {
					// Cancelled, either by the caller or by a sibling
					// that already found a solution.
					return nil
				}
			}
			return nil
		})
	}
	g.Wait()

	select {
	case solution := <-results:
		return solution, nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSolution
}

// workerCopy clones the solver with a deep copy of the domain store, so a
// branch can never observe another branch's work.
func (s *Solver) workerCopy() *Solver {
	cp := &Solver{
		puzzle:  s.puzzle,
		threads: 1,
	}
	cp.domains = make(map[puzzle.Variable]map[string]bool, len(s.domains))
	for v, words := range s.domains {
		d := make(map[string]bool, len(words))
		for w := range words {
			d[w] = true
		}
		cp.domains[v] = d
	}
	return cp
}
