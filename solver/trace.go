package solver

import (
	"gopkg.in/yaml.v3"

	"github.com/domino14/crossfill/puzzle"
)

// trialLog is a single consistent placement explored by the search, in a
// format that can be parsed and graphed for debugging.
type trialLog struct {
	Depth    int    `yaml:"depth"`
	Variable string `yaml:"variable"`
	Word     string `yaml:"word"`
	Nodes    uint64 `yaml:"nodes"`
}

func (s *Solver) logTrial(v puzzle.Variable, word string, depth int) {
	if s.logStream == nil {
		return
	}
	out, err := yaml.Marshal([]trialLog{{
		Depth:    depth,
		Variable: v.String(),
		Word:     word,
		Nodes:    s.nodes.Load(),
	}})
	if err != nil {
		return
	}
	s.logStream.Write(out)
}
