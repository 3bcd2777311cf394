// Command crossfill fills a crossword structure file from a word list and
// prints the result, optionally saving it as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/render"
	"github.com/domino14/crossfill/solver"
	"github.com/domino14/crossfill/xwio"
)

var (
	threads = flag.Int("threads", 1, "number of search workers; below 2 solves sequentially")
	debug   = flag.Bool("debug", false, "enable debug logging")
	trace   = flag.String("trace", "", "write a YAML search trace to this file")
)

func main() {
	flag.Parse()

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = log.Output(output)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	args := flag.Args()
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: crossfill [flags] structure words [output.png]")
		os.Exit(2)
	}

	p, err := xwio.LoadPuzzle(args[0], args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("loading puzzle")
	}

	s := &solver.Solver{}
	if err := s.Init(p); err != nil {
		log.Fatal().Err(err).Msg("initializing solver")
	}
	s.SetThreads(*threads)
	if *trace != "" {
		tf, err := os.Create(*trace)
		if err != nil {
			log.Fatal().Err(err).Msg("creating trace file")
		}
		defer tf.Close()
		s.SetLogStream(tf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fill, err := s.Solve(ctx)
	if err != nil {
		if errors.Is(err, solver.ErrNoSolution) {
			fmt.Println("No solution.")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("solving")
	}

	if err := render.Text(os.Stdout, p, fill); err != nil {
		log.Fatal().Err(err).Msg("rendering")
	}
	if len(args) == 3 {
		if err := render.SavePNG(args[2], p, fill); err != nil {
			log.Fatal().Err(err).Msg("saving image")
		}
	}
}
