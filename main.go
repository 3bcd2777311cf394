package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crossfill/config"
	"github.com/domino14/crossfill/lexicon"
	"github.com/domino14/crossfill/puzzle"
	"github.com/domino14/crossfill/render"
	"github.com/domino14/crossfill/solver"
	"github.com/domino14/crossfill/xwio"
)

var profilePath = flag.String("profilepath", "", "path for profile")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <structure> [wordlist] - load a grid; wordlist defaults to the configured lexicon\n")
	io.WriteString(w, "solve - fill the loaded grid\n")
	io.WriteString(w, "show - print the last fill\n")
	io.WriteString(w, "save <path.png> - save the last fill as an image\n")
	io.WriteString(w, "set threads <n> - number of search workers\n")
	io.WriteString(w, "exit - quit\n")
}

type session struct {
	cfg     *config.Config
	puzzle  *puzzle.Puzzle
	fill    solver.Assignment
	threads int
}

func (s *session) load(args []string) error {
	if len(args) < 1 {
		return errors.New("load needs a structure file")
	}
	sf, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer sf.Close()
	structure, err := xwio.ParseStructure(sf)
	if err != nil {
		return err
	}

	name := s.cfg.DefaultLexicon
	if len(args) > 1 {
		name = args[1]
	}
	lex, err := lexicon.NamedLexicon(s.cfg, name)
	if err != nil {
		return err
	}

	s.puzzle, err = puzzle.New(structure, lex.Words())
	if err != nil {
		return err
	}
	s.fill = nil
	log.Info().Int("variables", len(s.puzzle.Variables())).
		Int("words", len(s.puzzle.Words())).
		Str("lexicon", name).Msg("loaded")
	return nil
}

func (s *session) solve() error {
	if s.puzzle == nil {
		return errors.New("no grid loaded")
	}
	sv := &solver.Solver{}
	if err := sv.Init(s.puzzle); err != nil {
		return err
	}
	sv.SetThreads(s.threads)
	// Ctrl-C during a long fill cancels the search and drops back to the
	// prompt instead of killing the shell.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	fill, err := sv.Solve(ctx)
	if err != nil {
		if errors.Is(err, solver.ErrNoSolution) {
			fmt.Println("No solution.")
			return nil
		}
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("solve cancelled")
			return nil
		}
		return err
	}
	s.fill = fill
	return render.Text(os.Stdout, s.puzzle, s.fill)
}

func (s *session) show() error {
	if s.puzzle == nil {
		return errors.New("no grid loaded")
	}
	return render.Text(os.Stdout, s.puzzle, s.fill)
}

func (s *session) save(args []string) error {
	if len(args) < 1 {
		return errors.New("save needs an output path")
	}
	if s.fill == nil {
		return errors.New("nothing solved yet")
	}
	return render.SavePNG(args[0], s.puzzle, s.fill)
}

func (s *session) set(args []string) error {
	if len(args) != 2 || args[0] != "threads" {
		return errors.New("usage: set threads <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	s.threads = n
	return nil
}

func main() {
	flag.Parse()

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := &config.Config{}
	if err := cfg.Load(flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = log.Output(output)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mcrossfill>\033[0m ",
		HistoryFile: "/tmp/readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	sess := &session{cfg: cfg, threads: cfg.Threads}

readlineLoop:
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		var cmdErr error
		switch fields[0] {
		case "bye", "exit":
			break readlineLoop
		case "help":
			usage(l.Stderr())
		case "load":
			cmdErr = sess.load(fields[1:])
		case "solve":
			cmdErr = sess.solve()
		case "show":
			cmdErr = sess.show()
		case "save":
			cmdErr = sess.save(fields[1:])
		case "set":
			cmdErr = sess.set(fields[1:])
		default:
			log.Error().Msgf("unknown command %v; try help", strconv.Quote(fields[0]))
		}
		if cmdErr != nil {
			log.Error().Err(cmdErr).Msg("")
		}
	}
}
