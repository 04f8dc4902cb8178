package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"othello-engine/config"
	"othello-engine/engine"
	"othello-engine/othello"
)

func main() {
	cfgPath := flag.String("config", "", "engine config JSON (empty = defaults)")
	weightsPath := flag.String("weights", "", "evaluation weights JSON, overrides the config")
	depth := flag.Int("depth", 0, "default search depth, overrides the config")
	level := flag.String("log", "", "log level, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *weightsPath != "" {
		cfg.WeightsPath = *weightsPath
	}
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogPretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	w, err := cfg.Weights()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.WeightsPath).Msg("loading weights")
	}
	if err := newShell(cfg, w, os.Stdout).run(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("reading commands")
	}
}

// shell reads one command per line. Searches run in the background so that
// stop can interrupt them; every reply goes through reply.
type shell struct {
	cfg     config.Config
	weights engine.Weights
	game    *othello.Game
	runner  engine.Runner

	outMu    sync.Mutex
	out      io.Writer
	searches sync.WaitGroup
}

func newShell(cfg config.Config, w engine.Weights, out io.Writer) *shell {
	s := &shell{cfg: cfg, weights: w, game: othello.NewGame(), out: out}
	s.runner.Weights = &s.weights
	return s
}

func (s *shell) reply(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *shell) run(in io.Reader) error {
	defer func() {
		s.runner.Stop()
		s.searches.Wait()
	}()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if quit := s.handle(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

func (s *shell) handle(line string) (quit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	switch strings.ToLower(tokens[0]) {
	case "isready":
		s.reply("readyok")
	case "newgame":
		s.runner.Stop()
		s.game.Reset()
	case "position":
		s.position(tokens[1:])
	case "play":
		if len(tokens) < 2 {
			s.reply("info string Malformed play command")
			return false
		}
		c, err := othello.ParseCell(tokens[1])
		if err == nil {
			err = s.game.Play(c)
		}
		if err != nil {
			s.reply("info string %v", err)
		}
	case "go":
		s.search(tokens[1:])
	case "stop":
		s.runner.Stop()
		s.searches.Wait()
	case "wait":
		s.searches.Wait()
	case "eval":
		s.reply("info eval %d", engine.Evaluate(s.game.Pos, &s.weights))
	case "d":
		s.display()
	case "quit":
		return true
	default:
		s.reply("info string Unknown command: %s", line)
	}
	return false
}

func (s *shell) position(args []string) {
	if len(args) == 0 {
		s.reply("info string Malformed position command")
		return
	}
	switch strings.ToLower(args[0]) {
	case "startpos":
		s.game.Reset()
	case "board":
		if len(args) < 3 {
			s.reply("info string Malformed position command")
			return
		}
		side, err := strconv.Atoi(args[2])
		if err != nil {
			s.reply("info string Invalid side %q", args[2])
			return
		}
		p, err := othello.ParseBoard(args[1], side)
		if err != nil {
			s.reply("info string %v", err)
			return
		}
		s.game.Load(p, side)
	default:
		s.reply("info string Invalid position subcommand")
	}
}

func (s *shell) search(args []string) {
	depth := 0
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.reply("info string Malformed go command option depth")
				return
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil {
				s.reply("info string Malformed go command option; could not convert depth")
				return
			}
			depth = d
		default:
			s.reply("info string Unknown go subcommand %s", args[i])
		}
	}
	if s.game.Over {
		black, white := s.game.Score()
		s.reply("info string game over %d-%d", black, white)
		return
	}
	task, err := s.runner.Start(s.game.Pos, s.cfg.ClampDepth(depth))
	if err != nil {
		s.reply("info string %v", err)
		return
	}
	s.searches.Add(1)
	go func() {
		defer s.searches.Done()
		res, err := s.runner.Collect(task)
		switch {
		case errors.Is(err, engine.ErrCancelled):
			s.reply("info string search stopped")
		case err != nil:
			s.reply("info string %v", err)
		default:
			s.reply("info nodes %d", res.Nodes)
			s.reply("bestmove %s score %d", res.Cell, res.Score)
		}
	}()
}

func (s *shell) display() {
	black, white := s.game.Score()
	side := "black"
	if s.game.Side == othello.White {
		side = "white"
	}
	s.reply("%s", strings.TrimRight(s.game.Pos.String(), "\n"))
	s.reply("board %s %d", s.game.Board(), s.game.Side)
	s.reply("to move %s (X), black %d white %d", side, black, white)
}
