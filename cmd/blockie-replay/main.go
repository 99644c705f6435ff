// Command blockie-replay runs YAML shot scenarios against the engine and
// checks their expected regions.
//
// Usage:
//
//	blockie-replay [-emit dir] [-v] path...
//
// Each path is a scenario file or a directory of them. With -emit, the
// observed result of every scenario is written to dir as a new scenario file
// instead of being checked.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/plus3/blockie/internal/logging"
	"github.com/plus3/blockie/internal/scenario"
	"github.com/rs/zerolog"
)

func main() {
	emit := flag.String("emit", "", "Write recorded scenarios to this directory instead of checking them.")
	verbose := flag.Bool("v", false, "Print every region of every scenario.")
	logLevel := flag.String("log-level", "info", "Log level.")
	flag.Parse()

	log, _, err := logging.New(logging.Options{Level: *logLevel, Console: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockie-replay: %v\n", err)
		os.Exit(2)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	scenarios, err := load(flag.Args())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scenarios")
	}

	var out *emitter
	if *emit != "" {
		out = newEmitter(*emit)
	}

	failed := 0
	for _, s := range scenarios {
		if err := replay(os.Stdout, log, s, out, *verbose); err != nil {
			log.Error().Err(err).Str("scenario", s.Name).Msg("Scenario failed")
			failed++
		}
	}

	log.Info().Int("total", len(scenarios)).Int("failed", failed).Msg("Replay finished")
	if failed > 0 {
		os.Exit(1)
	}
}

func load(paths []string) ([]*scenario.Scenario, error) {
	var out []*scenario.Scenario
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dir, err := scenario.LoadDir(p)
			if err != nil {
				return nil, err
			}
			out = append(out, dir...)
			continue
		}
		s, err := scenario.Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("no scenario files found")
	}
	return out, nil
}

// emitter picks output file names for recorded scenarios. Names come from
// the source file, and a repeated name gets a numeric suffix so no recording
// overwrites another from the same run.
type emitter struct {
	dir  string
	used map[string]bool
}

func newEmitter(dir string) *emitter {
	return &emitter{dir: dir, used: make(map[string]bool)}
}

func (e *emitter) path(s *scenario.Scenario) string {
	base := filepath.Base(s.Path)
	if s.Path == "" {
		base = filepath.Base(s.Name)
	}
	if base == "." || base == ".." || base == string(filepath.Separator) {
		base = "scenario"
	}

	ext := filepath.Ext(base)
	if ext != ".yaml" && ext != ".yml" {
		ext = ".yaml"
	} else {
		base = strings.TrimSuffix(base, ext)
	}

	name := base + ext
	for n := 2; e.used[name]; n++ {
		name = base + "-" + strconv.Itoa(n) + ext
	}
	e.used[name] = true
	return filepath.Join(e.dir, name)
}

func replay(w io.Writer, log zerolog.Logger, s *scenario.Scenario, emit *emitter, verbose bool) error {
	res, err := s.Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %dx%d, %d shots, %d regions", s.Name, s.Grid.Width, s.Grid.Height, len(s.Shots), len(res.Regions))
	if res.Largest != nil {
		fmt.Fprintf(w, ", largest %s", res.Largest.Rect)
	}
	if len(res.Rejected) > 0 {
		fmt.Fprintf(w, ", %d rejected", len(res.Rejected))
	}
	fmt.Fprintln(w)

	if verbose {
		for _, r := range res.Regions {
			fmt.Fprintf(w, "  #%d %s\n", r.ID, r.Rect)
		}
	}

	if emit != nil {
		s.Record(res)
		data, err := s.Marshal()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(emit.dir, 0o755); err != nil {
			return err
		}
		path := emit.path(s)
		log.Debug().Str("path", path).Msg("Writing recorded scenario")
		return os.WriteFile(path, data, 0o644)
	}

	return s.Verify(res)
}
