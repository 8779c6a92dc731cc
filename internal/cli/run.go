package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/coregx/vimregex"
	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/fixture"
	"github.com/coregx/vimregex/meta"
)

// Run simulates the automaton over the text file with the given config.
// Returns exit code: 0 = match found, 1 = no match, 2 = error.
func Run(cfg Config, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "vimsim",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid arguments", "err", err)
		return 2
	}

	fx, err := fixture.LoadFile(cfg.Automaton)
	if err != nil {
		logger.Error("cannot load automaton", "err", err)
		return 2
	}
	logger.Debug("automaton loaded", "name", fx.Name, "pattern", fx.Pattern, "states", fx.NFA.States())

	data, err := os.ReadFile(cfg.TextFile)
	if err != nil {
		logger.Error("cannot read text", "err", err)
		return 2
	}
	opts, err := cfg.bufferOptions()
	if err != nil {
		logger.Error("invalid editor state", "err", err)
		return 2
	}
	text := editor.NewBuffer(string(data), opts...)

	config, err := cfg.engineConfig()
	if err != nil {
		logger.Error("invalid strategy", "err", err)
		return 2
	}
	config.Logger = logger
	re, err := vimregex.New(fx.NFA, vimregex.WithConfig(config), vimregex.WithIgnoreCase(cfg.IgnoreCase))
	if err != nil {
		logger.Error("cannot create engine", "err", err)
		return 2
	}

	var matches []*meta.Match
	switch {
	case cfg.Start >= 0:
		if cfg.Start > text.Len() {
			logger.Error("start offset out of range", "start", cfg.Start, "len", text.Len())
			return 2
		}
		m, err := re.MatchAt(text, cfg.Start)
		if err != nil {
			logger.Error("match undecided", "start", cfg.Start, "strategy", config.Strategy, "err", err)
			return 2
		}
		if m != nil {
			matches = append(matches, m)
		}
	case cfg.All:
		matches = re.FindAll(text)
	default:
		if m := re.Find(text, 0); m != nil {
			matches = append(matches, m)
		}
	}

	styles := stylesFor(cfg.Color, stdout)
	for _, m := range matches {
		printMatch(stdout, styles, m)
	}

	stats := re.Stats()
	logger.Debug("done",
		"matches", len(matches),
		"fast", stats.FastSimulations,
		"fallbacks", stats.Fallbacks,
		"backtrack", stats.BacktrackSimulations,
		"prefilter_skips", stats.PrefilterSkips,
		"undecided", stats.Undecided)

	if stats.Undecided > 0 {
		logger.Warn("some start positions were undecided and counted as no match",
			"undecided", stats.Undecided, "strategy", config.Strategy)
	}

	if len(matches) == 0 {
		return 1
	}
	return 0
}
