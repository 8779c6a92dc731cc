package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/coregx/vimregex/editor"
	"github.com/coregx/vimregex/meta"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// ParseColorMode converts a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Config holds all configuration for one vimsim run.
type Config struct {
	Automaton  string
	TextFile   string
	Start      int // -1 means search instead of an anchored match
	IgnoreCase bool
	All        bool
	Cursors    []int
	Marks      []string // name=offset
	Selection  string   // start:end
	Strategy   string
	MaxMatches int
	NoWrap     bool
	Color      ColorMode
	Verbose    bool
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Automaton == "" {
		return fmt.Errorf("no automaton specified")
	}
	if c.TextFile == "" {
		return fmt.Errorf("no text file specified")
	}
	if c.All && c.Start >= 0 {
		return fmt.Errorf("cannot use --all and --start together")
	}
	if c.MaxMatches < 0 {
		return fmt.Errorf("invalid max matches: %d", c.MaxMatches)
	}
	for _, off := range c.Cursors {
		if off < 0 {
			return fmt.Errorf("invalid cursor offset: %d", off)
		}
	}
	if _, err := meta.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := c.bufferOptions(); err != nil {
		return err
	}
	return nil
}

// engineConfig returns the dispatcher configuration the flags describe.
func (c *Config) engineConfig() (meta.Config, error) {
	strategy, err := meta.ParseStrategy(c.Strategy)
	if err != nil {
		return meta.Config{}, err
	}
	config := meta.DefaultConfig()
	config.Strategy = strategy
	config.MaxMatches = c.MaxMatches
	config.WrapScan = !c.NoWrap
	return config, nil
}

// bufferOptions converts the editor state flags.
func (c *Config) bufferOptions() ([]editor.Option, error) {
	var opts []editor.Option
	if len(c.Cursors) > 0 {
		opts = append(opts, editor.WithCursors(c.Cursors...))
	}
	for _, m := range c.Marks {
		name, off, err := parseMark(m)
		if err != nil {
			return nil, err
		}
		opts = append(opts, editor.WithMark(name, off))
	}
	if c.Selection != "" {
		start, end, err := parseSelection(c.Selection)
		if err != nil {
			return nil, err
		}
		opts = append(opts, editor.WithSelection(start, end))
	}
	return opts, nil
}

func parseMark(s string) (rune, int, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || utf8.RuneCountInString(name) != 1 {
		return 0, 0, fmt.Errorf("invalid mark %q (want name=offset)", s)
	}
	off, err := strconv.Atoi(value)
	if err != nil || off < 0 {
		return 0, 0, fmt.Errorf("invalid mark offset in %q", s)
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r, off, nil
}

func parseSelection(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid selection %q (want start:end)", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil || start < 0 {
		return 0, 0, fmt.Errorf("invalid selection start in %q", s)
	}
	end, err := strconv.Atoi(b)
	if err != nil || end < 0 {
		return 0, 0, fmt.Errorf("invalid selection end in %q", s)
	}
	return start, end, nil
}
