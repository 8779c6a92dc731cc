package meta

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/vimregex/editor"
)

var errEmptyLiteral = errors.New("empty prefix literal")

// literalPrefilter finds positions where one of the automaton's prefix
// literals occurs. Positions before the reported candidate cannot start a
// match and are skipped without simulating.
type literalPrefilter struct {
	auto *ahocorasick.Automaton
	lits [][]byte

	// maxLen is the longest literal in bytes. An occurrence overlapping the
	// reported one may start up to maxLen bytes before the reported end.
	maxLen int
}

// newLiteralPrefilter builds the automaton. An empty literal means any
// position can start a match, so no prefilter is possible.
func newLiteralPrefilter(lits []string) (*literalPrefilter, error) {
	builder := ahocorasick.NewBuilder()
	p := &literalPrefilter{}
	for _, lit := range lits {
		if lit == "" {
			return nil, errEmptyLiteral
		}
		b := []byte(lit)
		builder.AddPattern(b)
		p.lits = append(p.lits, b)
		p.maxLen = max(p.maxLen, len(b))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.auto = auto
	return p, nil
}

// startsAt reports whether a literal begins at byte offset b.
func (p *literalPrefilter) startsAt(hay []byte, b int) bool {
	for _, lit := range p.lits {
		if bytes.HasPrefix(hay[b:], lit) {
			return true
		}
	}
	return false
}

// haystack is the UTF-8 encoding of a Provider with offset maps in both
// directions.
type haystack struct {
	bytes  []byte
	byteAt []int // character index -> byte offset, len = chars+1
	charAt []int // byte offset -> index of the character containing it, len = bytes+1
}

func newHaystack(text editor.Provider) *haystack {
	n := text.Len()
	h := &haystack{
		bytes:  make([]byte, 0, n),
		byteAt: make([]int, 0, n+1),
	}
	for i := 0; i < n; i++ {
		h.byteAt = append(h.byteAt, len(h.bytes))
		h.bytes = utf8.AppendRune(h.bytes, text.CharAt(i))
	}
	h.byteAt = append(h.byteAt, len(h.bytes))

	h.charAt = make([]int, len(h.bytes)+1)
	for i := 0; i < n; i++ {
		for b := h.byteAt[i]; b < h.byteAt[i+1]; b++ {
			h.charAt[b] = i
		}
	}
	h.charAt[len(h.bytes)] = n
	return h
}

// next returns the first character index >= from where a match may start,
// or -1 when no literal occurs at or after from.
func (p *literalPrefilter) next(h *haystack, from int) int {
	at := h.byteAt[from]
	if at >= len(h.bytes) {
		return -1
	}
	m := p.auto.Find(h.bytes, at)
	if m == nil {
		return -1
	}
	// The automaton may report an occurrence that ends first rather than
	// one that starts first; look for an earlier overlapping start.
	for b := max(at, m.End-p.maxLen); b < m.Start; b++ {
		if p.startsAt(h.bytes, b) {
			return max(from, h.charAt[b])
		}
	}
	return max(from, h.charAt[m.Start])
}
