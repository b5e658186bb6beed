package ui

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/input/key"
)

// paletteRows is the most entries shown at once.
const paletteRows = 5

type paletteEntry struct {
	name  string
	label string
	score int
}

// palette filters commands by a fuzzy query over their labels.
type palette struct {
	open     bool
	query    string
	all      []paletteEntry
	matches  []paletteEntry
	selected int
}

func (p *palette) show(cmds []dispatcher.Command) {
	p.all = p.all[:0]
	for _, c := range cmds {
		label := c.Label
		if label == "" {
			label = c.Name
		}
		p.all = append(p.all, paletteEntry{name: c.Name, label: label})
	}
	p.open = true
	p.query = ""
	p.filter()
}

func (p *palette) close() {
	p.open = false
	p.query = ""
	p.matches = nil
}

func (p *palette) filter() {
	p.matches = p.matches[:0]
	for _, e := range p.all {
		if score, ok := fuzzyScore(p.query, e.label); ok {
			e.score = score
			p.matches = append(p.matches, e)
		}
	}
	sort.SliceStable(p.matches, func(i, j int) bool {
		return p.matches[i].score > p.matches[j].score
	})
	p.selected = 0
}

// handleKey edits the query or moves the selection. It returns the name
// of the chosen command when Enter is pressed on a match.
func (p *palette) handleKey(ev key.Event) (string, bool) {
	switch ev.Key {
	case key.KeyEscape:
		p.close()
	case key.KeyEnter:
		if len(p.matches) == 0 {
			return "", false
		}
		name := p.matches[p.selected].name
		p.close()
		return name, true
	case key.KeyUp:
		if p.selected > 0 {
			p.selected--
		}
	case key.KeyDown:
		if p.selected < len(p.matches)-1 {
			p.selected++
		}
	case key.KeyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
			p.filter()
		}
	case key.KeyRune:
		if ev.IsChar() {
			p.query += string(ev.Rune)
			p.filter()
		}
	}
	return "", false
}

// fuzzyScore matches query as a case-insensitive subsequence of text.
// Consecutive runs, word starts and a match at the start score higher;
// gaps score lower.
func fuzzyScore(query, text string) (int, bool) {
	if query == "" {
		return 0, true
	}
	q := []rune(strings.ToLower(query))
	orig := []rune(text)
	t := []rune(strings.ToLower(text))

	matches := make([]int, 0, len(q))
	for i := 0; i < len(t) && len(matches) < len(q); i++ {
		if t[i] == q[len(matches)] {
			matches = append(matches, i)
		}
	}
	if len(matches) != len(q) {
		return 0, false
	}

	score := 100
	for i, idx := range matches {
		if i > 0 && idx == matches[i-1]+1 {
			score += 20
		}
		if idx == 0 || orig[idx-1] == ' ' || (unicode.IsUpper(orig[idx]) && unicode.IsLower(orig[idx-1])) {
			score += 15
		}
	}
	if matches[0] == 0 {
		score += 25
	}
	score -= matches[len(matches)-1] - matches[0] - len(matches) + 1
	score -= matches[0]
	if score < 1 {
		score = 1
	}
	return score, true
}
