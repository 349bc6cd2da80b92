package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Query is an editable search string with a rune cursor.
type Query struct {
	Text   string
	Cursor int
}

// Set replaces the text and clamps cursor into range.
func (q *Query) Set(text string, cursor int) {
	q.Text = text
	q.Cursor = cursor
	q.Cursor = q.Pos()
}

// Pos returns the rune offset of the cursor.
func (q *Query) Pos() int {
	runes := []rune(q.Text)
	if q.Cursor < 0 {
		return 0
	}
	if q.Cursor > len(runes) {
		return len(runes)
	}
	return q.Cursor
}

// Insert inserts text at the cursor.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	q.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (q *Query) DeleteRuneBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	q.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (q *Query) DeleteWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	q.Set(string(updated), i)
	return true
}

// MoveStart moves the cursor to the start.
func (q *Query) MoveStart() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (q *Query) MoveEnd() bool {
	end := len([]rune(q.Text))
	if q.Pos() == end {
		return false
	}
	q.Cursor = end
	return true
}

// MoveWordBackward moves the cursor one word backward.
func (q *Query) MoveWordBackward() bool {
	pos := q.Pos()
	i := wordStart([]rune(q.Text), pos)
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

// MoveWordForward moves the cursor one word forward.
func (q *Query) MoveWordForward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

// MoveRuneBackward moves the cursor one rune backward.
func (q *Query) MoveRuneBackward() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = q.Pos() - 1
	return true
}

// MoveRuneForward moves the cursor one rune forward.
func (q *Query) MoveRuneForward() bool {
	if q.Pos() >= len([]rune(q.Text)) {
		return false
	}
	q.Cursor = q.Pos() + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// Candidate is one searchable row: Key is the ticker symbol, Label the
// company name.
type Candidate struct {
	Key   string
	Label string
}

// BestMatchIndex returns the index of the best candidate for query, or -1
// when nothing matches. Exact matches beat prefixes, prefixes beat
// substrings, and fuzzy matches on the label come last.
func BestMatchIndex(cands []Candidate, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(cands) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, c := range cands {
		if strings.EqualFold(c.Key, trimmed) || strings.EqualFold(c.Label, trimmed) {
			return i
		}
	}
	for i, c := range cands {
		if strings.HasPrefix(strings.ToLower(c.Key), lower) {
			return i
		}
	}
	for i, c := range cands {
		if strings.HasPrefix(strings.ToLower(c.Label), lower) {
			return i
		}
	}
	for i, c := range cands {
		if strings.Contains(strings.ToLower(c.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(cands))
	for i, c := range cands {
		labels[i] = c.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(cands) {
		return -1
	}
	return best.OriginalIndex
}
