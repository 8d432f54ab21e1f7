package study

import (
	"math/rand"
	"sort"

	"github.com/japaniel/vocabull/pkg/wordbook"
)

// Window is the small rotating group of words currently being quizzed. It
// holds references into the book; removing a word from the window leaves it in
// the learning set.
type Window struct {
	words    []*wordbook.Word
	size     int
	tieBreak TieBreak
	rng      *rand.Rand
}

// NewWindow creates an empty window of the given target size. rng is only
// consulted in Random tie-break mode and may be nil otherwise.
func NewWindow(size int, tieBreak TieBreak, rng *rand.Rand) *Window {
	if tieBreak == Random && rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Window{size: size, tieBreak: tieBreak, rng: rng}
}

// Len returns the number of words in the window.
func (w *Window) Len() int { return len(w.words) }

// At returns the word at position i.
func (w *Window) At(i int) *wordbook.Word { return w.words[i] }

// Words returns a copy of the window contents in quiz order.
func (w *Window) Words() []*wordbook.Word {
	return append([]*wordbook.Word(nil), w.words...)
}

// Contains reports whether word is in the window.
func (w *Window) Contains(word *wordbook.Word) bool {
	for _, x := range w.words {
		if x == word {
			return true
		}
	}
	return false
}

// Remove drops the word at position i, shifting later words down by one.
func (w *Window) Remove(i int) {
	copy(w.words[i:], w.words[i+1:])
	w.words[len(w.words)-1] = nil
	w.words = w.words[:len(w.words)-1]
}

// Fill tops the window up from set, lowest score first. Ties go to the lowest
// id, or to a random tied candidate in Random mode. The window stays short
// when set runs out of candidates.
func (w *Window) Fill(set []*wordbook.Word) {
	candidates := make([]*wordbook.Word, 0, len(set))
	for _, word := range set {
		if !w.Contains(word) {
			candidates = append(candidates, word)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score < candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})

	for len(w.words) < w.size && len(candidates) > 0 {
		idx := 0
		if w.tieBreak == Random {
			// Candidates are sorted, so the minimum-score ties form a prefix.
			tied := 1
			for tied < len(candidates) && candidates[tied].Score == candidates[0].Score {
				tied++
			}
			idx = w.rng.Intn(tied)
		}
		w.words = append(w.words, candidates[idx])
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
}
