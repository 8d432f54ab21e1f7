package dictionary

import (
	"sort"
	"strconv"
	"strings"
)

// Index looks up dictionary entries by written form. It is read-only after
// construction and safe for concurrent use.
type Index struct {
	byText map[string][]JMdictEntry
}

// NewIndex indexes entries by every kanji and kana form, with kana keys
// normalized to hiragana.
func NewIndex(entries []JMdictEntry) *Index {
	idx := make(map[string][]JMdictEntry)
	for _, e := range entries {
		seen := make(map[string]bool)
		add := func(key string) {
			if key == "" || seen[key] {
				return
			}
			seen[key] = true
			idx[key] = append(idx[key], e)
		}
		for _, k := range e.Kanji {
			add(k.Text)
		}
		for _, k := range e.Kana {
			add(ToHiragana(k.Text))
		}
	}
	return &Index{byText: idx}
}

// Lookup returns the entries written as word, ordered by entry id. Katakana
// input also matches hiragana readings.
func (ix *Index) Lookup(word string) []JMdictEntry {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	found := make(map[string]JMdictEntry)
	for _, key := range []string{word, ToHiragana(word)} {
		for _, e := range ix.byText[key] {
			found[e.Id] = e
		}
	}
	out := make([]JMdictEntry, 0, len(found))
	for _, e := range found {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].Id, out[j].Id) })
	return out
}

// idLess orders JMdict ids numerically, falling back to string order for
// ids that are not numbers.
func idLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Gloss returns a short meaning for word: the first gloss of each of the
// first max senses of the best entry, joined by "; ". It returns "" when
// the word is unknown.
func (ix *Index) Gloss(word string, max int) string {
	matches := ix.Lookup(word)
	if len(matches) == 0 {
		return ""
	}
	var parts []string
	for _, s := range matches[0].Sense {
		if len(parts) == max {
			break
		}
		for _, g := range s.Gloss {
			if g.Lang != "" && g.Lang != "eng" {
				continue
			}
			parts = append(parts, g.Text)
			break
		}
	}
	return strings.Join(parts, "; ")
}

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
