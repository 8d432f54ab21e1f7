package study

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/japaniel/vocabull/pkg/config"
	"github.com/japaniel/vocabull/pkg/wordbook"
)

type fakeRecorder struct {
	reviews     []string
	checkpoints int
}

func (f *fakeRecorder) RecordReview(w *wordbook.Word, correct, graduated bool) error {
	tag := "fail"
	if graduated {
		tag = "grad"
	} else if correct {
		tag = "pass"
	}
	f.reviews = append(f.reviews, w.Word+":"+tag)
	return nil
}

func (f *fakeRecorder) RecordCheckpoint(passed, failed, memorized int) error {
	f.checkpoints++
	return nil
}

func newTestSession(t *testing.T, words []*wordbook.Word, cfg config.Config, input string) (*Session, *bytes.Buffer) {
	t.Helper()
	book := &wordbook.Book{Path: filepath.Join(t.TempDir(), "book.txt"), Words: words}
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(input), &out)
	s := NewSession(book, Selection{Set: words, TieBreak: LowestID}, cfg, c, nil)
	return s, &out
}

func animals() []*wordbook.Word {
	return []*wordbook.Word{
		{ID: 0, Word: "cat", Meaning: "feline"},
		{ID: 1, Word: "dog", Meaning: "canine", Sentence: "The dog barks."},
	}
}

func TestGraduationAfterRepeatCount(t *testing.T) {
	cfg := config.Defaults()
	cfg.WindowSize = 1
	words := animals()
	s, _ := newTestSession(t, words, cfg, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	cat := words[0]

	for i := 1; i <= 3; i++ {
		if s.Current() != cat {
			t.Fatalf("round %d: expected cat, got %s", i, s.Current().Word)
		}
		res := s.Grade("cat")
		if !res.Correct {
			t.Fatalf("round %d: answer not accepted", i)
		}
		if res.Graduated != (i == 3) {
			t.Fatalf("round %d: graduated = %v", i, res.Graduated)
		}
		s.Advance()
	}

	if cat.Score != 1 || cat.TmpScore != 0 || cat.TotalPass != 3 {
		t.Fatalf("unexpected cat state: %+v", *cat)
	}
	if s.Window.Contains(cat) {
		t.Fatal("cat should have left the window")
	}
	if s.Current() != words[1] {
		t.Fatalf("window should have been refilled with dog, got %v", ids(s.Window.Words()))
	}
	if s.Stats.Passed != 3 || s.Stats.Memorized != 1 {
		t.Fatalf("unexpected stats: %+v", s.Stats)
	}
}

func TestIncorrectAnswerFloorsStreak(t *testing.T) {
	words := animals()
	s, _ := newTestSession(t, words, config.Defaults(), "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	cat := words[0]

	res := s.Grade("kat")
	if res.Correct || res.Graduated {
		t.Fatalf("unexpected result: %+v", res)
	}
	if cat.TmpScore != 0 || cat.TotalFail != 1 || s.Stats.Failed != 1 {
		t.Fatalf("unexpected state after miss: %+v stats %+v", *cat, s.Stats)
	}

	cat.TmpScore = 2
	s.Grade("Cat")
	if cat.TmpScore != 1 || cat.TotalFail != 2 {
		t.Fatalf("miss should cost one streak point: %+v", *cat)
	}
	if cat.Score != 0 {
		t.Fatalf("score must never drop: %+v", *cat)
	}
}

func TestStreakInvariant(t *testing.T) {
	cfg := config.Defaults()
	cfg.WindowSize = 3
	words := makeWords(0, 0, 0, 0, 0)
	s, _ := newTestSession(t, words, cfg, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		answer := s.Current().Word
		if rng.Intn(3) == 0 {
			answer = "nope"
		}
		s.Grade(answer)
		s.Advance()
		for _, w := range words {
			if w.TmpScore < 0 || w.TmpScore >= cfg.RepeatCount {
				t.Fatalf("step %d: word %d has tmp score %d", i, w.ID, w.TmpScore)
			}
		}
		if s.Window.Len() != cfg.WindowSize {
			t.Fatalf("step %d: window size %d", i, s.Window.Len())
		}
	}
}

func TestGraduationDoesNotSkipNextWord(t *testing.T) {
	cfg := config.Defaults()
	cfg.WindowSize = 3
	words := makeWords(0, 0, 0, 0)
	words[0].TmpScore = 2
	s, _ := newTestSession(t, words, cfg, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if !s.Grade("w0").Graduated {
		t.Fatal("w0 should graduate")
	}
	s.Advance()
	if got := s.Current().ID; got != 1 {
		t.Fatalf("expected w1 next, got w%d", got)
	}
	if fmt.Sprint(ids(s.Window.Words())) != "[1 2 3]" {
		t.Fatalf("unexpected window %v", ids(s.Window.Words()))
	}
}

func TestGraduationAtLastPositionShowsRefill(t *testing.T) {
	cfg := config.Defaults()
	cfg.WindowSize = 3
	words := makeWords(0, 0, 0, 0)
	words[2].TmpScore = 2
	s, _ := newTestSession(t, words, cfg, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Grade("w0")
	s.Advance()
	s.Grade("w1")
	s.Advance()
	if s.Current().ID != 2 {
		t.Fatalf("expected w2 at the end of the window, got w%d", s.Current().ID)
	}
	if !s.Grade("w2").Graduated {
		t.Fatal("w2 should graduate")
	}
	s.Advance()
	if got := s.Current().ID; got != 3 {
		t.Fatalf("expected the refilled w3 next, got w%d", got)
	}
	s.Grade("w3")
	s.Advance()
	if got := s.Current().ID; got != 0 {
		t.Fatalf("expected the next pass to start at w0, got w%d", got)
	}
}

func TestGraduationOfOnlyWordWraps(t *testing.T) {
	cfg := config.Defaults()
	words := makeWords(0)
	words[0].TmpScore = 2
	s, _ := newTestSession(t, words, cfg, "")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.Grade("w0").Graduated {
		t.Fatal("w0 should graduate")
	}
	s.Advance()
	if s.Position() != 0 || s.Current() != words[0] {
		t.Fatalf("single-word set should come back at position 0, got %d", s.Position())
	}
}

func TestRunScriptedSession(t *testing.T) {
	cfg := config.Defaults()
	cfg.WindowSize = 1
	words := animals()
	rec := &fakeRecorder{}

	script := []string{
		"cat", "cat", "cat",
		"cat", "cat", "cat",
		"cat", "cat", "cat",
		"L",
		"x",
		"W",
		"dgo",
		"dgo", "dog", "dog", "dog", "dog",
		"Q",
	}
	s, out := newTestSession(t, words, cfg, strings.Join(script, "\n")+"\n")
	s.Recorder = rec
	if err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	cat, dog := words[0], words[1]
	if cat.Score != 1 || cat.TmpScore != 0 || cat.TotalPass != 3 {
		t.Errorf("unexpected cat: %+v", *cat)
	}
	if dog.TotalFail != 1 || dog.TmpScore != 0 || dog.TotalPass != 0 {
		t.Errorf("unexpected dog: %+v", *dog)
	}

	text := out.String()
	for _, want := range []string{
		"You've memorized the word.  1 word(s) memorized today.",
		"0 cat - 1/0/3",
		"1 dog - 0/0/0",
		"*** what?",
		"Let's practice 4 times.",
		"    > The dog barks.",
		"*** Incorrect.  Try again.",
		"Passed/total: 3/4, memorized 1 word(s) today.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(text, "*** what?") != 2 {
		t.Errorf("W outside debug mode should be unknown; output:\n%s", text)
	}

	data, err := os.ReadFile(s.Book.SavePath())
	if err != nil {
		t.Fatalf("read save: %v", err)
	}
	var saved []wordbook.Word
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("decode save: %v", err)
	}
	if len(saved) != 2 || saved[0].Score != 1 || saved[1].TotalFail != 1 {
		t.Fatalf("unexpected save contents: %+v", saved)
	}

	if got := strings.Join(rec.reviews, ","); got != "cat:pass,cat:pass,cat:grad,dog:fail" {
		t.Errorf("unexpected recorded reviews %s", got)
	}
	if rec.checkpoints != 1 {
		t.Errorf("expected 1 checkpoint, got %d", rec.checkpoints)
	}
}

func TestRunShowWindowInDebug(t *testing.T) {
	cfg := config.Defaults()
	cfg.Debug = true
	words := animals()
	words[0].TotalPass = 2
	s, out := newTestSession(t, words, cfg, "W\nQ\n")
	if err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "0 cat - 0/0/2/0") {
		t.Fatalf("window listing missing:\n%s", out.String())
	}
	if strings.Contains(out.String(), "what?") {
		t.Fatalf("W should be accepted in debug mode:\n%s", out.String())
	}
}

func TestRunEndOfInputSaves(t *testing.T) {
	words := animals()
	s, out := newTestSession(t, words, config.Defaults(), "S\n")
	if err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(out.String(), "*** Saved 2 words") != 2 {
		t.Fatalf("expected one save per S and one at end of input:\n%s", out.String())
	}
	if _, err := os.Stat(s.Book.SavePath()); err != nil {
		t.Fatalf("save file missing: %v", err)
	}
}

func TestRunEmptySet(t *testing.T) {
	s, _ := newTestSession(t, nil, config.Defaults(), "")
	if err := s.Run(); err != ErrNoWords {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		cmd  Command
		isOK bool
	}{
		{"S", CmdSave, true},
		{"Q", CmdSaveQuit, true},
		{"L", CmdList, true},
		{"W", CmdShowWindow, true},
		{"s", CmdUnknown, true},
		{"é", CmdUnknown, true},
		{"", CmdUnknown, false},
		{"ox", CmdUnknown, false},
	}
	for _, tt := range tests {
		cmd, ok := ParseCommand(tt.in)
		if cmd != tt.cmd || ok != tt.isOK {
			t.Errorf("ParseCommand(%q) = %v, %v; want %v, %v", tt.in, cmd, ok, tt.cmd, tt.isOK)
		}
	}
}
