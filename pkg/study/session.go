package study

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/japaniel/vocabull/pkg/config"
	"github.com/japaniel/vocabull/pkg/wordbook"
)

// ErrNoWords is returned when the learning set has nothing to quiz.
var ErrNoWords = errors.New("study: no words to study")

const (
	commandHelp = "    *** S: save, L: show learning set, Q: save and quit"
	// confirmCount is how many extra times a correct answer is retyped.
	confirmCount = 2
)

// Stats counts today's answers.
type Stats struct {
	Passed    int
	Failed    int
	Memorized int
}

// Total returns the number of graded answers.
func (s Stats) Total() int { return s.Passed + s.Failed }

// Recorder receives study events for history keeping. Implementations must
// not block for long; failures are logged and otherwise ignored.
type Recorder interface {
	RecordReview(w *wordbook.Word, correct, graduated bool) error
	RecordCheckpoint(passed, failed, memorized int) error
}

// Result describes one graded answer.
type Result struct {
	Word      *wordbook.Word
	Correct   bool
	Graduated bool
}

// Session runs the quiz loop over one learning set.
type Session struct {
	Book    *wordbook.Book
	Set     []*wordbook.Word
	Window  *Window
	Config  config.Config
	Console *Console
	// Recorder is optional.
	Recorder Recorder
	// Logger is used for non-fatal problems. nil means no logging.
	Logger *log.Logger
	Stats  Stats

	pos  int
	hold bool // the word under pos was replaced by a graduation; don't advance
}

// NewSession prepares a session; the window is filled when Run starts.
func NewSession(book *wordbook.Book, sel Selection, cfg config.Config, c *Console, rng *rand.Rand) *Session {
	return &Session{
		Book:    book,
		Set:     sel.Set,
		Window:  NewWindow(cfg.WindowSize, sel.TieBreak, rng),
		Config:  cfg,
		Console: c,
	}
}

// Current returns the word being asked.
func (s *Session) Current() *wordbook.Word { return s.Window.At(s.pos) }

// Position returns the index of the current word in the window.
func (s *Session) Position() int { return s.pos }

// Start fills the window. It is called by Run and only needs calling directly
// when driving the session through Grade.
func (s *Session) Start() error {
	s.Window.Fill(s.Set)
	if s.Window.Len() == 0 {
		return ErrNoWords
	}
	s.pos = 0
	return nil
}

// Run quizzes until the user saves and quits or the input ends. End of input
// saves like the quit command.
func (s *Session) Run() error {
	if err := s.Start(); err != nil {
		return err
	}
	for {
		s.Console.Println(commandHelp)
		w := s.Current()
		line, err := s.Console.Prompt(fmt.Sprintf("    %s? ", w.Meaning))
		if errors.Is(err, io.EOF) {
			return s.Save()
		}
		if err != nil {
			return err
		}
		input := strings.TrimRight(line, " \t\r\n")

		if cmd, ok := ParseCommand(input); ok {
			quit, err := s.Execute(cmd)
			if err != nil || quit {
				return err
			}
			continue
		}

		res := s.Grade(input)
		if err := s.practice(res); err != nil {
			if errors.Is(err, io.EOF) {
				return s.Save()
			}
			return err
		}
		s.Console.Println("---")
		s.Advance()
	}
}

// Grade scores input against the current word. A correct answer extends the
// streak and, once the streak reaches the repeat count, memorizes the word:
// its score goes up, the streak restarts and the word leaves the window,
// which is refilled at once. A wrong answer shortens the streak, never below
// zero.
func (s *Session) Grade(input string) Result {
	w := s.Current()
	res := Result{Word: w, Correct: input == w.Word}

	if res.Correct {
		w.TotalPass++
		w.TmpScore++
		s.Stats.Passed++
		if w.TmpScore >= s.Config.RepeatCount {
			w.TmpScore = 0
			w.Score++
			s.Stats.Memorized++
			res.Graduated = true

			// The refill lands at the end, so a graduation at the last
			// position is followed by the new word.
			s.Window.Remove(s.pos)
			s.Window.Fill(s.Set)
			if s.pos >= s.Window.Len() {
				s.pos = 0
			}
			s.hold = true
		}
	} else {
		if w.TmpScore > 0 {
			w.TmpScore--
		}
		w.TotalFail++
		s.Stats.Failed++
	}

	if s.Recorder != nil {
		if err := s.Recorder.RecordReview(w, res.Correct, res.Graduated); err != nil {
			s.logf("Warning: failed to record review of %q: %v", w.Word, err)
		}
	}
	return res
}

// Advance moves to the next word in the window, wrapping to the start. After
// a graduation the next word has already shifted under the pointer, so the
// pointer stays put.
func (s *Session) Advance() {
	if s.hold {
		s.hold = false
	} else {
		s.pos++
	}
	if s.pos >= s.Window.Len() {
		s.pos = 0
	}
}

func (s *Session) practice(res Result) error {
	if res.Correct {
		s.Console.Println("    *** Correct.  Practice a little more.")
		if err := s.repeat(res.Word, confirmCount); err != nil {
			return err
		}
		if res.Graduated {
			s.Console.Printf("    *** You've memorized the word.  %d word(s) memorized today.\n", s.Stats.Memorized)
		}
		return nil
	}
	s.Console.Printf("    *** Incorrect.  Let's practice %d times.\n", s.Config.PenaltyCount)
	return s.repeat(res.Word, s.Config.PenaltyCount)
}

// repeat shows the word and has the user type it count times. Mistakes only
// ask again; no counters change here.
func (s *Session) repeat(w *wordbook.Word, count int) error {
	if w.Sentence != "" {
		s.Console.Printf("    > %s\n", w.Sentence)
	}
	s.Console.Printf("    %s: %s\n", w.Meaning, w.Word)
	for done := 0; done < count; {
		typed, err := s.Console.Prompt(fmt.Sprintf("%d/%d %s? ", done+1, count, w.Meaning))
		if err != nil {
			return err
		}
		if typed == w.Word {
			done++
		} else {
			s.Console.Println("    *** Incorrect.  Try again.")
		}
	}
	return nil
}

// Execute runs a command and reports whether the session should end.
func (s *Session) Execute(cmd Command) (bool, error) {
	switch cmd {
	case CmdSave:
		return false, s.Save()
	case CmdSaveQuit:
		return true, s.Save()
	case CmdList:
		for _, w := range s.Set {
			s.Console.Printf("%d %s - %d/%d/%d\n", w.ID, w.Word, w.Score, w.TotalFail, w.Attempts())
		}
		return false, nil
	case CmdShowWindow:
		if s.Config.Debug {
			for _, w := range s.Window.Words() {
				s.Console.Printf("%d %s - %d/%d/%d/%d\n", w.ID, w.Word, w.TmpScore, w.Score, w.TotalPass, w.TotalFail)
			}
			return false, nil
		}
	}
	s.Console.Println("    *** what?")
	return false, nil
}

// Save persists the book and reports today's progress.
func (s *Session) Save() error {
	if err := s.Book.Save(); err != nil {
		return err
	}
	s.Console.Printf("    *** Saved %d words to %s\n", s.Book.Len(), s.Book.SavePath())
	s.Console.Printf("        Passed/total: %d/%d, memorized %d word(s) today.\n",
		s.Stats.Passed, s.Stats.Total(), s.Stats.Memorized)

	if s.Recorder != nil {
		if err := s.Recorder.RecordCheckpoint(s.Stats.Passed, s.Stats.Failed, s.Stats.Memorized); err != nil {
			s.logf("Warning: failed to record checkpoint: %v", err)
		}
	}
	return nil
}

func (s *Session) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
