package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/japaniel/vocabull/pkg/config"
	"github.com/japaniel/vocabull/pkg/db"
	"github.com/japaniel/vocabull/pkg/study"
	"github.com/japaniel/vocabull/pkg/wordbook"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <wordfile>\n", filepath.Base(os.Args[0]))
		return
	}
	bookPath := os.Args[1]

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("    *** VocaBull - Help your vocabulary building ***")
	book, err := wordbook.Load(bookPath)
	if err != nil {
		log.Fatalf("Failed to load word book: %v", err)
	}
	fmt.Printf("    %d words loaded.\n", book.Len())

	logger := log.New(os.Stderr, "vocabull: ", log.LstdFlags)
	var conn *sql.DB
	if cfg.History {
		conn, err = openHistory(bookPath, logger)
		if err != nil {
			logger.Printf("Warning: study history disabled: %v", err)
		} else {
			defer conn.Close()
		}
	}

	console := study.NewConsole(os.Stdin, os.Stdout)
	sel, err := study.SelectSet(book.Words, cfg.ChunkSize, console)
	if err == io.EOF {
		return
	}
	if err != nil {
		log.Fatalf("Failed to select learning set: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session := study.NewSession(book, sel, cfg, console, rng)
	session.Logger = logger

	if conn != nil {
		rec, err := db.NewRecorder(conn, bookPath)
		if err != nil {
			logger.Printf("Warning: failed to start history session: %v", err)
		} else {
			session.Recorder = rec
		}
	}

	err = session.Run()
	if errors.Is(err, study.ErrNoWords) {
		fmt.Println("    No words to study.")
		return
	}
	if err != nil {
		log.Fatalf("Study session failed: %v", err)
	}
}

// openHistory opens the sidecar history database and prints the previous
// session for the book, if any.
func openHistory(bookPath string, logger *log.Logger) (*sql.DB, error) {
	path := strings.TrimSuffix(bookPath, filepath.Ext(bookPath)) + ".db"
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	last, ok, err := db.LastSession(conn, bookPath)
	if err != nil {
		logger.Printf("Warning: failed to read last session: %v", err)
		return conn, nil
	}
	if !ok {
		return conn, nil
	}
	fmt.Printf("    Last session %s: passed/total %d/%d, memorized %d word(s).\n",
		last.EndedAt.Format("2006-01-02 15:04"), last.Passed, last.Passed+last.Failed, last.Memorized)

	missed, err := db.MissedWords(conn, last.ID)
	if err != nil {
		logger.Printf("Warning: failed to read missed words: %v", err)
		return conn, nil
	}
	if len(missed) > 0 {
		parts := make([]string, len(missed))
		for i, st := range missed {
			parts[i] = fmt.Sprintf("%s %d/%d", st.Word, st.Passed, st.Passed+st.Failed)
		}
		fmt.Printf("    Missed last time (passed/total): %s\n", strings.Join(parts, ", "))
	}
	return conn, nil
}
