// Package datafile reads and writes the comma/pipe separated text files the
// catalog is stored in.
package datafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	UsersFile     = "Users.txt"
	ActorsFile    = "Actors.txt"
	DirectorsFile = "Directors.txt"
	MoviesFile    = "Movies.txt"
	SeriesFile    = "Series.txt"
)

// Files lists every data file in load order.
var Files = []string{UsersFile, ActorsFile, DirectorsFile, MoviesFile, SeriesFile}

const dateLayout = "2006-01-02"

var (
	ErrNoDataDir      = errors.New("no data directory contains " + UsersFile)
	ErrTooFewFields   = errors.New("not enough fields")
	ErrUnknownPerson  = errors.New("unknown person")
	ErrNoSeason       = errors.New("episode before any season")
	ErrUnencodable    = errors.New("value cannot be stored in a data file")
	ErrMalformedValue = errors.New("malformed value")
)

// LineError describes one skipped line.
type LineError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.File, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Retained is a line of Movies.txt or Series.txt that produced no record.
// Write-back puts it back where it was read so rewriting a file never drops
// what the loader could not use.
type Retained struct {
	// Record is how many records had been read before the line.
	Record int
	// Season is how many seasons the open series had when the line was read,
	// or -1 outside a series. Always -1 in Movies.txt.
	Season int
	Text   string
}

// Report summarises one load.
type Report struct {
	BaseDir  string
	Counts   map[string]int
	Skipped  []*LineError
	Retained map[string][]Retained
}

func newReport(dir string) *Report {
	return &Report{
		BaseDir:  dir,
		Counts:   make(map[string]int),
		Retained: make(map[string][]Retained),
	}
}

func (r *Report) retain(file string) func(Retained) {
	return func(line Retained) {
		r.Retained[file] = append(r.Retained[file], line)
	}
}

// FindBaseDir returns the first candidate directory holding Users.txt.
func FindBaseDir(candidates []string) (string, error) {
	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, UsersFile)); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w (searched %q)", ErrNoDataDir, candidates)
}

// scanLines calls fn for every line of r with its 1-based number.
func scanLines(r io.Reader, fn func(n int, line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		fn(n, strings.TrimRight(sc.Text(), "\r"))
	}
	return sc.Err()
}

func splitTrim(s, sep string, limit int) []string {
	parts := strings.SplitN(s, sep, limit)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func openFile(dir, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return f, nil
}
