package datafile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"movie-manager/internal/models"
)

// CheckField reports whether s can be written into a data file field
// without breaking the line format.
func CheckField(name, s string) error {
	if strings.ContainsAny(s, ",|\r\n") {
		return fmt.Errorf("%w: %s %q contains a separator", ErrUnencodable, name, s)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatRatings(r models.Ratings) string {
	pairs := make([]string, 0, len(r))
	for _, id := range r.UserIDs() {
		pairs = append(pairs, fmt.Sprintf("%d:%d", id, r[id]))
	}
	return strings.Join(pairs, "|")
}

func writeLines(w io.Writer, lines []Retained) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.Text); err != nil {
			return err
		}
	}
	return nil
}

// retainedAt returns, in file order, the retained lines read after record
// records whose season position satisfies match.
func retainedAt(retained []Retained, record int, match func(season int) bool) []Retained {
	var out []Retained
	for _, l := range retained {
		if l.Record == record && match(l.Season) {
			out = append(out, l)
		}
	}
	return out
}

func anySeason(int) bool { return true }

// EncodeMovies writes movies in the Movies.txt format. Each retained line is
// written in front of the movie that followed it when the file was read.
func EncodeMovies(w io.Writer, movies []*models.Movie, retained []Retained) error {
	for i, m := range movies {
		if err := writeLines(w, retainedAt(retained, i, anySeason)); err != nil {
			return err
		}
		for _, f := range [][2]string{{"title", m.Title}, {"genre", m.Genre}} {
			if err := CheckField(f[0], f[1]); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s,%d,%s,%d,%s,%s,%s,%s\n",
			m.Title, m.Year, m.Genre, m.Duration,
			m.Director.FullName(), formatFloat(m.IMDbRating()), m.LeadActor.FullName(),
			formatRatings(m.UserRatings()))
		if err != nil {
			return err
		}
	}
	return writeLines(w, trailing(retained, len(movies)))
}

// trailing returns the retained lines read after the last of n records.
func trailing(retained []Retained, n int) []Retained {
	var out []Retained
	for _, l := range retained {
		if l.Record >= n {
			out = append(out, l)
		}
	}
	return out
}

// EncodeSeries writes series in the sectioned Series.txt format. Retained
// lines go back into the series and season they were read in; lines from
// seasons that no longer exist end the series block.
func EncodeSeries(w io.Writer, list []*models.Series, retained []Retained) error {
	outside := func(season int) bool { return season < 0 }
	if err := writeLines(w, retainedAt(retained, 0, anySeason)); err != nil {
		return err
	}
	for i, s := range list {
		for _, f := range [][2]string{{"title", s.Title}, {"genre", s.Genre}} {
			if err := CheckField(f[0], f[1]); err != nil {
				return err
			}
		}
		line := fmt.Sprintf("%s %s, %s", seriesPrefix, s.Title, s.Genre)
		if r := formatRatings(s.UserRatings()); r != "" {
			line += ", " + r
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		// lines read inside this series carry the next record number
		record := i + 1
		inSeason := func(n int) []Retained {
			return retainedAt(retained, record, func(season int) bool { return season == n })
		}
		if err := writeLines(w, inSeason(0)); err != nil {
			return err
		}
		for k, season := range s.Seasons {
			if _, err := fmt.Fprintf(w, "%s %d, %d:\n", seasonPrefix, season.Number, season.Year); err != nil {
				return err
			}
			for _, ep := range season.Episodes {
				_, err := fmt.Fprintf(w, "%d, %s, %s, %s\n",
					ep.Duration, ep.Director.FullName(), formatFloat(ep.IMDbRating()), ep.LeadActor.FullName())
				if err != nil {
					return err
				}
			}
			if err := writeLines(w, inSeason(k+1)); err != nil {
				return err
			}
		}
		gone := retainedAt(retained, record, func(season int) bool { return season > len(s.Seasons) })
		if err := writeLines(w, gone); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := writeLines(w, retainedAt(retained, record, outside)); err != nil {
			return err
		}
	}
	return writeLines(w, trailing(retained, len(list)+1))
}

// WriteMovies replaces Movies.txt in dir.
func WriteMovies(dir string, movies []*models.Movie, retained []Retained) error {
	var buf bytes.Buffer
	if err := EncodeMovies(&buf, movies, retained); err != nil {
		return err
	}
	return WriteFileAtomic(dir, MoviesFile, buf.Bytes())
}

// WriteSeries replaces Series.txt in dir.
func WriteSeries(dir string, list []*models.Series, retained []Retained) error {
	var buf bytes.Buffer
	if err := EncodeSeries(&buf, list, retained); err != nil {
		return err
	}
	return WriteFileAtomic(dir, SeriesFile, buf.Bytes())
}

// WriteFileAtomic writes data to dir/name through a temporary file in the same
// directory followed by a rename, so readers never see a partial file. The
// replaced file keeps its permissions; a new file gets 0644.
func WriteFileAtomic(dir, name string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
