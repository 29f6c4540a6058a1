package datafile

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"movie-manager/internal/models"
)

const (
	seriesPrefix = "SERIES:"
	seasonPrefix = "SEASON:"
	seriesHeader = "(τίτλος, είδος, βαθμολογία χρηστών)"
)

var countWithNote = regexp.MustCompile(`^\d+\s*\(.*\)$`)

// ParseSeries reads the sectioned Series.txt format:
//
//	SERIES: title, genre, uid:rating|uid:rating
//	SEASON: number, year:
//	duration, director, imdb, actor
//
// Episodes attach to the most recent season of the most recent series.
func ParseSeries(r io.Reader, directors []*models.Director, actors []*models.Actor) ([]*models.Series, []*LineError, error) {
	return parseSeries(r, directors, actors, nil)
}

// parseSeries is ParseSeries reporting every non-blank line that produced
// no series, season or episode to keep.
func parseSeries(r io.Reader, directors []*models.Director, actors []*models.Actor, keep func(Retained)) ([]*models.Series, []*LineError, error) {
	var (
		list    []*models.Series
		skipped []*LineError
		current *models.Series
	)
	err := scanLines(r, func(n int, raw string) {
		line := strings.TrimSpace(raw)
		retain := func() {
			if keep == nil || line == "" {
				return
			}
			season := -1
			if current != nil {
				season = len(current.Seasons)
			}
			keep(Retained{Record: len(list), Season: season, Text: raw})
		}
		skip := func(err error) {
			skipped = append(skipped, &LineError{File: SeriesFile, Line: n, Text: raw, Err: err})
			retain()
		}

		switch {
		case isSeriesNoise(line):
			retain()
			return

		case strings.HasPrefix(line, seriesPrefix):
			parts := splitTrim(line[len(seriesPrefix):], ",", 3)
			if len(parts) < 2 || parts[0] == "" {
				current = nil
				skip(ErrTooFewFields)
				return
			}
			current = models.NewSeries(parts[0], parts[1])
			if len(parts) == 3 {
				for _, bad := range applyRatings(parts[2], current.AddUserRating) {
					skipped = append(skipped, &LineError{File: SeriesFile, Line: n, Text: bad.text, Err: bad.err})
				}
			}
			list = append(list, current)

		case strings.HasPrefix(line, seasonPrefix):
			if current == nil {
				retain()
				return
			}
			season, err := parseSeason(line[len(seasonPrefix):], len(current.Seasons)+1)
			if err != nil {
				skip(err)
				return
			}
			current.AddSeason(season)

		case current != nil && unicode.IsDigit(rune(line[0])):
			ep, err := parseEpisode(line, directors, actors)
			if err != nil {
				skip(err)
				return
			}
			season := current.LastSeason()
			if season == nil {
				skip(ErrNoSeason)
				return
			}
			season.AddEpisode(ep)

		default:
			retain()
		}
	})
	return list, skipped, err
}

func isSeriesNoise(line string) bool {
	if line == "" || strings.HasPrefix(line, "#") || strings.Contains(line, seriesHeader) {
		return true
	}
	if countWithNote.MatchString(line) {
		return true
	}
	_, err := strconv.Atoi(line)
	return err == nil
}

// parseSeason reads "number, year:". A missing or non-numeric number falls
// back to next.
func parseSeason(rest string, next int) (*models.Season, error) {
	parts := splitTrim(rest, ",", -1)
	if len(parts) < 2 {
		return nil, ErrTooFewFields
	}
	yearText := strings.TrimSpace(strings.ReplaceAll(parts[1], ":", ""))
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return nil, fmt.Errorf("%w: season year %q", ErrMalformedValue, yearText)
	}
	number, err := strconv.Atoi(parts[0])
	if err != nil || number < 1 {
		number = next
	}
	return models.NewSeason(number, year), nil
}

func parseEpisode(line string, directors []*models.Director, actors []*models.Actor) (*models.Episode, error) {
	parts := splitTrim(line, ",", 4)
	if len(parts) < 4 {
		return nil, ErrTooFewFields
	}
	duration, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: duration %q", ErrMalformedValue, parts[0])
	}
	imdb, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: imdb %q", ErrMalformedValue, parts[2])
	}
	dir, err := models.FindDirector(directors, parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPerson, err)
	}
	actor, err := models.FindActor(actors, parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownPerson, err)
	}
	return models.NewEpisode(duration, dir, imdb, actor)
}
