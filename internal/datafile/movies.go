package datafile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"movie-manager/internal/models"
)

// ParseMovies reads title,year,genre,duration,director,imdb,actor,ratings
// lines. Director and actor are resolved by full name; a movie whose people
// cannot be resolved is skipped. The ratings field may be empty or absent.
func ParseMovies(r io.Reader, directors []*models.Director, actors []*models.Actor) ([]*models.Movie, []*LineError, error) {
	return parseMovies(r, directors, actors, nil)
}

// parseMovies is ParseMovies reporting every skipped line to keep.
func parseMovies(r io.Reader, directors []*models.Director, actors []*models.Actor, keep func(Retained)) ([]*models.Movie, []*LineError, error) {
	var (
		movies  []*models.Movie
		skipped []*LineError
	)
	err := scanLines(r, func(n int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		skip := func(err error) {
			skipped = append(skipped, &LineError{File: MoviesFile, Line: n, Text: line, Err: err})
			if keep != nil {
				keep(Retained{Record: len(movies), Season: -1, Text: line})
			}
		}

		parts := splitTrim(line, ",", 8)
		if len(parts) < 7 {
			skip(ErrTooFewFields)
			return
		}
		year, err := strconv.Atoi(parts[1])
		if err != nil {
			skip(fmt.Errorf("%w: year %q", ErrMalformedValue, parts[1]))
			return
		}
		duration, err := strconv.Atoi(parts[3])
		if err != nil {
			skip(fmt.Errorf("%w: duration %q", ErrMalformedValue, parts[3]))
			return
		}
		imdb, err := strconv.ParseFloat(parts[5], 64)
		if err != nil {
			skip(fmt.Errorf("%w: imdb %q", ErrMalformedValue, parts[5]))
			return
		}
		dir, err := models.FindDirector(directors, parts[4])
		if err != nil {
			skip(fmt.Errorf("%w: %v", ErrUnknownPerson, err))
			return
		}
		actor, err := models.FindActor(actors, parts[6])
		if err != nil {
			skip(fmt.Errorf("%w: %v", ErrUnknownPerson, err))
			return
		}
		movie, err := models.NewMovie(parts[0], year, parts[2], duration, dir, imdb, actor)
		if err != nil {
			skip(err)
			return
		}
		if len(parts) == 8 {
			for _, bad := range applyRatings(parts[7], movie.AddUserRating) {
				skipped = append(skipped, &LineError{File: MoviesFile, Line: n, Text: bad.text, Err: bad.err})
			}
		}
		movies = append(movies, movie)
	})
	return movies, skipped, err
}

type ratingError struct {
	text string
	err  error
}

// applyRatings parses uid:rating|uid:rating and feeds each pair to add.
// Pairs that do not parse or are rejected are returned; the rest still apply.
func applyRatings(field string, add func(userID, rating int) error) []ratingError {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var bad []ratingError
	for _, pair := range strings.Split(field, "|") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idRating := splitTrim(pair, ":", -1)
		if len(idRating) != 2 {
			bad = append(bad, ratingError{pair, fmt.Errorf("%w: rating %q", ErrMalformedValue, pair)})
			continue
		}
		id, err1 := strconv.Atoi(idRating[0])
		rating, err2 := strconv.Atoi(idRating[1])
		if err1 != nil || err2 != nil {
			bad = append(bad, ratingError{pair, fmt.Errorf("%w: rating %q", ErrMalformedValue, pair)})
			continue
		}
		if err := add(id, rating); err != nil {
			bad = append(bad, ratingError{pair, err})
		}
	}
	return bad
}
