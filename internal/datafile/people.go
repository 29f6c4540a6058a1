package datafile

import (
	"fmt"
	"io"
	"strings"
	"time"

	"movie-manager/internal/models"
)

// ParseUsers reads first,last,username,email lines. Ids are assigned 1..n in
// file order.
func ParseUsers(r io.Reader) ([]*models.User, []*LineError, error) {
	var (
		users   []*models.User
		skipped []*LineError
	)
	err := scanLines(r, func(n int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		parts := splitTrim(line, ",", -1)
		if len(parts) < 4 {
			skipped = append(skipped, &LineError{File: UsersFile, Line: n, Text: line, Err: ErrTooFewFields})
			return
		}
		u, err := models.NewUser(parts[0], parts[1], parts[2], parts[3])
		if err != nil {
			skipped = append(skipped, &LineError{File: UsersFile, Line: n, Text: line, Err: err})
			return
		}
		u.ID = len(users) + 1
		users = append(users, u)
	})
	return users, skipped, err
}

// ParseActors reads first,last,YYYY-MM-DD,gender,race lines.
func ParseActors(r io.Reader) ([]*models.Actor, []*LineError, error) {
	var (
		actors  []*models.Actor
		skipped []*LineError
	)
	err := scanLines(r, func(n int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		parts := splitTrim(line, ",", -1)
		if len(parts) < 5 {
			skipped = append(skipped, &LineError{File: ActorsFile, Line: n, Text: line, Err: ErrTooFewFields})
			return
		}
		birth, gender, err := parseBirthAndGender(parts[2], parts[3])
		if err != nil {
			skipped = append(skipped, &LineError{File: ActorsFile, Line: n, Text: line, Err: err})
			return
		}
		actors = append(actors, models.NewActor(parts[0], parts[1], birth, gender, parts[4]))
	})
	return actors, skipped, err
}

// ParseDirectors reads first,last,YYYY-MM-DD,gender,work|work|... lines.
func ParseDirectors(r io.Reader) ([]*models.Director, []*LineError, error) {
	var (
		directors []*models.Director
		skipped   []*LineError
	)
	err := scanLines(r, func(n int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}
		parts := splitTrim(line, ",", 5)
		if len(parts) < 5 {
			skipped = append(skipped, &LineError{File: DirectorsFile, Line: n, Text: line, Err: ErrTooFewFields})
			return
		}
		birth, gender, err := parseBirthAndGender(parts[2], parts[3])
		if err != nil {
			skipped = append(skipped, &LineError{File: DirectorsFile, Line: n, Text: line, Err: err})
			return
		}
		var works []string
		for _, w := range strings.Split(parts[4], "|") {
			if w = strings.TrimSpace(w); w != "" {
				works = append(works, w)
			}
		}
		directors = append(directors, models.NewDirector(parts[0], parts[1], birth, gender, works))
	})
	return directors, skipped, err
}

func parseBirthAndGender(date, gender string) (time.Time, models.Gender, error) {
	birth, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: birth date %q", ErrMalformedValue, date)
	}
	g, err := models.ParseGender(gender)
	if err != nil {
		return time.Time{}, 0, err
	}
	return birth, g, nil
}

type fallbackDirector struct {
	first, last string
	birth       time.Time
	works       []string
}

// Movies.txt references these directors but Directors.txt does not list them.
var fallbackDirectors = []fallbackDirector{
	{"Frank", "Darabont", time.Date(1959, 1, 28, 0, 0, 0, 0, time.UTC), []string{"The Shawshank Redemption", "The Green Mile"}},
	{"Damien", "Chazelle", time.Date(1985, 1, 19, 0, 0, 0, 0, time.UTC), []string{"La La Land", "Whiplash"}},
	{"Brett", "Ratner", time.Date(1969, 3, 28, 0, 0, 0, 0, time.UTC), []string{"Rush Hour", "X-Men: The Last Stand"}},
}

// AddFallbackDirectors appends the fallback directors that are missing from
// directors and returns the extended slice.
func AddFallbackDirectors(directors []*models.Director) []*models.Director {
	for _, fd := range fallbackDirectors {
		if _, err := models.FindDirector(directors, fd.first+" "+fd.last); err == nil {
			continue
		}
		directors = append(directors, models.NewDirector(fd.first, fd.last, fd.birth, models.Male, fd.works))
	}
	return directors
}
