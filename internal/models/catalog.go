package models

import (
	"fmt"
	"sync"
)

// Snapshot is a full set of loaded records. The loader builds one and the
// catalog swaps it in as a unit.
type Snapshot struct {
	Users     []*User
	Actors    []*Actor
	Directors []*Director
	Movies    []*Movie
	Series    []*Series
}

// CatalogStats summarises the catalog for logs and the status bar.
type CatalogStats struct {
	Users     int
	Actors    int
	Directors int
	Movies    int
	Series    int
	Reviews   int
}

// Catalog holds every record for the lifetime of the process.
type Catalog struct {
	mu        sync.RWMutex
	users     []*User
	actors    []*Actor
	directors []*Director
	movies    []*Movie
	series    []*Series
	reviews   []Review
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// SetUsers replaces the user list. The login window loads users on their own.
func (c *Catalog) SetUsers(users []*User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append([]*User(nil), users...)
}

// Replace swaps in everything from s except reviews, which are not stored in
// the data files. Nil user lists keep the current users.
func (c *Catalog) Replace(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Users != nil {
		c.users = append([]*User(nil), s.Users...)
	}
	c.actors = append([]*Actor(nil), s.Actors...)
	c.directors = append([]*Director(nil), s.Directors...)
	c.movies = append([]*Movie(nil), s.Movies...)
	c.series = append([]*Series(nil), s.Series...)
}

func (c *Catalog) Users() []*User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*User(nil), c.users...)
}

func (c *Catalog) Actors() []*Actor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Actor(nil), c.actors...)
}

func (c *Catalog) Directors() []*Director {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Director(nil), c.directors...)
}

func (c *Catalog) Movies() []*Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Movie(nil), c.movies...)
}

func (c *Catalog) Series() []*Series {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Series(nil), c.series...)
}

func (c *Catalog) Reviews() []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.reviews...)
}

func (c *Catalog) FindUser(id int) (*User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// FindDirector matches full names case-insensitively. The first match wins.
func (c *Catalog) FindDirector(fullName string) (*Director, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FindDirector(c.directors, fullName)
}

func (c *Catalog) FindActor(fullName string) (*Actor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FindActor(c.actors, fullName)
}

// FindMovieByTitle matches titles case-insensitively.
func (c *Catalog) FindMovieByTitle(title string) (*Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := NameKey(title)
	for _, m := range c.movies {
		if NameKey(m.Title) == key {
			return m, nil
		}
	}
	return nil, fmt.Errorf("movie %q: %w", title, ErrNotFound)
}

func (c *Catalog) FindSeries(id int64) (*Series, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.series {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("series %d: %w", id, ErrNotFound)
}

func (c *Catalog) AddMovie(m *Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = append(c.movies, m)
}

func (c *Catalog) AddSeries(s *Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series = append(c.series, s)
}

func (c *Catalog) AddReview(r Review) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reviews = append(c.reviews, r)
}

// AddBestWork records title on the director under the catalog lock.
func (c *Catalog) AddBestWork(d *Director, title string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return d.AddBestWork(title)
}

// SetSeasonCount resizes a series under the catalog lock.
func (c *Catalog) SetSeasonCount(s *Series, n, year int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return s.SetSeasonCount(n, year)
}

func (c *Catalog) Stats() CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CatalogStats{
		Users:     len(c.users),
		Actors:    len(c.actors),
		Directors: len(c.directors),
		Movies:    len(c.movies),
		Series:    len(c.series),
		Reviews:   len(c.reviews),
	}
}

// FindDirector searches a plain slice; the loader uses it before a catalog exists.
func FindDirector(directors []*Director, fullName string) (*Director, error) {
	key := NameKey(fullName)
	for _, d := range directors {
		if NameKey(d.FullName()) == key {
			return d, nil
		}
	}
	return nil, fmt.Errorf("director %q: %w", fullName, ErrNotFound)
}

func FindActor(actors []*Actor, fullName string) (*Actor, error) {
	key := NameKey(fullName)
	for _, a := range actors {
		if NameKey(a.FullName()) == key {
			return a, nil
		}
	}
	return nil, fmt.Errorf("actor %q: %w", fullName, ErrNotFound)
}
