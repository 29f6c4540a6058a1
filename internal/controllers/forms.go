package controllers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"movie-manager/internal/models"
	"movie-manager/internal/services"
	"movie-manager/internal/views"
)

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", services.ErrValidation, field)
	}
	return n, nil
}

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a number", services.ErrValidation, field)
	}
	return f, nil
}

// people resolves the director and actor chosen in a form. An empty choice
// stays nil so the service reports it as missing.
func (mc *MainController) people(director, actor string) (*models.Director, *models.Actor, error) {
	var d *models.Director
	var a *models.Actor
	var err error
	if strings.TrimSpace(director) != "" {
		if d, err = mc.catalog.Catalog().FindDirector(director); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", services.ErrValidation, err)
		}
	}
	if strings.TrimSpace(actor) != "" {
		if a, err = mc.catalog.Catalog().FindActor(actor); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", services.ErrValidation, err)
		}
	}
	return d, a, nil
}

func (mc *MainController) movieInput(f views.MovieForm) (services.MovieInput, error) {
	in := services.MovieInput{Title: f.Title, Genre: f.Genre}
	var err error
	if in.Year, err = parseInt("year", f.Year); err != nil {
		return in, err
	}
	if in.Duration, err = parseInt("duration", f.Duration); err != nil {
		return in, err
	}
	if in.IMDb, err = parseFloat("IMDb rating", f.IMDb); err != nil {
		return in, err
	}
	in.Director, in.Actor, err = mc.people(f.Director, f.Actor)
	return in, err
}

func (mc *MainController) seriesInput(f views.SeriesForm) (services.SeriesInput, error) {
	in := services.SeriesInput{Title: f.Title, Genre: f.Genre}
	var err error
	if in.Year, err = parseInt("year", f.Year); err != nil {
		return in, err
	}
	if in.Seasons, err = parseInt("seasons", f.Seasons); err != nil {
		return in, err
	}
	in.Director, in.Actor, err = mc.people(f.Director, f.Actor)
	return in, err
}
