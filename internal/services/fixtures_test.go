package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movie-manager/internal/datafile"
	"movie-manager/internal/events"
	"movie-manager/internal/models"
)

var fixtures = map[string]string{
	datafile.UsersFile: `Maria,Papadopoulou,maria,maria@example.gr
Giorgos,Ioannou,giorgos,giorgos@example.com
`,
	datafile.ActorsFile: `Leonardo,DiCaprio,1974-11-11,M,White
Morgan,Freeman,1937-06-01,M,Black
Emma,Stone,1988-11-06,F,White
Bryan,Cranston,1956-03-07,M,White
`,
	datafile.DirectorsFile: `Christopher,Nolan,1970-07-30,M,Inception|Interstellar
Vince,Gilligan,1967-02-10,M,Breaking Bad
`,
	datafile.MoviesFile: `Inception,2010,Sci-Fi,148,Christopher Nolan,8.8,Leonardo DiCaprio,1:9|2:8
The Shawshank Redemption,1994,Drama,142,Frank Darabont,9.3,Morgan Freeman,1:10|2:10
La La Land,2016,Musical,128,Damien Chazelle,8.0,Emma Stone
Ο Θίασος,1975,Drama,230,Christopher Nolan,7.9,Emma Stone,1:7
`,
	datafile.SeriesFile: `SERIES: Breaking Bad, Crime, 1:10|2:9
SEASON: 1, 2008:
58, Vince Gilligan, 9.0, Bryan Cranston
SEASON: 2, 2009:
47, Vince Gilligan, 8.7, Bryan Cranston
SERIES: Dark, Sci-Fi, 1:6
SEASON: 1, 2017:
`,
}

// writeDataDir writes the fixture files, with override replacing single files.
func writeDataDir(t *testing.T, override map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtures {
		if o, ok := override[name]; ok {
			body = o
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

type recordingBus struct {
	events chan string
}

func newRecordingBus() *recordingBus {
	return &recordingBus{events: make(chan string, 16)}
}

func (b *recordingBus) Publish(e events.Event) {
	select {
	case b.events <- e.Type:
	default:
	}
}

func (b *recordingBus) types() []string {
	var out []string
	for {
		select {
		case t := <-b.events:
			out = append(out, t)
		default:
			return out
		}
	}
}

func newLoadedService(t *testing.T, opts CatalogOptions) (*CatalogService, *recordingBus, string) {
	t.Helper()
	dir := writeDataDir(t, nil)
	svc, bus := newServiceIn(t, dir, opts)
	return svc, bus, dir
}

func newServiceIn(t *testing.T, dir string, opts CatalogOptions) (*CatalogService, *recordingBus) {
	t.Helper()
	bus := newRecordingBus()
	svc := NewCatalogService(models.NewCatalog(), datafile.NewLoader([]string{dir}, nil), bus, nil, opts)
	_, err := svc.Reload(t.Context())
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, bus
}
