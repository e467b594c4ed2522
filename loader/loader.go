package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

// opener yields the content of one feed file.
type opener func() (io.ReadCloser, error)

// Files read from a feed. Anything else in the archive is skipped.
var feedFiles = []string{
	"agency.txt",
	"stops.txt",
	"routes.txt",
	"trips.txt",
	"stop_times.txt",
	"calendar.txt",
	"calendar_dates.txt",
	"feed_info.txt",
}

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// Load reads the raw rows of a feed from a directory, a zip file, an
// http(s) URL serving a zip, or a gs://bucket/object zip.
func Load(ctx context.Context, location string) (*gtfs.RawFeed, error) {
	switch {
	case strings.HasPrefix(location, "gs://"):
		data, err := readGCSObject(ctx, location)
		if err != nil {
			return nil, err
		}
		return LoadZipBytes(ctx, data)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err := fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		return LoadZipBytes(ctx, data)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, errors.Wrapf(err, "feed source %s", location)
	}
	if info.IsDir() {
		return LoadDir(ctx, location)
	}
	return LoadZipFile(ctx, location)
}

// LoadFeed loads and assembles a feed in one step.
func LoadFeed(ctx context.Context, location string) (*gtfs.Feed, error) {
	raw, err := Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return gtfs.Assemble(raw)
}

// LoadDir reads feed files from an unpacked directory.
func LoadDir(ctx context.Context, dir string) (*gtfs.RawFeed, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read feed directory %s", dir)
	}
	files := make(map[string]opener, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		full := filepath.Join(dir, e.Name())
		files[strings.ToLower(e.Name())] = func() (io.ReadCloser, error) { return os.Open(full) }
	}
	return decode(ctx, files)
}

// LoadZipFile reads feed files from a zip archive on disk.
func LoadZipFile(ctx context.Context, name string) (*gtfs.RawFeed, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open feed archive %s", name)
	}
	defer zr.Close()
	return decode(ctx, zipFiles(&zr.Reader))
}

// LoadZipBytes reads feed files from an in-memory zip archive.
func LoadZipBytes(ctx context.Context, data []byte) (*gtfs.RawFeed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open feed archive")
	}
	return decode(ctx, zipFiles(zr))
}

func zipFiles(zr *zip.Reader) map[string]opener {
	files := make(map[string]opener, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files[strings.ToLower(path.Base(f.Name))] = f.Open
	}
	return files
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build request for %s", url)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "download %s", url)
	}
	log.Info().Str("url", url).Int("bytes", len(data)).Msg("Downloaded feed")
	return data, nil
}

// decode parses every known file concurrently. Each file fills its own
// slice of the RawFeed.
func decode(ctx context.Context, files map[string]opener) (*gtfs.RawFeed, error) {
	for name := range files {
		if !isFeedFile(name) {
			log.Debug().Str("file", name).Msg("Skipping unknown feed file")
		}
	}

	raw := &gtfs.RawFeed{}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, name := range feedFiles {
		open, ok := files[name]
		if !ok {
			log.Warn().Str("file", name).Msg("Feed file missing, treating as empty")
			continue
		}
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return decodeInto(name, open, raw)
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}

func isFeedFile(name string) bool {
	for _, f := range feedFiles {
		if f == name {
			return true
		}
	}
	return false
}

func decodeInto(name string, open opener, raw *gtfs.RawFeed) error {
	var err error
	switch name {
	case "agency.txt":
		raw.Agencies, err = decodeFile(name, open, (*agencyRecord).row)
	case "stops.txt":
		raw.Stops, err = decodeFile(name, open, (*stopRecord).row)
	case "routes.txt":
		raw.Routes, err = decodeFile(name, open, (*routeRecord).row)
	case "trips.txt":
		raw.Trips, err = decodeFile(name, open, (*tripRecord).row)
	case "stop_times.txt":
		raw.StopTimes, err = decodeFile(name, open, (*stopTimeRecord).row)
	case "calendar.txt":
		raw.Calendars, err = decodeFile(name, open, (*calendarRecord).row)
	case "calendar_dates.txt":
		raw.CalendarDates, err = decodeFile(name, open, (*calendarDateRecord).row)
	case "feed_info.txt":
		raw.FeedInfos, err = decodeFile(name, open, (*feedInfoRecord).row)
	default:
		err = fmt.Errorf("no decoder for %s", name)
	}
	return err
}

func decodeFile[R any, T any](name string, open opener, convert func(*R) (T, error)) ([]T, error) {
	start := time.Now()
	rc, err := open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer rc.Close()

	var records []*R
	if err := gocsv.UnmarshalCSV(newCSVReader(rc), &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "parse %s", name)
	}

	rows := make([]T, 0, len(records))
	for i, rec := range records {
		row, err := convert(rec)
		if err != nil {
			var fe *gtfs.FeedError
			if errors.As(err, &fe) && fe.Row == 0 {
				fe.Row = i + 1
			}
			return nil, errors.Wrapf(err, "parse %s", name)
		}
		rows = append(rows, row)
	}
	log.Debug().Str("file", name).Int("rows", len(rows)).Dur("took", time.Since(start)).Msg("Decoded feed file")
	return rows, nil
}

// newCSVReader follows the relaxed header convention: unknown columns are
// ignored, short rows leave the missing columns empty and a UTF-8 BOM is dropped.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	return cr
}
