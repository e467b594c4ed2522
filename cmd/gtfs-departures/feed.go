package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-departures/loader"
)

// readFeed loads the raw rows of a feed, preferring a snapshot when one is
// given and readable. A snapshot that cannot be read falls back to source.
func readFeed(ctx context.Context, source, snapshot string) (*gtfs.RawFeed, error) {
	if snapshot != "" && snapshotAvailable(snapshot) {
		raw, err := loader.LoadSnapshotFrom(ctx, snapshot)
		if err == nil {
			log.Info().Str("snapshot", snapshot).Msg("Loaded feed snapshot")
			return raw, nil
		}
		log.Warn().Err(err).Str("snapshot", snapshot).Msg("Snapshot unusable, loading feed source")
	}
	if source == "" {
		return nil, errors.New("no feed source given")
	}
	raw, err := loader.Load(ctx, source)
	if err != nil {
		return nil, errors.Wrap(err, "load feed")
	}
	return raw, nil
}

func snapshotAvailable(location string) bool {
	if strings.HasPrefix(location, "gs://") {
		return true
	}
	_, err := os.Stat(location)
	return err == nil
}

// openFeed reads and assembles a feed, reporting how long it took.
func openFeed(ctx context.Context, source, snapshot string) (*gtfs.Feed, time.Duration, error) {
	start := time.Now()
	raw, err := readFeed(ctx, source, snapshot)
	if err != nil {
		return nil, 0, err
	}
	feed, err := gtfs.Assemble(raw)
	if err != nil {
		return nil, 0, errors.Wrap(err, "assemble feed")
	}
	took := time.Since(start)
	log.Info().Interface("counts", feed.Counts()).Dur("took", took).Msg("Feed ready")
	return feed, took, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "timezone %q", name)
	}
	return loc, nil
}
