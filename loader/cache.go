package loader

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

const snapshotVersion = 1

// snapshot is the on-disk form of a RawFeed: gob encoded, zstd compressed.
// Raw rows are stored rather than the assembled feed, so loading a snapshot
// runs the full assembly and its validation again.
type snapshot struct {
	Version int
	Created time.Time
	Feed    *gtfs.RawFeed
}

// SaveSnapshot writes raw to w.
//
// Example:
//
//	raw, _ := loader.Load(ctx, "gtfs.zip")
//	var buf bytes.Buffer
//	if err := loader.SaveSnapshot(&buf, raw); err != nil {
//	    // handle error
//	}
func SaveSnapshot(w io.Writer, raw *gtfs.RawFeed) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errors.Wrap(err, "create snapshot compressor")
	}
	if err := gob.NewEncoder(enc).Encode(snapshot{Version: snapshotVersion, Created: time.Now().UTC(), Feed: raw}); err != nil {
		enc.Close()
		return errors.Wrap(err, "encode snapshot")
	}
	return errors.Wrap(enc.Close(), "flush snapshot")
}

// LoadSnapshot reads a RawFeed written by SaveSnapshot.
func LoadSnapshot(r io.Reader) (*gtfs.RawFeed, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "create snapshot decompressor")
	}
	defer dec.Close()

	var s snapshot
	if err := gob.NewDecoder(dec).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if s.Version != snapshotVersion {
		return nil, errors.Errorf("snapshot version %d, want %d", s.Version, snapshotVersion)
	}
	if s.Feed == nil {
		return &gtfs.RawFeed{}, nil
	}
	return s.Feed, nil
}

// SaveSnapshotTo writes a snapshot to a local file or a gs://bucket/object.
func SaveSnapshotTo(ctx context.Context, location string, raw *gtfs.RawFeed) error {
	var buf bytes.Buffer
	if err := SaveSnapshot(&buf, raw); err != nil {
		return err
	}
	if strings.HasPrefix(location, "gs://") {
		return UploadSnapshot(ctx, location, buf.Bytes())
	}
	return errors.Wrapf(os.WriteFile(location, buf.Bytes(), 0644), "write snapshot %s", location)
}

// LoadSnapshotFrom reads a snapshot from a local file or a gs://bucket/object.
//
// Example:
//
//	raw, err := loader.LoadSnapshotFrom(ctx, "/cache/feed.snapshot")
//	if err != nil {
//	    // Cache miss or corrupted, load the feed itself
//	    raw, _ = loader.Load(ctx, "gtfs.zip")
//	}
func LoadSnapshotFrom(ctx context.Context, location string) (*gtfs.RawFeed, error) {
	if strings.HasPrefix(location, "gs://") {
		data, err := readGCSObject(ctx, location)
		if err != nil {
			return nil, err
		}
		return LoadSnapshot(bytes.NewReader(data))
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot %s", location)
	}
	defer f.Close()
	return LoadSnapshot(f)
}
