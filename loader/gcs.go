package loader

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// splitGCSURL turns gs://bucket/path/to/object into its bucket and object names.
func splitGCSURL(url string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(url, "gs://")
	if !ok {
		return "", "", errors.Errorf("not a gs:// location: %s", url)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", errors.Errorf("gs:// location needs a bucket and an object: %s", url)
	}
	return bucket, object, nil
}

// readGCSObject downloads one object with application default credentials.
func readGCSObject(ctx context.Context, url string) ([]byte, error) {
	bucket, object, err := splitGCSURL(url)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "create storage client")
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", url)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	log.Info().Str("bucket", bucket).Str("object", object).Int("bytes", len(data)).Msg("Downloaded feed from storage")
	return data, nil
}

// UploadSnapshot writes snapshot bytes to gs://bucket/object.
func UploadSnapshot(ctx context.Context, url string, data []byte) error {
	bucket, object, err := splitGCSURL(url)
	if err != nil {
		return err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return errors.Wrap(err, "create storage client")
	}
	defer client.Close()

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return errors.Wrapf(err, "write %s", url)
	}
	// The object only exists once Close succeeds.
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "write %s", url)
	}
	return nil
}
