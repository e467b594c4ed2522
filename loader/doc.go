/*
Package loader reads GTFS feed files into gtfs.RawFeed values.

Sources are unpacked directories, zip files, http(s) URLs and
gs://bucket/object paths. Files are decoded concurrently with a relaxed
header convention: unknown columns are ignored and absent columns keep the
format defaults. Missing files are treated as empty.

	raw, err := loader.Load(ctx, "https://example.com/gtfs.zip")
	if err != nil {
	    return err
	}
	feed, err := gtfs.Assemble(raw)

Snapshots store the raw rows compressed, for quick restarts:

	_ = loader.SaveSnapshotTo(ctx, "/cache/feed.snapshot", raw)
	raw, err = loader.LoadSnapshotFrom(ctx, "/cache/feed.snapshot")
*/
package loader
