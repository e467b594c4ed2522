/*
Package gtfs assembles GTFS static schedule data into a validated,
cross-referenced in-memory feed.

The package is data-source agnostic: it consumes RawFeed values (one slice
of typed rows per feed file) and performs no I/O. Reading files, zips and
snapshots lives in the loader package.

# Basic Usage

	raw := &gtfs.RawFeed{
	    Agencies: []gtfs.AgencyRow{agency},
	    Stops:    stops,
	    // ...
	}

	feed, err := gtfs.Assemble(raw)
	if err != nil {
	    var fe *gtfs.FeedError
	    if errors.As(err, &fe) {
	        log.Fatal().Str("entity", fe.Entity).Int("row", fe.Row).Msg(fe.Error())
	    }
	}

	stop := feed.Stop("S1")
	station := feed.ParentStation(stop)

# Assembly

Entities are resolved in dependency order: agencies, stops, calendars,
routes, trips, stop times, calendar dates, feed info. Every foreign id is
looked up by binary search among the already resolved entities of its kind
and replaced by a direct pointer. Parent stations are the exception: a stop
records the position of its station in Feed.Stops.

Assembly is all-or-nothing. The first violation aborts with a *FeedError
that unwraps to one of ErrMissingRequiredField, ErrUnknownEnumValue,
ErrReferenceNotFound, ErrAmbiguousReference, ErrMalformedDate,
ErrMalformedField or ErrDuplicateID.

# Agencies

When a feed has a single agency, agency_id may be empty on both the agency
and its routes. With several agencies every agency needs an id and every
route must name one; an empty route agency fails with ErrAmbiguousReference.

# Times

Stop times are TimeOfDay values. Hours of 24 and above are folded back into
the day, so "25:30:00" is 01:30:00. Malformed or empty times are treated as
absent; a stop time needs at least one of arrival and departure.
*/
package gtfs
