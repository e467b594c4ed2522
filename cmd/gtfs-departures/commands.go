package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/gtfs-departures/config"
	"github.com/theoremus-urban-solutions/gtfs-departures/departures"
	"github.com/theoremus-urban-solutions/gtfs-departures/formatter"
	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-departures/internal"
	"github.com/theoremus-urban-solutions/gtfs-departures/loader"
	"github.com/theoremus-urban-solutions/gtfs-departures/metrics"
	"github.com/theoremus-urban-solutions/gtfs-departures/server"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Usage:   "feed directory, zip file, http(s) URL or gs://bucket/object",
			EnvVars: []string{"GTFS_FEED_SOURCE"},
		},
		&cli.StringFlag{
			Name:    "snapshot",
			Usage:   "snapshot to read instead of the source when it exists",
			EnvVars: []string{"GTFS_SNAPSHOT_PATH"},
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "load and assemble a feed, then print entity counts",
		Flags: sourceFlags(),
		Action: func(c *cli.Context) error {
			feed, took, err := openFeed(c.Context, c.String("source"), c.String("snapshot"))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			counts := feed.Counts()
			fmt.Fprintf(w, "agencies\t%d\n", counts.Agencies)
			fmt.Fprintf(w, "stops\t%d\n", counts.Stops)
			fmt.Fprintf(w, "routes\t%d\n", counts.Routes)
			fmt.Fprintf(w, "trips\t%d\n", counts.Trips)
			fmt.Fprintf(w, "stop times\t%d\n", counts.StopTimes)
			fmt.Fprintf(w, "calendars\t%d\n", counts.Calendars)
			fmt.Fprintf(w, "calendar dates\t%d\n", counts.CalendarDates)
			fmt.Fprintf(w, "feed info\t%d\n", counts.FeedInfos)

			valid, known := departures.NewEngine(feed).IsFeedCurrentlyValid()
			switch {
			case !known:
				fmt.Fprintf(w, "currently valid\tunknown\n")
			default:
				fmt.Fprintf(w, "currently valid\t%t\n", valid)
			}
			fmt.Fprintf(w, "took\t%s\n", took.Round(time.Millisecond))
			return w.Flush()
		},
	}
}

func departuresCommand() *cli.Command {
	return &cli.Command{
		Name:  "departures",
		Usage: "list upcoming departures at a stop",
		Flags: append(sourceFlags(),
			&cli.StringFlag{Name: "stop", Usage: "stop name, case insensitive"},
			&cli.StringFlag{Name: "code", Usage: "stop code, case insensitive"},
			&cli.IntFlag{Name: "limit", Value: departures.DefaultLimit, Usage: "maximum number of departures"},
			&cli.StringFlag{Name: "timezone", Usage: "IANA timezone, defaults to the agency timezone", EnvVars: []string{"GTFS_TIMEZONE"}},
			&cli.BoolFlag{Name: "service-dates", Usage: "also honour service date ranges and calendar_dates"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "text|json|xml"},
		),
		Action: func(c *cli.Context) error {
			tmpl := departures.StopTemplate{Name: c.String("stop"), Code: c.String("code")}
			if tmpl.Name == "" && tmpl.Code == "" {
				return errors.New("give --stop, --code or both")
			}
			loc, err := loadLocation(c.String("timezone"))
			if err != nil {
				return err
			}
			feed, _, err := openFeed(c.Context, c.String("source"), c.String("snapshot"))
			if err != nil {
				return err
			}
			engine := departures.NewEngine(feed,
				departures.WithLocation(loc),
				departures.WithLimit(c.Int("limit")),
				departures.WithServiceDates(c.Bool("service-dates")),
			)

			var services []departures.UpcomingService
			switch {
			case tmpl.Name != "":
				services = engine.UpcomingServicesForStopTemplate(tmpl)
			default:
				services = engine.UpcomingServicesForStopCode(tmpl.Code)
			}

			now := time.Now().In(engine.Location())
			var feedValid *bool
			if valid, known := engine.IsFeedCurrentlyValid(); known {
				feedValid = &valid
			}
			board := formatter.BuildDepartureBoard(tmpl, services, now, feedValid)
			rb := formatter.NewResponseBuilder()
			switch c.String("format") {
			case "json":
				fmt.Println(string(rb.BuildJSON(board)))
			case "xml":
				fmt.Println(string(rb.BuildXML(board)))
			default:
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, d := range board.Departures {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.AimedDepartureTime, d.PublishedLineName, d.DestinationDisplay, d.StopPointName)
				}
				return w.Flush()
			}
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "print one stop and its parent station",
		Flags: append(sourceFlags(),
			&cli.StringFlag{Name: "stop-id", Required: true},
		),
		Action: func(c *cli.Context) error {
			feed, _, err := openFeed(c.Context, c.String("source"), c.String("snapshot"))
			if err != nil {
				return err
			}
			stop := feed.Stop(c.String("stop-id"))
			if stop == nil {
				return errors.Errorf("no stop %q", c.String("stop-id"))
			}
			pretty.Println(stop)
			if parent := feed.ParentStation(stop); parent != nil {
				fmt.Println("parent station:")
				pretty.Println(parent)
			}
			return nil
		},
	}
}

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "write a compressed snapshot of a feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Required: true, EnvVars: []string{"GTFS_FEED_SOURCE"}},
			&cli.StringFlag{Name: "out", Required: true, Usage: "file path or gs://bucket/object"},
		},
		Action: func(c *cli.Context) error {
			raw, err := loader.Load(c.Context, c.String("source"))
			if err != nil {
				return err
			}
			// Refuse to snapshot a feed that would not load.
			if _, err := gtfs.Assemble(raw); err != nil {
				return err
			}
			if err := loader.SaveSnapshotTo(c.Context, c.String("out"), raw); err != nil {
				return err
			}
			log.Info().Str("out", c.String("out")).Msg("Snapshot written")
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the departures HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config.yml"},
			&cli.StringFlag{Name: "feed", Usage: "feed name from config feeds[]"},
		},
		Action: func(c *cli.Context) error {
			if err := config.LoadAppConfig(c.String("config")); err != nil {
				return err
			}
			cfg := config.Config
			if !c.IsSet("log-level") {
				internal.InitLogging(cfg.Logging.Level, cfg.Logging.Pretty || c.Bool("pretty"))
			}

			feedCfg := cfg.SelectFeed(c.String("feed"))
			loc, err := loadLocation(feedCfg.Timezone)
			if err != nil {
				return err
			}

			var collector *metrics.Collector
			if cfg.Server.Metrics {
				collector = metrics.NewCollector()
			}
			feed, took, err := openFeed(c.Context, feedCfg.Source, feedCfg.Snapshot)
			if err != nil {
				if collector != nil {
					collector.ObserveFeedError()
				}
				return err
			}

			engine := departures.NewEngine(feed,
				departures.WithLocation(loc),
				departures.WithLimit(cfg.Query.Limit),
				departures.WithGracePeriod(cfg.Query.GracePeriod()),
				departures.WithServiceDates(cfg.Query.HonorServiceDates),
			)
			if collector != nil {
				valid, known := engine.IsFeedCurrentlyValid()
				collector.ObserveFeed(feed, valid, known, took)
			}

			srv := server.New(engine, cfg.Server, collector)
			srv.Start()
			srv.HandleGracefulShutdown()
			return nil
		},
	}
}
