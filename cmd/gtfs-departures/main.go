package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/gtfs-departures/internal"

	_ "time/tzdata"
)

func main() {
	app := &cli.App{
		Name:  "gtfs-departures",
		Usage: "Validate GTFS static feeds and list upcoming departures",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "trace|debug|info|warn|error",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "human readable console logs",
			},
		},
		Before: func(c *cli.Context) error {
			internal.InitLogging(c.String("log-level"), c.Bool("pretty"))
			return nil
		},
		Commands: []*cli.Command{
			validateCommand(),
			departuresCommand(),
			inspectCommand(),
			snapshotCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}
