package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/config"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the trip search web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config",
					},
				},
				Action: func(c *cli.Context) error {
					appConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					listen := appConfig.Listen
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					search, err := NewSearch(c.Context, appConfig)
					if err != nil {
						return err
					}

					log.Info().Str("listen", listen).Str("planner", appConfig.Planner.Endpoint).Msg("Starting trip search web API")

					return SetupServer(listen, search)
				},
			},
		},
	}
}
