package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tripsearch/pkg/api"
	"github.com/travigo/tripsearch/pkg/config"
	"github.com/travigo/tripsearch/pkg/planner"
	"github.com/travigo/tripsearch/pkg/searchbar"
	"github.com/travigo/tripsearch/pkg/terminal"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	_ "time/tzdata"
)

func main() {
	// A missing .env is fine, the environment and config file still apply
	_ = godotenv.Load()

	setupLogging()

	app := &cli.App{
		Name:        "tripsearch",
		Description: "Trip search form and planner front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"TRIPSEARCH_CONFIG"},
			},
		},

		Commands: []*cli.Command{
			api.RegisterCLI(),
			registerFormCLI(),
			registerInspectCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func setupLogging() {
	var output io.Writer = os.Stdout
	if os.Getenv("TRIPSEARCH_LOG_FORMAT") != "JSON" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if logFile := os.Getenv("TRIPSEARCH_LOG_FILE"); logFile != "" {
		output = io.MultiWriter(output, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if os.Getenv("TRIPSEARCH_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func registerFormCLI() *cli.Command {
	return &cli.Command{
		Name:  "form",
		Usage: "Fill in the search form in the terminal and route",
		Action: func(c *cli.Context) error {
			appConfig, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			location, err := appConfig.Location()
			if err != nil {
				return err
			}

			form := &terminal.Form{
				Planner: planner.NewClient(appConfig.Planner),
				Clock:   searchbar.Clock{Location: location},
				Output:  os.Stdout,
			}

			variables, err := form.Run(c.Context, appConfig.DefaultVariables())
			log.Debug().Interface("variables", variables).Msg("Search form finished")

			return err
		},
	}
}

func registerInspectCLI() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the variables a new search session starts with",
		Action: func(c *cli.Context) error {
			appConfig, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			pretty.Println(appConfig.DefaultVariables())

			return nil
		},
	}
}
