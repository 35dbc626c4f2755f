package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "donormatch",
		Usage: "Donation matching API for victims and donors",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			matchesCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
