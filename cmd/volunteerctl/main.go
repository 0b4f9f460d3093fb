package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "volunteerctl",
		Usage: "Operator tooling for the volunteer server",
		Commands: []*cli.Command{
			tokenCommand,
			seedCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("volunteerctl failed")
	}
}
