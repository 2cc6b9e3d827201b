package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "genwaves",
		Usage: "Play, generate and share procedurally produced tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an extra configuration file (overrides the defaults)",
			},
			&cli.StringFlag{
				Name:    "link",
				Aliases: []string{"l"},
				Usage:   "Share link or token to merge into the playlist",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn or error",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "share",
				Usage:  "Print the share link of the saved playlist",
				Action: runShare,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
