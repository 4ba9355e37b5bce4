// Package main - wastewatch command line.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nvr-ai/wastewatch/config"
)

const usage = "Usage: wastewatch <base64_image> [roi_json]"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "wastewatch",
		Usage:     "classify litter, bins and littering people in an image",
		ArgsUsage: "<base64_image> [roi_json]",
		Flags: append(config.Flags(),
			&cli.StringFlag{Name: flagImageFile, Usage: "read the image from a file instead of the first argument"},
			&cli.StringFlag{Name: flagAnnotate, Usage: "write an annotated JPEG to this path"},
		),
		Action: detectAction,
		Commands: []*cli.Command{
			{
				Name:      "batch",
				Usage:     "classify every image in a directory, one JSON line per file",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagWorkers, Value: 2, Usage: "images processed concurrently"},
					&cli.StringFlag{Name: flagROI, Usage: "region of interest applied to every image"},
					&cli.StringFlag{Name: flagAnnotateDir, Usage: "write annotated JPEGs into this directory"},
				},
				Action: batchAction,
			},
		},
	}
}
