package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLIApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLIApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "tenpin",
		Usage:     "ten-pin bowling scoring",
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			newScoreCommand(),
			newServeCommand(),
		},
	}
}
