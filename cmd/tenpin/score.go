package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlinggame "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/game"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

func newScoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "score a game from a list of rolls",
		ArgsUsage: "PINS...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Usage: "write the scoresheet to `FILE`"},
			&cli.StringFlag{Name: "chart", Usage: "write the running-total chart to `FILE`"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no rolls given")
			}

			pins := make([]int, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				p, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid roll %q: %w", arg, err)
				}
				pins = append(pins, p)
			}

			g := bowlinggame.NewGame()
			var rollErr error
			for i, p := range pins {
				if err := g.Roll(p); err != nil {
					rollErr = fmt.Errorf("roll %d (%d pins): %w", i+1, p, err)
					break
				}
			}

			view := bowlingservice.NewGameView(uuid.New(), time.Now().UTC(), g)
			printScoresheet(c.App.Writer, view)

			if path := c.String("xlsx"); path != "" {
				data, err := bowlingservice.BuildScorecardXLSX(view)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write scoresheet: %w", err)
				}
			}
			if path := c.String("chart"); path != "" {
				data, err := bowlingservice.GenerateScoreChart(view)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("failed to write chart: %w", err)
				}
			}

			return rollErr
		},
	}
}

func printScoresheet(w io.Writer, view bowlingservice.GameView) {
	marks := make([]string, len(view.Frames))
	totals := make([]string, len(view.Frames))
	for i, f := range view.Frames {
		marks[i] = f.Mark
		if len(f.Rolls) > 0 {
			totals[i] = strconv.Itoa(f.RunningTotal)
		}
	}

	fmt.Fprintf(w, "frames: %s\n", strings.Join(marks, " || "))
	fmt.Fprintf(w, "totals: %s\n", strings.Join(totals, " "))
	fmt.Fprintf(w, "score:  %d\n", view.Score)
	if view.Complete {
		fmt.Fprintln(w, "game complete")
	}
}
