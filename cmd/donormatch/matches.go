package main

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var matchesCommand = &cli.Command{
	Name:  "matches",
	Usage: "Compute matches from the configured store and print them",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := requirePersistentStore(cfg, "matches"); err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		ctx := context.Background()

		records, err := openStore(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer records.Close()

		m, err := newMatcher(cfg)
		if err != nil {
			return err
		}

		snap, err := records.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to read store: %w", err)
		}

		matches := m.Match(snap.Victims, snap.Donors)

		printer := pp.New()
		printer.SetColoringEnabled(!c.Bool("no-color"))
		printer.SetExportedOnly(true)
		printer.Println(matches)

		fmt.Printf("%d matches from %d victims and %d donors\n", len(matches), len(snap.Victims), len(snap.Donors))
		return nil
	},
}
