package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"donormatch/internal/category"
	"donormatch/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Fill the configured store with demo victims and donors",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "victims",
			Usage: "Number of demo victims to create",
			Value: 20,
		},
		&cli.IntFlag{
			Name:  "donors",
			Usage: "Number of demo donors to create",
			Value: 10,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Clear the store before seeding",
		},
		&cli.Int64Flag{
			Name:  "rand-seed",
			Usage: "Random seed, 0 picks one from the clock",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := requirePersistentStore(cfg, "seed"); err != nil {
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

		randSeed := c.Int64("rand-seed")
		if randSeed == 0 {
			randSeed = time.Now().UnixNano()
		}

		logger.Info("Seeding victims and donors...")
		result, err := seed.SeedRecords(ctx, records, category.Default(), rand.New(rand.NewSource(randSeed)), seed.Options{
			Victims: c.Int("victims"),
			Donors:  c.Int("donors"),
			Reset:   c.Bool("reset"),
		})
		if err != nil {
			return fmt.Errorf("failed to seed records: %w", err)
		}

		logger.WithFields(logrus.Fields{
			"victims": len(result.Victims),
			"donors":  len(result.Donors),
			"seed":    randSeed,
		}).Info("Records seeded successfully")

		return nil
	},
}
