package main

import (
	"context"
	"fmt"
	"strings"

	"donormatch/internal/category"
	"donormatch/internal/matcher"
	"donormatch/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case types.StoreDriverMemory, types.StoreDriverSQLite:
	case types.StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("set DATABASE_URL when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.StoreDriver == types.StoreDriverSQLite && c.SQLitePath == "" {
		return nil, fmt.Errorf("set SQLITE_PATH when STORE_DRIVER=sqlite")
	}

	if _, err := matcher.NewPolicy(category.Default(), c.MatchCoverage, c.MatchPriority); err != nil {
		return nil, err
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

func newLogger(c *types.Config) (*logrus.Logger, error) {
	logger := logrus.New()

	switch strings.ToLower(c.LogFormat) {
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	return logger, nil
}

func newMatcher(c *types.Config) (*matcher.Greedy, error) {
	policy, err := matcher.NewPolicy(category.Default(), c.MatchCoverage, c.MatchPriority)
	if err != nil {
		return nil, err
	}

	return matcher.NewGreedy(policy), nil
}
