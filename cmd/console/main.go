package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/BruksfildServices01/orders-api/internal/config"
	"github.com/BruksfildServices01/orders-api/internal/console"
	dbpkg "github.com/BruksfildServices01/orders-api/internal/db"
	"github.com/BruksfildServices01/orders-api/internal/fixtures"
	infraRepo "github.com/BruksfildServices01/orders-api/internal/infra/repository"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	"github.com/BruksfildServices01/orders-api/internal/timezone"
	ucOrder "github.com/BruksfildServices01/orders-api/internal/usecase/order"
)

func main() {
	fixturesPath := flag.String("fixtures", "", "fixtures file or s3://bucket/key (overrides FIXTURES_PATH)")
	flag.Usage = func() {
		console.Usage(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	if *fixturesPath != "" {
		cfg.FixturesPath = *fixturesPath
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, args []string) error {
	ctx := context.Background()

	// generate-keys is the only command that works without a database.
	if len(args) > 0 && args[0] == "generate-keys" {
		return console.New(cfg, os.Stdout, nil, nil, nil).GenerateKeys()
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	orders := infraRepo.NewOrderGormRepository(db)
	users := infraRepo.NewUserGormRepository(db)

	var seq ucOrder.Sequencer
	if cfg.OrderSequence == config.SequenceRedis {
		rdb, err := dbpkg.NewRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		seq = ucOrder.NewRedisSequencer(rdb)
	}

	createOrder := ucOrder.NewCreateOrder(
		orders,
		seq,
		nil,
		ucOrder.LocalClock{Location: timezone.Location(cfg.Timezone)},
		cfg.OrderNumberMaxAttempts,
	)

	return console.New(
		cfg,
		os.Stdout,
		users,
		fixtures.NewSeeder(users, createOrder),
		fixtures.NewS3Client(cfg.S3),
	).Run(ctx, args)
}
