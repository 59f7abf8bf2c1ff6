package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"storefront/internal/cli"
	"storefront/internal/config"
	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	pg "storefront/pkg/catalog/postgres"
	rediscatalog "storefront/pkg/catalog/redis"
	"storefront/pkg/catalog/yamlfile"
	"storefront/pkg/checkout"
	"storefront/pkg/logger"
	"storefront/pkg/order"
	"storefront/pkg/order/memory"
	"storefront/pkg/order/textlog"
	"storefront/pkg/otel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.New(logOut, logger.ParseLevel(cfg.LogLevel), cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.TraceExporter,
		Host:        cfg.OTELHost,
		Writer:      logOut,
		Probability: cfg.TraceProbability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	ctx := otel.InjectTracing(context.Background(), tp.Tracer(cfg.ServiceName))

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Error(ctx, "load catalog", "source", cfg.CatalogSource, "error", err)
		return err
	}

	orders, ids, err := openOrderLog(ctx, cfg)
	if err != nil {
		log.Error(ctx, "open order log", "error", err)
		return err
	}

	svc := checkout.New(orders, ids, log)
	app := cli.New(os.Stdin, os.Stdout, os.Stderr, cat, cart.New(), svc, log)

	log.Info(ctx, "store open", "products", cat.Len(), "order_log", cfg.OrderLog, "order_id", cfg.OrderID)
	if err := app.Run(ctx); err != nil {
		log.Error(ctx, "menu closed", "error", err)
		return err
	}
	log.Info(ctx, "store closed")
	return nil
}

func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogYAML:
		return catalog.Load(ctx, yamlfile.Source{Path: cfg.CatalogFile})
	case config.CatalogPostgres:
		db, err := pg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		return catalog.Load(ctx, pg.New(db))
	case config.CatalogRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		return catalog.Load(ctx, rediscatalog.New(rdb, cfg.CatalogRedisKey))
	default:
		return catalog.Load(ctx, catalog.Static(catalog.Seed()))
	}
}

func openOrderLog(ctx context.Context, cfg config.Config) (order.Log, order.IDGenerator, error) {
	var (
		log  order.Log
		last int64
	)
	switch cfg.OrderLog {
	case config.OrderLogMemory:
		log = memory.New()
	default:
		tl := textlog.New(cfg.OrderLogPath)
		seq, err := tl.MaxSequence(ctx)
		if err != nil {
			return nil, nil, err
		}
		log, last = tl, seq
	}

	switch cfg.OrderID {
	case config.OrderIDTimestamp:
		return log, order.Timestamp{}, nil
	case config.OrderIDUUID:
		return log, order.UUID{}, nil
	default:
		return log, order.NewCounter(last), nil
	}
}
