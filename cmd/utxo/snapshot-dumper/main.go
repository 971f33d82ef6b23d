package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/repository/parquet"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/service/dumper"
)

type config struct {
	Input         string `short:"i" long:"input" env:"UTXO_DUMP_INPUT" description:"UTXO snapshot file written by dumptxoutset" required:"true"`
	Output        string `short:"o" long:"output" env:"UTXO_DUMP_OUTPUT" description:"Parquet file to write"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"UTXO_DUMP_CLICKHOUSE_DSN" description:"ClickHouse DSN, writes to utxo_snapshot_coins instead of a Parquet file"`
	Network       string `long:"network" env:"UTXO_DUMP_NETWORK" description:"expected snapshot network (mainnet, testnet (testnet3), testnet4, regtest, signet)"`
	BatchSize     int    `long:"batch-size" env:"UTXO_DUMP_BATCH_SIZE" default:"10000000" description:"rows sorted and written per row group"`
	MetricsAddr   string `long:"metrics-addr" env:"UTXO_DUMP_METRICS_ADDR" description:"address of the Prometheus metrics endpoint, disabled when empty"`
}

func (c config) validate() error {
	if (c.Output == "") == (c.ClickhouseDSN == "") {
		return errors.New("exactly one of --output and --clickhouse-dsn is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", dumper.ErrInvalidBatchSize, c.BatchSize)
	}
	return nil
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("utxo snapshot dumper failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	var network model.Network
	if cfg.Network != "" {
		var err error
		if network, err = bitcoin.ParseNetwork(cfg.Network); err != nil {
			return err
		}
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	input, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer func() {
		_ = input.Close()
	}()

	svc, err := dumper.NewService(
		newSinkFactory(cfg),
		metrics.NewSnapshotDumper(),
		cfg.BatchSize,
		network,
		logger.Named("dumper"),
	)
	if err != nil {
		return err
	}

	_, err = svc.Run(ctx, input)
	return err
}

func newSinkFactory(cfg config) dumper.SinkFactory {
	return dumper.SinkFactoryFunc(func(header model.SnapshotHeader) (dumper.Sink, error) {
		if cfg.ClickhouseDSN != "" {
			repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
			if err != nil {
				return nil, fmt.Errorf("init repository: %w", err)
			}
			return clickhouse.NewSink(repo, header), nil
		}
		w, err := parquet.Create(cfg.Output, header, metrics.NewParquetWriter())
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
