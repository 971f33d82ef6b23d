// Package dumper turns a UTXO snapshot stream into sorted columnar batches.
package dumper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/snapshot"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/pkg/safe"
)

const readBufferSize = 1 << 20

// Service decodes one snapshot and hands it to a sink batch by batch.
type Service struct {
	sinks     SinkFactory
	metrics   Metrics
	logger    *zap.Logger
	batchSize int
	network   model.Network
}

// NewService builds a Service. An empty network accepts any snapshot network.
func NewService(
	sinks SinkFactory,
	metrics Metrics,
	batchSize int,
	network model.Network,
	logger *zap.Logger,
) (*Service, error) {
	if sinks == nil {
		return nil, errors.New("sink factory is required")
	}
	if metrics == nil {
		return nil, errors.New("dumper metrics is required")
	}
	if logger == nil {
		return nil, errors.New("dumper logger is required")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	return &Service{
		sinks:     sinks,
		metrics:   metrics,
		logger:    logger,
		batchSize: batchSize,
		network:   network,
	}, nil
}

// Run reads the snapshot from input and writes every coin it declares.
// On failure the sink is aborted and whatever was flushed so far is left behind.
func (s *Service) Run(ctx context.Context, input io.Reader) (Summary, error) {
	r := bufio.NewReaderSize(input, readBufferSize)

	header, err := snapshot.ReadHeader(r)
	if err != nil {
		return Summary{}, err
	}
	logger := s.logger.With(zap.String("network", string(header.Network)))
	logger.Info("snapshot header",
		zap.Uint16("version", header.Version),
		zap.Stringer("block_hash", header.BlockHash),
		zap.Uint64("coins", header.CoinCount),
	)

	if s.network != "" && header.Network != s.network {
		return Summary{Header: header}, fmt.Errorf("%w: snapshot is %s, expected %s", ErrNetworkMismatch, header.Network, s.network)
	}

	sink, err := s.sinks.Open(header)
	if err != nil {
		return Summary{Header: header}, fmt.Errorf("open sink: %w", err)
	}

	summary, err := s.dump(ctx, header, snapshot.NewDecoder(r), sink, logger)
	if err != nil {
		if abortErr := sink.Abort(); abortErr != nil {
			logger.Warn("abort sink failed", zap.Error(abortErr))
		}
		return summary, err
	}
	if err = sink.Close(); err != nil {
		return summary, fmt.Errorf("close sink: %w", err)
	}

	logger.Info("snapshot dumped", summaryField(summary))
	return summary, nil
}

func (s *Service) dump(
	ctx context.Context,
	header model.SnapshotHeader,
	decoder *snapshot.Decoder,
	sink Sink,
	logger *zap.Logger,
) (Summary, error) {
	summary := Summary{Header: header}

	capacity, err := safe.Int(min(header.CoinCount, uint64(s.batchSize)))
	if err != nil {
		return summary, err
	}
	batch := model.NewBatch(capacity)

	unreported := 0
	for i := uint64(0); i < header.CoinCount; i++ {
		utxo, err := decoder.Next()
		if err != nil {
			return summary, fmt.Errorf("decode coin %d of %d: %w", i+1, header.CoinCount, err)
		}
		batch.Append(utxo)
		summary.add(utxo.Coin)

		unreported++
		if unreported == coinsReportEvery {
			s.metrics.ObserveCoins(header.Network, unreported)
			unreported = 0
			if err = ctx.Err(); err != nil {
				return summary, err
			}
		}

		if batch.Len() >= s.batchSize || i+1 == header.CoinCount {
			if err = s.flush(ctx, header, sink, batch, &summary, logger); err != nil {
				return summary, err
			}
		}
	}
	if unreported > 0 {
		s.metrics.ObserveCoins(header.Network, unreported)
	}

	if err = decoder.Finish(); err != nil {
		return summary, fmt.Errorf("finish snapshot: %w", err)
	}
	s.metrics.ObserveProgress(header.Network, summary.Coins, header.CoinCount)
	return summary, nil
}

func (s *Service) flush(
	ctx context.Context,
	header model.SnapshotHeader,
	sink Sink,
	batch *model.Batch,
	summary *Summary,
	logger *zap.Logger,
) (err error) {
	started := time.Now()
	rows := batch.Len()
	defer func() {
		s.metrics.ObserveFlush(header.Network, err, rows, started)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	batch.Sort()
	if err = sink.WriteBatch(ctx, batch); err != nil {
		return fmt.Errorf("write batch of %d rows: %w", rows, err)
	}
	batch.Reset()
	summary.RowGroups++

	s.metrics.ObserveProgress(header.Network, summary.Coins, header.CoinCount)
	logger.Info("dumped rows",
		zap.Uint64("rows", summary.Coins),
		zap.Int("batch", rows),
		zap.String("progress", fmt.Sprintf("%.2f%%", percent(summary.Coins, header.CoinCount))),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}

func percent(done, total uint64) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) * 100 / float64(total)
}
