package dumper

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Sink interface {
		WriteBatch(ctx context.Context, b *model.Batch) error
		Close() error
		Abort() error
	}
	SinkFactory interface {
		Open(header model.SnapshotHeader) (Sink, error)
	}
	Metrics interface {
		ObserveFlush(network model.Network, err error, rows int, started time.Time)
		ObserveCoins(network model.Network, n int)
		ObserveProgress(network model.Network, done, total uint64)
	}
)
