package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// Sink writes every flushed batch of one snapshot as a separate insert.
type Sink struct {
	repo   *Repository
	header model.SnapshotHeader
}

// NewSink binds the repository to the snapshot whose coins it will receive.
func NewSink(repo *Repository, header model.SnapshotHeader) *Sink {
	return &Sink{repo: repo, header: header}
}

func (s *Sink) WriteBatch(ctx context.Context, b *model.Batch) error {
	return s.repo.InsertSnapshotCoins(ctx, s.header, b)
}

func (s *Sink) Close() error {
	return s.repo.Close()
}

// Abort closes the connection. Rows of batches already sent stay in the table.
func (s *Sink) Abort() error {
	return s.repo.Close()
}
