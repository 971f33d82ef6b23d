package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

const insertSnapshotCoinsQuery = `
INSERT INTO utxo_snapshot_coins (
	network,
	block_hash,
	txid,
	vout,
	height,
	coinbase,
	amount,
	script
) VALUES`

// InsertSnapshotCoins stores one sorted batch of snapshot coins in ClickHouse.
func (r *Repository) InsertSnapshotCoins(ctx context.Context, header model.SnapshotHeader, b *model.Batch) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_snapshot_coins", header.Network, err, start)
	}()

	if b.Len() == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSnapshotCoinsQuery)
	if err != nil {
		return fmt.Errorf("prepare snapshot coins batch: %w", err)
	}

	blockHash := header.BlockHash.String()
	for i := 0; i < b.Len(); i++ {
		if err = batch.Append(
			string(header.Network),
			blockHash,
			b.TxIDs[i],
			b.Vouts[i],
			b.Heights[i],
			b.Coinbases[i],
			b.Amounts[i],
			string(b.Scripts[i]),
		); err != nil {
			return fmt.Errorf("append snapshot coin: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert snapshot coins: %w", err)
	}
	return nil
}
