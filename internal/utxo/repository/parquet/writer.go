// Package parquet writes snapshot batches as sorted Parquet row groups.
package parquet

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
	"github.com/parquet-go/parquet-go"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}
)

// Row is one output of the UTXO table. Scripts use delta byte array encoding, which
// stores only the suffix that differs from the previous, sorted, value.
type Row struct {
	TxID     string `parquet:"txid"`
	Vout     uint64 `parquet:"vout"`
	Height   uint64 `parquet:"height"`
	Coinbase bool   `parquet:"coinbase"`
	Amount   uint64 `parquet:"amount"`
	Script   []byte `parquet:"script,delta"`
}

const (
	// writeChunkRows is how many rows are materialized at once while a batch is copied into a row group.
	writeChunkRows = 64 * 1024

	createdBy = "blockinsight7000-utxodump"
)

// Writer emits one Parquet row group per batch.
type Writer struct {
	file    *os.File
	writer  *parquet.GenericWriter[Row]
	network model.Network
	metrics Metrics
	rows    []Row
}

// Create opens path for writing, truncating an existing file.
func Create(path string, header model.SnapshotHeader, metrics Metrics) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	w := NewWriter(f, header, metrics)
	w.file = f
	return w, nil
}

// NewWriter writes the Parquet file to output. Snapshot header fields are stored as key/value metadata.
func NewWriter(output io.Writer, header model.SnapshotHeader, metrics Metrics) *Writer {
	writer := parquet.NewGenericWriter[Row](output,
		parquet.Compression(&parquet.Zstd),
		parquet.DataPageStatistics(true),
		parquet.SortingWriterConfig(
			parquet.SortingColumns(parquet.Ascending("script")),
		),
		parquet.CreatedBy(createdBy, "", ""),
		parquet.KeyValueMetadata("network", string(header.Network)),
		parquet.KeyValueMetadata("block_hash", header.BlockHash.String()),
		parquet.KeyValueMetadata("snapshot_version", strconv.FormatUint(uint64(header.Version), 10)),
		parquet.KeyValueMetadata("coin_count", strconv.FormatUint(header.CoinCount, 10)),
	)
	return &Writer{
		writer:  writer,
		network: header.Network,
		metrics: metrics,
	}
}

// WriteBatch writes the batch, which must already be sorted by script, as a single row group.
func (w *Writer) WriteBatch(ctx context.Context, b *model.Batch) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("write_row_group", w.network, err, started)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}

	for start := 0; start < b.Len(); start += writeChunkRows {
		end := min(start+writeChunkRows, b.Len())
		w.rows = w.rows[:0]
		for i := start; i < end; i++ {
			w.rows = append(w.rows, Row{
				TxID:     b.TxIDs[i],
				Vout:     b.Vouts[i],
				Height:   b.Heights[i],
				Coinbase: b.Coinbases[i],
				Amount:   b.Amounts[i],
				Script:   b.Scripts[i],
			})
		}
		if _, err = w.writer.Write(w.rows); err != nil {
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	clear(w.rows)

	if err = w.writer.Flush(); err != nil {
		return fmt.Errorf("flush parquet row group: %w", err)
	}
	return nil
}

// Close writes the file footer and closes the underlying file.
func (w *Writer) Close() (err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("close", w.network, err, started)
	}()

	if err = w.writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if w.file != nil {
		if err = w.file.Close(); err != nil {
			return fmt.Errorf("close parquet file: %w", err)
		}
	}
	return nil
}

// Abort closes the underlying file without writing a footer. The partial file stays on disk.
func (w *Writer) Abort() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
