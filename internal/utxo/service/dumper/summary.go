package dumper

import (
	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// Summary describes a finished dump.
type Summary struct {
	Header      model.SnapshotHeader
	Coins       uint64
	RowGroups   int
	MaxHeight   uint64
	Coinbase    uint64
	TotalAmount btcutil.Amount
}

func (s *Summary) add(c model.Coin) {
	s.Coins++
	s.MaxHeight = max(s.MaxHeight, c.Height)
	if c.Coinbase {
		s.Coinbase++
	}
	s.TotalAmount += btcutil.Amount(c.Amount)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("network", string(s.Header.Network))
	enc.AddString("block_hash", s.Header.BlockHash.String())
	enc.AddUint64("coins", s.Coins)
	enc.AddInt("row_groups", s.RowGroups)
	enc.AddUint64("max_height", s.MaxHeight)
	enc.AddUint64("coinbase_coins", s.Coinbase)
	enc.AddString("total_amount", s.TotalAmount.String())
	return nil
}

var _ zapcore.ObjectMarshaler = Summary{}

func summaryField(s Summary) zap.Field {
	return zap.Object("summary", s)
}
