package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// Decoder walks the coin records that follow the header. Coins sharing a txid are stored
// as one group: the txid, a compact-size count, then count × (compact-size vout, coin).
//
// The decoder knows nothing about the header's total; the caller decides how many coins to pull.
type Decoder struct {
	r bitcoin.ByteReader

	txid      chainhash.Hash
	remaining uint64
}

// NewDecoder returns a decoder reading from r. Readers without ReadByte are buffered.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(bitcoin.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// Next decodes the next coin.
func (d *Decoder) Next() (model.UTXO, error) {
	if d.remaining == 0 {
		if err := d.readGroupHeader(); err != nil {
			return model.UTXO{}, err
		}
	}

	vout, err := wire.ReadVarInt(d.r, 0)
	if err != nil {
		return model.UTXO{}, fmt.Errorf("read vout of %s: %w", d.txid, noEOF(err))
	}
	coin, err := bitcoin.ReadCoin(d.r)
	if err != nil {
		return model.UTXO{}, fmt.Errorf("read coin %s:%d: %w", d.txid, vout, err)
	}
	d.remaining--

	return model.UTXO{TxID: d.txid, Vout: vout, Coin: coin}, nil
}

func (d *Decoder) readGroupHeader() error {
	if _, err := io.ReadFull(d.r, d.txid[:]); err != nil {
		return fmt.Errorf("read txid: %w", noEOF(err))
	}
	count, err := wire.ReadVarInt(d.r, 0)
	if err != nil {
		return fmt.Errorf("read coin count of %s: %w", d.txid, noEOF(err))
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyGroup, d.txid)
	}
	d.remaining = count
	return nil
}

// Pending returns how many coins the current group still owes.
func (d *Decoder) Pending() uint64 {
	return d.remaining
}

// Finish verifies the stream ended exactly after the last coin pulled.
func (d *Decoder) Finish() error {
	if d.remaining != 0 {
		return fmt.Errorf("%w: group %s has %d coins left", ErrCoinCountMismatch, d.txid, d.remaining)
	}
	_, err := d.r.ReadByte()
	switch {
	case err == nil:
		return ErrTrailingData
	case errors.Is(err, io.EOF):
		return nil
	default:
		return fmt.Errorf("check end of snapshot: %w", err)
	}
}
