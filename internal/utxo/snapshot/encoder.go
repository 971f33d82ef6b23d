package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// Encoder writes coins in snapshot layout. Consecutive coins with the same txid must be
// passed together to WriteGroup.
type Encoder struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewEncoder writes the header and returns an encoder for the coin records.
func NewEncoder(w io.Writer, h model.SnapshotHeader) (*Encoder, error) {
	if err := WriteHeader(w, h); err != nil {
		return nil, err
	}
	return &Encoder{w: w}, nil
}

// WriteGroup writes one txid group. All utxos must share a txid.
func (e *Encoder) WriteGroup(utxos []model.UTXO) error {
	if len(utxos) == 0 {
		return ErrEmptyGroup
	}

	e.buf.Reset()
	txid := utxos[0].TxID
	e.buf.Write(txid[:])
	if err := wire.WriteVarInt(&e.buf, 0, uint64(len(utxos))); err != nil {
		return err
	}
	for _, u := range utxos {
		if u.TxID != txid {
			return fmt.Errorf("group %s contains %s", txid, u.TxID)
		}
		if err := wire.WriteVarInt(&e.buf, 0, u.Vout); err != nil {
			return err
		}
		e.buf.Write(bitcoin.AppendCoin(nil, u.Coin))
	}

	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return fmt.Errorf("write group %s: %w", txid, err)
	}
	return nil
}
