package bitcoin

import (
	"errors"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// ByteReader is the input the coin decoder needs: bulk reads for payloads and byte reads for varints.
type ByteReader interface {
	io.Reader
	io.ByteReader
}

// ReadCoin decodes one coin record: a varint of height<<1|coinbase, a varint compressed amount
// and a compressed script.
func ReadCoin(r ByteReader) (model.Coin, error) {
	code, err := ReadVarInt(r)
	if err != nil {
		return model.Coin{}, fmt.Errorf("read height code: %w", noEOF(err))
	}
	amount, err := ReadVarInt(r)
	if err != nil {
		return model.Coin{}, fmt.Errorf("read amount: %w", noEOF(err))
	}
	script, err := ReadScript(r)
	if err != nil {
		return model.Coin{}, err
	}
	return model.Coin{
		Height:   code >> 1,
		Coinbase: code&1 == 1,
		Amount:   DecompressAmount(amount),
		Script:   script,
	}, nil
}

// AppendCoin appends the record encoding of c to dst.
func AppendCoin(dst []byte, c model.Coin) []byte {
	code := c.Height << 1
	if c.Coinbase {
		code |= 1
	}
	dst = AppendVarInt(dst, code)
	dst = AppendVarInt(dst, CompressAmount(c.Amount))
	return AppendScript(dst, c.Script)
}

// noEOF turns io.EOF into io.ErrUnexpectedEOF: once a record has started, running out of input is truncation.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
