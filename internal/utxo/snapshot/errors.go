package snapshot

import (
	"errors"
	"io"
)

var (
	// ErrBadMagic is returned when the file does not start with the snapshot magic.
	ErrBadMagic = errors.New("not a utxo snapshot")
	// ErrUnsupportedVersion is returned for any format version other than Version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrEmptyGroup is returned for a txid group that declares zero coins.
	ErrEmptyGroup = errors.New("txid group declares zero coins")
	// ErrCoinCountMismatch is returned when the header total ends inside a txid group.
	ErrCoinCountMismatch = errors.New("coin count does not match header")
	// ErrTrailingData is returned when bytes remain after the last declared coin.
	ErrTrailingData = errors.New("trailing data after last coin")
)

// noEOF reports io.EOF inside a record as truncation.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
