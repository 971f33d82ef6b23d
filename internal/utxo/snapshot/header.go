// Package snapshot reads and writes the UTXO set snapshot format produced by a node's dumptxoutset.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

// Version is the only snapshot format version this package understands.
const Version uint16 = 2

// headerSize is magic + version + network magic + block hash + coin count.
const headerSize = 5 + 2 + 4 + 32 + 8

var magicBytes = [5]byte{'u', 't', 'x', 'o', 0xff}

// ReadHeader parses the snapshot preamble.
func ReadHeader(r io.Reader) (model.SnapshotHeader, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return model.SnapshotHeader{}, fmt.Errorf("read snapshot header: %w", noEOF(err))
	}

	if [5]byte(buf[0:5]) != magicBytes {
		return model.SnapshotHeader{}, fmt.Errorf("%w: magic %x", ErrBadMagic, buf[0:5])
	}
	version := binary.LittleEndian.Uint16(buf[5:7])
	if version != Version {
		return model.SnapshotHeader{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	network, err := bitcoin.NetworkFromMagic([4]byte(buf[7:11]))
	if err != nil {
		return model.SnapshotHeader{}, err
	}

	header := model.SnapshotHeader{
		Version:   version,
		Network:   network,
		CoinCount: binary.LittleEndian.Uint64(buf[43:51]),
	}
	copy(header.BlockHash[:], buf[11:43])
	return header, nil
}

// WriteHeader writes the snapshot preamble for h.
func WriteHeader(w io.Writer, h model.SnapshotHeader) error {
	magic, err := bitcoin.MagicForNetwork(h.Network)
	if err != nil {
		return err
	}

	buf := make([]byte, 0, headerSize)
	buf = append(buf, magicBytes[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, h.Version)
	buf = append(buf, magic[:]...)
	buf = append(buf, h.BlockHash[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, h.CoinCount)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	return nil
}
