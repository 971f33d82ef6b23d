package bitcoin

import (
	"errors"
	"io"
	"math"
)

// ReadVarInt decodes the node's storage varint: big-endian base-128 digits where every byte
// but the last has the 0x80 bit set and each continuation adds one to the accumulated value.
//
// This is not the wire compact-size integer; use wire.ReadVarInt for group counts and vouts.
// EOF before the first byte is returned as io.EOF, EOF after it as io.ErrUnexpectedEOF.
// A value that does not fit into uint64 fails with ErrVarIntOverflow.
func ReadVarInt(r io.ByteReader) (uint64, error) {
	var n uint64
	for read := 0; ; read++ {
		b, err := r.ReadByte()
		if err != nil {
			if read > 0 && errors.Is(err, io.EOF) {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if n > math.MaxUint64>>7 {
			return 0, ErrVarIntOverflow
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n, nil
		}
		if n == math.MaxUint64 {
			return 0, ErrVarIntOverflow
		}
		n++
	}
}

// AppendVarInt appends the storage varint encoding of n to dst.
func AppendVarInt(dst []byte, n uint64) []byte {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(n & 0x7f)
	for n > 0x7f {
		n = n>>7 - 1
		i--
		tmp[i] = byte(n&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

// WriteVarInt writes the storage varint encoding of n to w.
func WriteVarInt(w io.Writer, n uint64) error {
	_, err := w.Write(AppendVarInt(nil, n))
	return err
}
