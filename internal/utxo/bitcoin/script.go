package bitcoin

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/pkg/safe"
)

// ScriptType is the tag of a compressed script form.
type ScriptType uint8

const (
	ScriptP2PKH ScriptType = iota
	ScriptP2SH
	ScriptP2PKCompressedEven
	ScriptP2PKCompressedOdd
	ScriptP2PKUncompressedEven
	ScriptP2PKUncompressedOdd
)

// numSpecialScripts is the number of compressed forms; larger length values carry len+numSpecialScripts.
const numSpecialScripts = 6

const (
	hash160Size = 20
	xCoordSize  = 32
)

// PayloadSize returns the number of payload bytes that follow the tag on disk.
func (t ScriptType) PayloadSize() int {
	switch t {
	case ScriptP2PKH, ScriptP2SH:
		return hash160Size
	case ScriptP2PKCompressedEven, ScriptP2PKCompressedOdd, ScriptP2PKUncompressedEven, ScriptP2PKUncompressedOdd:
		return xCoordSize
	default:
		return 0
	}
}

func (t ScriptType) String() string {
	switch t {
	case ScriptP2PKH:
		return "p2pkh"
	case ScriptP2SH:
		return "p2sh"
	case ScriptP2PKCompressedEven:
		return "p2pk-compressed-even"
	case ScriptP2PKCompressedOdd:
		return "p2pk-compressed-odd"
	case ScriptP2PKUncompressedEven:
		return "p2pk-uncompressed-even"
	case ScriptP2PKUncompressedOdd:
		return "p2pk-uncompressed-odd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// DecompressScript rebuilds the locking script for a compressed script form.
func DecompressScript(t ScriptType, payload []byte) ([]byte, error) {
	size := t.PayloadSize()
	if size == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScriptType, uint8(t))
	}
	if len(payload) != size {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrScriptPayloadSize, t, size, len(payload))
	}

	builder := txscript.NewScriptBuilder()
	switch t {
	case ScriptP2PKH:
		builder.AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG)
	case ScriptP2SH:
		builder.AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUAL)
	case ScriptP2PKCompressedEven, ScriptP2PKCompressedOdd:
		key := make([]byte, 0, 1+xCoordSize)
		key = append(key, byte(t))
		key = append(key, payload...)
		builder.AddData(key).AddOp(txscript.OP_CHECKSIG)
	case ScriptP2PKUncompressedEven, ScriptP2PKUncompressedOdd:
		key := make([]byte, 0, 1+xCoordSize)
		key = append(key, byte(t)-2)
		key = append(key, payload...)
		pubKey, err := btcec.ParsePubKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
		}
		builder.AddData(pubKey.SerializeUncompressed()).AddOp(txscript.OP_CHECKSIG)
	}

	script, err := builder.Script()
	if err != nil {
		return nil, fmt.Errorf("build %s script: %w", t, err)
	}

	switch class := ClassifyScript(script); class {
	case txscript.PubKeyTy, txscript.PubKeyHashTy, txscript.ScriptHashTy:
		return script, nil
	default:
		return nil, fmt.Errorf("%w: %s rebuilt as %s", ErrScriptInvariant, t, class)
	}
}

// ReadScript reads a compressed script: a varint length followed by either a fixed
// payload for the special forms or length-6 bytes of raw script copied verbatim.
func ReadScript(r ByteReader) ([]byte, error) {
	code, err := ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read script size: %w", noEOF(err))
	}

	if code < numSpecialScripts {
		t := ScriptType(code)
		payload := make([]byte, t.PayloadSize())
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("read %s payload: %w", t, noEOF(err))
		}
		return DecompressScript(t, payload)
	}

	size, err := safe.Int(code - numSpecialScripts)
	if err != nil {
		return nil, fmt.Errorf("raw script size: %w", err)
	}
	script, err := readRaw(r, size)
	if err != nil {
		return nil, fmt.Errorf("read raw script of %d bytes: %w", size, noEOF(err))
	}
	return script, nil
}

// AppendScript appends the compressed encoding of script to dst.
func AppendScript(dst []byte, script []byte) []byte {
	if t, payload, ok := compressScript(script); ok {
		dst = AppendVarInt(dst, uint64(t))
		return append(dst, payload...)
	}
	dst = AppendVarInt(dst, uint64(len(script))+numSpecialScripts)
	return append(dst, script...)
}

func compressScript(script []byte) (ScriptType, []byte, bool) {
	switch {
	case len(script) == 25 &&
		script[0] == txscript.OP_DUP &&
		script[1] == txscript.OP_HASH160 &&
		script[2] == txscript.OP_DATA_20 &&
		script[23] == txscript.OP_EQUALVERIFY &&
		script[24] == txscript.OP_CHECKSIG:
		return ScriptP2PKH, script[3:23], true
	case len(script) == 23 &&
		script[0] == txscript.OP_HASH160 &&
		script[1] == txscript.OP_DATA_20 &&
		script[22] == txscript.OP_EQUAL:
		return ScriptP2SH, script[2:22], true
	case len(script) == 35 &&
		script[0] == txscript.OP_DATA_33 &&
		script[34] == txscript.OP_CHECKSIG &&
		(script[1] == 0x02 || script[1] == 0x03):
		return ScriptType(script[1]), script[2:34], true
	case len(script) == 67 &&
		script[0] == txscript.OP_DATA_65 &&
		script[66] == txscript.OP_CHECKSIG &&
		script[1] == 0x04:
		if _, err := btcec.ParsePubKey(script[1:66]); err != nil {
			return 0, nil, false
		}
		return ScriptP2PKUncompressedEven | ScriptType(script[65]&0x01), script[2:34], true
	default:
		return 0, nil, false
	}
}

// rawReadChunk bounds the allocation made before the bytes of a raw script have actually arrived.
const rawReadChunk = 64 << 10

func readRaw(r io.Reader, size int) ([]byte, error) {
	if size <= rawReadChunk {
		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	buf := make([]byte, 0, rawReadChunk)
	for len(buf) < size {
		n := min(size-len(buf), rawReadChunk)
		buf = append(buf, make([]byte, n)...)
		if _, err := io.ReadFull(r, buf[len(buf)-n:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
