package bitcoin

import "errors"

var (
	// ErrVarIntOverflow is returned when a varint does not fit into 64 bits.
	ErrVarIntOverflow = errors.New("varint overflows uint64")
	// ErrUnknownScriptType is returned for a compressed script tag outside 0..5.
	ErrUnknownScriptType = errors.New("unknown compressed script type")
	// ErrScriptPayloadSize is returned when a compressed script payload has the wrong length.
	ErrScriptPayloadSize = errors.New("invalid compressed script payload size")
	// ErrInvalidPubKey is returned when a compressed public key is not a point on the curve.
	ErrInvalidPubKey = errors.New("invalid compressed public key")
	// ErrScriptInvariant marks a reconstructed script that is not one of the standard forms it must be.
	// It means the snapshot is corrupt and is never retried.
	ErrScriptInvariant = errors.New("decompressed script is not standard")
	// ErrUnknownNetworkMagic is returned for a network magic that matches no known chain.
	ErrUnknownNetworkMagic = errors.New("unknown network magic")
	// ErrUnsupportedNetwork is returned for a network name that matches no known chain.
	ErrUnsupportedNetwork = errors.New("unsupported network")
)
