package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// SnapshotHeader is the fixed-size preamble of a UTXO snapshot file.
type SnapshotHeader struct {
	Version   uint16
	Network   Network
	BlockHash chainhash.Hash
	CoinCount uint64
}
