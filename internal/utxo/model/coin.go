package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Coin is the stored metadata of a single unspent output.
type Coin struct {
	Height   uint64
	Coinbase bool
	Amount   uint64
	Script   []byte
}

// UTXO is a decoded coin together with the outpoint it belongs to.
type UTXO struct {
	TxID chainhash.Hash
	Vout uint64
	Coin Coin
}
