// Package model defines domain models for UTXO snapshot dumping.
package model

// Network identifies the chain a snapshot was taken from.
type Network string

var (
	Mainnet  Network = "mainnet"
	Testnet  Network = "testnet"
	Testnet4 Network = "testnet4"
	Regtest  Network = "regtest"
	Signet   Network = "signet"
)
