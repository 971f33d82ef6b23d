package bitcoin

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
)

var networks = []struct {
	network model.Network
	params  *chaincfg.Params
}{
	{network: model.Mainnet, params: &chaincfg.MainNetParams},
	{network: model.Testnet, params: &chaincfg.TestNet3Params},
	{network: model.Testnet4, params: &chaincfg.TestNet4Params},
	{network: model.Regtest, params: &chaincfg.RegressionNetParams},
	{network: model.Signet, params: &chaincfg.SigNetParams},
}

// NetworkFromMagic maps the 4 message-start bytes found in a snapshot header to a network.
func NetworkFromMagic(magic [4]byte) (model.Network, error) {
	net := wire.BitcoinNet(binary.LittleEndian.Uint32(magic[:]))
	for _, n := range networks {
		if n.params.Net == net {
			return n.network, nil
		}
	}
	return "", fmt.Errorf("%w: %x", ErrUnknownNetworkMagic, magic)
}

// MagicForNetwork returns the message-start bytes of a network.
func MagicForNetwork(network model.Network) ([4]byte, error) {
	var magic [4]byte
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return magic, err
	}
	binary.LittleEndian.PutUint32(magic[:], uint32(params.Net))
	return magic, nil
}

// ParseNetwork normalizes a user supplied network name.
func ParseNetwork(name string) (model.Network, error) {
	params, err := chainParamsForNetwork(model.Network(name))
	if err != nil {
		return "", err
	}
	for _, n := range networks {
		if n.params == params {
			return n.network, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnsupportedNetwork, name)
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "testnet4":
		return &chaincfg.TestNet4Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedNetwork, network)
	}
}
