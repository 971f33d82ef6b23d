package dumper

import "errors"

var (
	ErrNetworkMismatch  = errors.New("snapshot network does not match the expected network")
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
