package dumper

import "github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"

// SinkFactoryFunc adapts a function to SinkFactory.
type SinkFactoryFunc func(header model.SnapshotHeader) (Sink, error)

func (f SinkFactoryFunc) Open(header model.SnapshotHeader) (Sink, error) {
	return f(header)
}
