package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parquetWriterOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "parquet_writer",
		Name:      "operations_total",
		Help:      "Count of parquet writer operations.",
	}, []string{"operation", "network", "status"})
	parquetWriterOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "parquet_writer",
		Name:      "operation_duration_seconds",
		Help:      "Duration of parquet writer operations.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 60, 120, 300},
	}, []string{"operation", "network", "status"})
)

// ParquetWriter tracks metrics for parquet row group writes.
type ParquetWriter struct{}

func NewParquetWriter() *ParquetWriter {
	return &ParquetWriter{}
}

func (m ParquetWriter) Observe(operation string, network model.Network, err error, started time.Time) {
	status := statusLabel(err)
	if network == "" {
		network = "unknown"
	}

	parquetWriterOperationsTotal.WithLabelValues(operation, string(network), status).Inc()
	parquetWriterOperationDuration.WithLabelValues(operation, string(network), status).Observe(time.Since(started).Seconds())
}
