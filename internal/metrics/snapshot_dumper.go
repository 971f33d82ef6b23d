package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-utxodump/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dumperFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "snapshot_dumper",
		Name:      "flush_total",
		Help:      "Count of flushed batches.",
	}, []string{"network", "status"})

	dumperFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "snapshot_dumper",
		Name:      "flush_duration_seconds",
		Help:      "Duration of sorting and writing one batch.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 0.1s..~3.4m
	}, []string{"network", "status"})

	dumperFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "snapshot_dumper",
		Name:      "flush_rows",
		Help:      "Number of rows per flushed batch.",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 10), // 1e3..~2.6e8
	}, []string{"network"})

	dumperCoinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "snapshot_dumper",
		Name:      "coins_total",
		Help:      "Count of decoded coins.",
	}, []string{"network"})

	dumperProgress = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "snapshot_dumper",
		Name:      "progress_ratio",
		Help:      "Share of declared coins already written.",
	}, []string{"network"})
)

// SnapshotDumper tracks metrics of the decode and flush loop.
type SnapshotDumper struct{}

func NewSnapshotDumper() *SnapshotDumper {
	return &SnapshotDumper{}
}

func (m SnapshotDumper) ObserveFlush(network model.Network, err error, rows int, started time.Time) {
	status := statusLabel(err)
	label := networkLabel(network)
	dumperFlushTotal.WithLabelValues(label, status).Inc()
	dumperFlushDuration.WithLabelValues(label, status).
		Observe(time.Since(started).Seconds())
	dumperFlushSize.WithLabelValues(label).Observe(float64(rows))
}

func (m SnapshotDumper) ObserveCoins(network model.Network, n int) {
	dumperCoinsTotal.WithLabelValues(networkLabel(network)).Add(float64(n))
}

// ObserveProgress sets the progress gauge. An empty snapshot counts as complete.
func (m SnapshotDumper) ObserveProgress(network model.Network, done, total uint64) {
	ratio := 1.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	dumperProgress.WithLabelValues(networkLabel(network)).Set(ratio)
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}
