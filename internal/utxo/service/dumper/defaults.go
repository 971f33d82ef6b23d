package dumper

const (
	DefaultBatchSize = 10_000_000

	// coinsReportEvery is how many decoded coins are accumulated before the coins counter is bumped.
	coinsReportEvery = 100_000
)
