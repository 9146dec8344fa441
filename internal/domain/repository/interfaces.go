package repository

type Metrics interface {
	RecordAnalysis(symbol, stage string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
