package filesource

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	readsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filesource_reads_total",
		Help: "Read requests handled, by result.",
	}, []string{"result"})
	readBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "filesource_read_bytes_total",
		Help: "File bytes returned in chunks.",
	})
	chunksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "filesource_chunks_total",
		Help: "Chunks returned.",
	})
)

func init() {
	prometheus.MustRegister(readsTotal, readBytesTotal, chunksTotal)
}

func recordRead(result string, chunks Chunks) {
	readsTotal.WithLabelValues(result).Inc()
	chunksTotal.Add(float64(chunks.Len()))
	readBytesTotal.Add(float64(chunks.Bytes()))
}
