// Package metrics declares the prometheus collectors of chunk conversion.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace       = "worldcodec"
	moduleOfConvert = "convert"

	LabelCodec = "codec"
	LabelStage = "stage"
)

var (
	ChunksDecodedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: moduleOfConvert,
		Name:      "chunks_decoded_total",
		Help:      "Chunks decoded, by codec.",
	}, []string{LabelCodec})

	ChunksEncodedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: moduleOfConvert,
		Name:      "chunks_encoded_total",
		Help:      "Chunks encoded, by codec.",
	}, []string{LabelCodec})

	ChunksFailedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: moduleOfConvert,
		Name:      "chunks_failed_total",
		Help:      "Chunks that could not be converted, by failing stage.",
	}, []string{LabelStage})

	DecodeSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: moduleOfConvert,
		Name:      "decode_seconds",
		Help:      "Time spent decoding one chunk.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{LabelCodec})
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Calling it again is
// a no-op.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ChunksDecodedCounter)
		prometheus.MustRegister(ChunksEncodedCounter)
		prometheus.MustRegister(ChunksFailedCounter)
		prometheus.MustRegister(DecodeSeconds)
	})
}

// Serve exposes the default registry on addr under /metrics. It blocks.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
