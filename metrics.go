package oflib

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	encodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oflib",
			Name:      "encode_errors_total",
			Help:      "Records that failed or were skipped while encoding, by record kind and reason.",
		},
		[]string{"record", "reason"},
	)

	packedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oflib",
			Name:      "packed_bytes_total",
			Help:      "Bytes produced by Marshal, by record kind.",
		},
		[]string{"record"},
	)
)

const (
	reasonUnsupported    = "unsupported"
	reasonMissingHandler = "missing_handler"
	reasonInvariant      = "invariant"
	reasonShortBuffer    = "short_buffer"
	reasonTooLong        = "too_long"
)

// RegisterMetrics registers the encoder counters with r.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{encodeErrors, packedBytes} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
