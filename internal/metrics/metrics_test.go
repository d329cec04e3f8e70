package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/richgrov/worldcodec/internal/metrics"
)

func TestRegister(t *testing.T) {
	metrics.Register()
	metrics.Register()

	metrics.ChunksFailedCounter.WithLabelValues("decode").Inc()
	if got := testutil.ToFloat64(metrics.ChunksFailedCounter.WithLabelValues("decode")); got < 1 {
		t.Errorf("failed counter is %v", got)
	}
}
