package convert

import (
	"testing"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

func TestRecordLatencyClamps(t *testing.T) {
	h := hdrhistogram.New(1, time.Minute.Microseconds(), 3)

	for _, d := range []time.Duration{time.Nanosecond, 250 * time.Microsecond, 2 * time.Minute} {
		if err := recordLatency(h, d); err != nil {
			t.Fatalf("%s: %v", d, err)
		}
	}

	if got := h.TotalCount(); got != 3 {
		t.Fatalf("recorded %d values, want 3", got)
	}
	if !h.ValuesAreEquivalent(h.Max(), time.Minute.Microseconds()) {
		t.Errorf("max %d, want about %d", h.Max(), time.Minute.Microseconds())
	}
	if got := h.Min(); got != 1 {
		t.Errorf("min %d, want 1", got)
	}
}
