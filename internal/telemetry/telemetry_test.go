package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordReleaseIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(releaseTotal.WithLabelValues("test_kind_release"))
	RecordRelease("test_kind_release")
	after := testutil.ToFloat64(releaseTotal.WithLabelValues("test_kind_release"))
	if after != before+1 {
		t.Errorf("expected counter to increment by 1, got %v -> %v", before, after)
	}
}

func TestRecordRejectedIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(rejectedTotal.WithLabelValues("test_kind_rejected"))
	RecordRejected("test_kind_rejected")
	after := testutil.ToFloat64(rejectedTotal.WithLabelValues("test_kind_rejected"))
	if after != before+1 {
		t.Errorf("expected counter to increment by 1, got %v -> %v", before, after)
	}
}

func TestRecordIterationsObservesHistogram(t *testing.T) {
	before := testutil.CollectAndCount(rejectionLoopLength)
	RecordIterations("test_kind_iterations", 3)
	after := testutil.CollectAndCount(rejectionLoopLength)
	if after <= before {
		t.Errorf("expected histogram series count to grow, got %d -> %d", before, after)
	}
}
