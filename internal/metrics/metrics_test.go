package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m, reg := NewRegistry()
	m.StrokeDone()
	m.SegmentDrawn()
	m.SegmentDrawn()
	m.TextCommitted(true)
	m.TextCommitted(false)
	m.Saved(1234)
	m.SaveFailed(FailureQuota)
	m.Loaded("ok")
	m.Cleared()

	if got := testutil.ToFloat64(m.Segments); got != 2 {
		t.Errorf("segments = %v", got)
	}
	if got := testutil.ToFloat64(m.SnapshotBytes); got != 1234 {
		t.Errorf("snapshot bytes = %v", got)
	}
	if got := testutil.ToFloat64(m.TextCommits.WithLabelValues("discarded")); got != 1 {
		t.Errorf("discarded commits = %v", got)
	}
	if got := testutil.ToFloat64(m.SaveFailures.WithLabelValues(FailureQuota)); got != 1 {
		t.Errorf("quota failures = %v", got)
	}
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Fatal("no metrics gathered")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.StrokeDone()
	m.SegmentDrawn()
	m.TextCommitted(true)
	m.Saved(1)
	m.SaveFailed(FailureOther)
	m.Loaded("empty")
	m.Cleared()
}
