package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordAccumulates(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	if m.Count() != 3 {
		t.Errorf("count = %d, want 3", m.Count())
	}
	if m.MaxNs() != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("max = %d", m.MaxNs())
	}
	if m.MinNs() != (10 * time.Millisecond).Nanoseconds() {
		t.Errorf("min = %d", m.MinNs())
	}
	if m.AvgNs() != (20 * time.Millisecond).Nanoseconds() {
		t.Errorf("avg = %d", m.AvgNs())
	}
}

func TestStatsSnapshot(t *testing.T) {
	m := newTimingMetric("snap")
	m.Record(2 * time.Millisecond)

	s := m.Stats()
	if s.Name != "snap" || s.Count != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.TotalMs != 2 {
		t.Errorf("TotalMs = %f", s.TotalMs)
	}
}

func TestReset(t *testing.T) {
	m := newTimingMetric("reset")
	m.Record(time.Millisecond)
	m.Reset()
	if m.Count() != 0 || m.TotalNs() != 0 || m.MinNs() != 0 || m.MaxNs() != 0 {
		t.Error("reset left residue")
	}
}

func TestTimerRecordsElapsed(t *testing.T) {
	m := newTimingMetric("timer")
	stop := Timer(m)
	time.Sleep(time.Millisecond)
	stop()

	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
	if m.TotalNs() <= 0 {
		t.Error("no elapsed time recorded")
	}
}

func TestTimerNilMetricIsNoop(t *testing.T) {
	Timer(nil)() // must not panic
}

func TestDisabledSkipsCollection(t *testing.T) {
	defer SetEnabled(enabled)
	SetEnabled(false)

	m := newTimingMetric("off")
	Timer(m)()
	m.Record(time.Millisecond)
	if m.Count() != 0 {
		t.Error("disabled metric recorded")
	}
}

func TestRecordConcurrent(t *testing.T) {
	m := newTimingMetric("conc")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Microsecond)
			}
		}()
	}
	wg.Wait()
	if m.Count() != 800 {
		t.Errorf("count = %d, want 800", m.Count())
	}
}

func TestAllTimingStatsSkipsEmpty(t *testing.T) {
	ResetAll()
	SimTick.Record(time.Millisecond)
	defer ResetAll()

	stats := AllTimingStats()
	if len(stats) != 1 || stats[0].Name != "sim_tick" {
		t.Errorf("stats = %+v", stats)
	}
}
