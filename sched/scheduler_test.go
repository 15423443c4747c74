package sched

import (
	"testing"
	"time"
)

const frame = 10 * time.Millisecond

func TestSleepResumesNoEarlierThanDelay(t *testing.T) {
	s := New()
	var resumed []time.Duration
	s.Go("sleeper", func(now time.Duration) Step {
		resumed = append(resumed, now)
		if len(resumed) == 3 {
			return Done()
		}
		return Sleep(25 * time.Millisecond)
	})

	for i := 0; i < 20; i++ {
		s.Tick(frame)
	}

	want := []time.Duration{10 * time.Millisecond, 40 * time.Millisecond, 70 * time.Millisecond}
	if len(resumed) != len(want) {
		t.Fatalf("resumed = %v, want %v", resumed, want)
	}
	for i := range want {
		if resumed[i] != want[i] {
			t.Fatalf("resumed = %v, want %v", resumed, want)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("finished task still scheduled")
	}
}

func TestCancelStopsFurtherResumes(t *testing.T) {
	s := New()
	runs := 0
	h := s.Go("looper", func(time.Duration) Step {
		runs++
		return Yield()
	})

	s.Tick(frame)
	s.Tick(frame)
	h.Cancel()
	s.Tick(frame)
	s.Tick(frame)

	if runs != 2 {
		t.Fatalf("runs = %d, want 2", runs)
	}
	if h.Active() {
		t.Fatalf("cancelled handle reports active")
	}
}

func TestCancelFromEarlierTaskInSameTick(t *testing.T) {
	s := New()
	var victim *Handle
	victimRuns := 0

	s.Go("killer", func(now time.Duration) Step {
		if now >= 2*frame {
			victim.Cancel()
			return Done()
		}
		return Yield()
	})
	victim = s.Go("victim", func(time.Duration) Step {
		victimRuns++
		return Yield()
	})

	for i := 0; i < 5; i++ {
		s.Tick(frame)
	}
	if victimRuns != 1 {
		t.Fatalf("victim ran %d times, want 1", victimRuns)
	}
}

func TestSpawnDuringTickWaitsForNextTick(t *testing.T) {
	s := New()
	childRuns := 0
	s.After("parent", 0, func() {
		s.Go("child", func(time.Duration) Step {
			childRuns++
			return Done()
		})
	})

	s.Tick(frame)
	if childRuns != 0 {
		t.Fatalf("child ran in the tick it was spawned")
	}
	s.Tick(frame)
	if childRuns != 1 {
		t.Fatalf("child runs = %d, want 1", childRuns)
	}
}

func TestEveryIsAnchored(t *testing.T) {
	s := New()
	var at []time.Duration
	s.Every("aim", 25*time.Millisecond, func(now time.Duration) bool {
		at = append(at, now)
		return len(at) < 4
	})

	for i := 0; i < 12; i++ {
		s.Tick(frame)
	}
	want := []time.Duration{30, 50, 80, 100}
	if len(at) != len(want) {
		t.Fatalf("at = %v", at)
	}
	for i, ms := range want {
		if at[i] != ms*time.Millisecond {
			t.Fatalf("at = %v, want %v ms", at, want)
		}
	}
}

func TestNilHandleIsSafe(t *testing.T) {
	var h *Handle
	h.Cancel()
	if h.Active() {
		t.Fatalf("nil handle active")
	}
}
