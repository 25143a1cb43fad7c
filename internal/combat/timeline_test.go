package combat

import "testing"

func TestTimelineOrderedThresholds(t *testing.T) {
	// Mutant-style attack: stick 0.4, hit 0.8, speed 1.0, clip 1.5s.
	tl, err := NewTimeline(0.4, 0.8, 1.0, 1.5)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	tr := tl.Advance(0.3)
	if tr.Committed || tr.Resolved || tr.Finished {
		t.Errorf("no transition expected at 0.3s, got %+v", tr)
	}
	if tl.State() != StateWindup {
		t.Errorf("State() = %v, want WINDUP", tl.State())
	}

	tr = tl.Advance(0.2)
	if !tr.Committed || tr.Resolved {
		t.Errorf("expected commit only at 0.5s, got %+v", tr)
	}

	tr = tl.Advance(0.4)
	if tr.Committed || !tr.Resolved {
		t.Errorf("expected resolve only at 0.9s, got %+v", tr)
	}
	if tl.State() != StateResolved {
		t.Errorf("State() = %v, want RESOLVED", tl.State())
	}

	tr = tl.Advance(0.7)
	if !tr.Finished {
		t.Errorf("expected finish at 1.6s, got %+v", tr)
	}
	if tl.State() != StateFinished {
		t.Errorf("State() = %v, want FINISHED", tl.State())
	}
}

func TestTimelineHitBeforeCommit(t *testing.T) {
	// Zombie attack data: stick 1.2 is authored after hit 1.0, with
	// playback sped up 1.3x. The hit fires first and that is correct.
	tl, err := NewTimeline(1.2, 1.0, 1.3, 2.0)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	const dt = 0.1
	var resolvedAt, committedAt int
	for tick := 1; tick <= 20; tick++ {
		tr := tl.Advance(dt)
		if tr.Resolved {
			resolvedAt = tick
		}
		if tr.Committed {
			committedAt = tick
		}
	}

	// elapsed per tick is 0.13; hit 1.0 passes on tick 8 (1.04),
	// stick 1.2 on tick 10 (1.30).
	if resolvedAt != 8 {
		t.Errorf("resolved on tick %d, want 8", resolvedAt)
	}
	if committedAt != 10 {
		t.Errorf("committed on tick %d, want 10", committedAt)
	}
	if resolvedAt >= committedAt {
		t.Error("hit must land before commitment for this attack")
	}
}

func TestTimelineResolvedWithoutCommit(t *testing.T) {
	tl, err := NewTimeline(5.0, 0.5, 1.0, 0)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	tr := tl.Advance(1.0)
	if !tr.Resolved || tr.Committed {
		t.Fatalf("expected resolve without commit, got %+v", tr)
	}
	if tl.HasCommitted() {
		t.Error("stick threshold should not have passed")
	}
	if tl.State() != StateResolved {
		t.Errorf("State() = %v, want RESOLVED", tl.State())
	}
}

func TestTimelineUnknownDurationNeedsStop(t *testing.T) {
	tl, err := NewTimeline(0.2, 0.4, 1.0, 0)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	for range 100 {
		if tr := tl.Advance(1.0); tr.Finished {
			t.Fatal("unknown-duration timeline must not finish on its own")
		}
	}

	tr := tl.Stop()
	if !tr.Finished {
		t.Error("Stop should fire the Finished transition")
	}
	if tr2 := tl.Stop(); tr2.Finished {
		t.Error("second Stop should be a no-op")
	}
}

func TestTimelineFinishedIgnoresAdvance(t *testing.T) {
	tl, err := NewTimeline(0.1, 0.2, 1.0, 0.5)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}
	tl.Advance(1.0)
	if !tl.IsFinished() {
		t.Fatal("timeline should be finished")
	}

	elapsed := tl.Elapsed()
	if tr := tl.Advance(1.0); tr != (Transitions{}) {
		t.Errorf("finished timeline fired %+v", tr)
	}
	if tl.Elapsed() != elapsed {
		t.Error("finished timeline should not accumulate time")
	}
}

func TestTimelineTransitionsFireOnce(t *testing.T) {
	tl, err := NewTimeline(0.1, 0.2, 1.0, 10)
	if err != nil {
		t.Fatalf("NewTimeline: %v", err)
	}

	tr := tl.Advance(0.5)
	if !tr.Committed || !tr.Resolved {
		t.Fatalf("both transitions should fire in one advance, got %+v", tr)
	}
	tr = tl.Advance(0.5)
	if tr.Committed || tr.Resolved {
		t.Errorf("transitions fired twice: %+v", tr)
	}
}

func TestTimelineDeterministic(t *testing.T) {
	run := func() []TimelineState {
		tl, err := NewTimeline(1.2, 1.0, 1.3, 2.0)
		if err != nil {
			t.Fatalf("NewTimeline: %v", err)
		}
		var states []TimelineState
		for range 25 {
			tl.Advance(0.1)
			states = append(states, tl.State())
		}
		return states
	}

	first := run()
	for attempt := range 3 {
		again := run()
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d diverged at tick %d: %v vs %v", attempt, i, first[i], again[i])
			}
		}
	}
}

func TestTimelineRejectsBadSpeed(t *testing.T) {
	if _, err := NewTimeline(0.1, 0.2, 0, 1.0); err == nil {
		t.Error("speed 0 should be rejected")
	}
	if _, err := NewTimeline(0.1, 0.2, -1.0, 1.0); err == nil {
		t.Error("negative speed should be rejected")
	}
}
