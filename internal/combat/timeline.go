package combat

import "fmt"

// TimelineState is the lifecycle state of one in-progress attack.
type TimelineState int32

const (
	// StateWindup - attack is playing, nothing has triggered yet
	StateWindup TimelineState = iota
	// StateCommitted - stick timestamp passed: target and facing are locked
	StateCommitted
	// StateResolved - hit timestamp passed: damage has been dispatched
	StateResolved
	// StateFinished - clip playback is over, the timeline is spent
	StateFinished
)

// String returns human-readable state name.
func (s TimelineState) String() string {
	switch s {
	case StateWindup:
		return "WINDUP"
	case StateCommitted:
		return "COMMITTED"
	case StateResolved:
		return "RESOLVED"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Transitions reports which timeline transitions fired during one Advance.
type Transitions struct {
	Committed bool
	Resolved  bool
	Finished  bool
}

// Timeline tracks elapsed playback time of one attack animation against its
// stick and hit thresholds. The two thresholds are checked independently on
// every advance: the source data authors them in either order (Zombie hits
// before it commits) and that asymmetry is a tuning knob, never clamped.
//
// Elapsed time is monotonic and the clip duration bounds it, so every
// timeline terminates, except when the animation loader could not resolve
// the clip. An unknown duration (<= 0) degrades to "finished only on an
// explicit Stop".
type Timeline struct {
	stick    float64
	hit      float64
	speed    float64
	duration float64

	elapsed   float64
	committed bool
	resolved  bool
	finished  bool
}

// NewTimeline creates a timeline for one attack. stick and hit are the
// commitment and damage playback times in seconds, speed is the playback
// rate multiplier, duration is the clip length reported by the animation
// loader (<= 0 means unknown).
func NewTimeline(stick, hit, speed, duration float64) (*Timeline, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("timeline speed must be > 0, got %v", speed)
	}
	return &Timeline{
		stick:    stick,
		hit:      hit,
		speed:    speed,
		duration: duration,
	}, nil
}

// Advance accumulates dt (real seconds, scaled by playback speed) and
// returns the transitions that fired this tick. Several transitions may
// fire in one call; each fires at most once per timeline lifetime.
// A finished timeline ignores further advances.
func (t *Timeline) Advance(dt float64) Transitions {
	if t.finished {
		return Transitions{}
	}
	t.elapsed += dt * t.speed

	var tr Transitions
	if !t.committed && t.elapsed >= t.stick {
		t.committed = true
		tr.Committed = true
	}
	if !t.resolved && t.elapsed >= t.hit {
		t.resolved = true
		tr.Resolved = true
	}
	if t.duration > 0 && t.elapsed >= t.duration {
		t.finished = true
		tr.Finished = true
	}
	return tr
}

// Stop force-finishes the timeline. This is the explicit stop signal used
// when the clip duration is unknown; it fires the Finished transition if
// the timeline is still live.
func (t *Timeline) Stop() Transitions {
	if t.finished {
		return Transitions{}
	}
	t.finished = true
	return Transitions{Finished: true}
}

// Elapsed returns accumulated playback time in seconds.
func (t *Timeline) Elapsed() float64 { return t.elapsed }

// HasCommitted reports whether the stick threshold has passed.
func (t *Timeline) HasCommitted() bool { return t.committed }

// HasResolved reports whether the hit threshold has passed.
func (t *Timeline) HasResolved() bool { return t.resolved }

// IsFinished reports whether playback is over.
func (t *Timeline) IsFinished() bool { return t.finished }

// State returns the furthest state reached. Because the thresholds are
// independent, RESOLVED can be reached while the timeline has never been
// COMMITTED.
func (t *Timeline) State() TimelineState {
	switch {
	case t.finished:
		return StateFinished
	case t.resolved:
		return StateResolved
	case t.committed:
		return StateCommitted
	default:
		return StateWindup
	}
}
