package tracker

import (
	"testing"
	"time"

	"github.com/safevision/ppekit/detect"
)

// personAt builds a person detection with a 60x160 box centered on the given
// point
func personAt(cx, cy float32) detect.Detection {
	return detect.Detection{
		Label: detect.LabelPerson,
		Box: detect.Box{
			X1: cx - 30,
			Y1: cy - 80,
			X2: cx + 30,
			Y2: cy + 80,
		},
		Confidence: 0.9,
	}
}

// fakeClock provides a controllable time source for staleness tests
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestTracker() (*CentroidTracker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	ct := NewCentroidTracker(50, 2*time.Second)
	ct.now = clock.now
	return ct, clock
}

func TestTrackerRetainsIDWithinRadius(t *testing.T) {

	ct, clock := newTestTracker()

	frame1 := ct.Update([]detect.Detection{personAt(100, 100)})

	if len(frame1) != 1 || frame1[0].ID != 1 {
		t.Fatalf("frame 1: expected single person with ID 1, got %v", frame1)
	}

	// centroid moves 49px on the x axis, inside the matching radius
	clock.advance(40 * time.Millisecond)
	frame2 := ct.Update([]detect.Detection{personAt(149, 100)})

	if len(frame2) != 1 || frame2[0].ID != 1 {
		t.Errorf("frame 2: expected ID 1 retained, got %v", frame2)
	}
}

func TestTrackerMintsNewIDBeyondRadius(t *testing.T) {

	ct, clock := newTestTracker()

	ct.Update([]detect.Detection{personAt(100, 100)})

	// centroid jumps 51px with no other nearby track
	clock.advance(40 * time.Millisecond)
	frame2 := ct.Update([]detect.Detection{personAt(151, 100)})

	if len(frame2) != 1 || frame2[0].ID != 2 {
		t.Errorf("expected new ID 2 after 51px jump, got %v", frame2)
	}
}

func TestTrackerPurgesStaleTracks(t *testing.T) {

	ct, clock := newTestTracker()

	ct.Update([]detect.Detection{personAt(100, 100)})

	if ct.Len() != 1 {
		t.Fatalf("expected 1 live track, got %d", ct.Len())
	}

	// person absent for longer than the staleness window
	clock.advance(2100 * time.Millisecond)
	out := ct.Update(nil)

	if len(out) != 0 {
		t.Errorf("expected no tracked persons, got %v", out)
	}

	if ct.Len() != 0 {
		t.Errorf("expected stale track purged, live set has %d", ct.Len())
	}

	// an unrelated detection at the old position must not inherit the
	// retired ID, it receives the next unused counter value
	frame := ct.Update([]detect.Detection{personAt(100, 100)})

	if len(frame) != 1 || frame[0].ID != 2 {
		t.Errorf("expected fresh ID 2 after purge, got %v", frame)
	}
}

func TestTrackerStalenessBoundary(t *testing.T) {

	ct, clock := newTestTracker()

	ct.Update([]detect.Detection{personAt(100, 100)})

	// just inside the window the track survives
	clock.advance(1900 * time.Millisecond)
	ct.Update(nil)

	if ct.Len() != 1 {
		t.Errorf("track purged before staleness window elapsed")
	}
}

func TestTrackerMultiplePersons(t *testing.T) {

	ct, clock := newTestTracker()

	frame1 := ct.Update([]detect.Detection{
		personAt(100, 100),
		personAt(400, 100),
	})

	if len(frame1) != 2 {
		t.Fatalf("expected 2 tracked persons, got %d", len(frame1))
	}

	if frame1[0].ID != 1 || frame1[1].ID != 2 {
		t.Fatalf("expected IDs 1 and 2 in detection order, got %v", frame1)
	}

	// both move slightly, identities must hold
	clock.advance(40 * time.Millisecond)
	frame2 := ct.Update([]detect.Detection{
		personAt(110, 105),
		personAt(390, 95),
	})

	if frame2[0].ID != 1 || frame2[1].ID != 2 {
		t.Errorf("identities not retained across frames, got %v", frame2)
	}
}

func TestTrackerPicksNearestNotFirst(t *testing.T) {

	ct, clock := newTestTracker()

	ct.Update([]detect.Detection{
		personAt(100, 100),
		personAt(140, 100),
	})

	// detection at 135 is within radius of both live tracks but nearer to
	// the one at 140
	clock.advance(40 * time.Millisecond)
	frame2 := ct.Update([]detect.Detection{personAt(135, 100)})

	if len(frame2) != 1 || frame2[0].ID != 2 {
		t.Errorf("expected nearest-neighbor match to ID 2, got %v", frame2)
	}
}

func TestTrackerSameFrameDoubleMatch(t *testing.T) {

	ct, clock := newTestTracker()

	ct.Update([]detect.Detection{personAt(100, 100)})

	// two simultaneous detections near the same track both select it as
	// nearest, since matched tracks stay in candidacy within a frame
	clock.advance(40 * time.Millisecond)
	frame2 := ct.Update([]detect.Detection{
		personAt(95, 100),
		personAt(105, 100),
	})

	if len(frame2) != 2 {
		t.Fatalf("expected 2 tracked persons, got %d", len(frame2))
	}

	if frame2[0].ID != 1 || frame2[1].ID != 1 {
		t.Errorf("expected both detections to collapse to ID 1, got %v", frame2)
	}
}

func TestTrackerReset(t *testing.T) {

	ct, _ := newTestTracker()

	ct.Update([]detect.Detection{personAt(100, 100)})
	ct.Reset()

	if ct.Len() != 0 {
		t.Fatalf("expected empty track table after Reset")
	}

	// counter is not reset so IDs never collide
	frame := ct.Update([]detect.Detection{personAt(100, 100)})

	if frame[0].ID != 2 {
		t.Errorf("expected ID 2 after Reset, got %d", frame[0].ID)
	}
}
