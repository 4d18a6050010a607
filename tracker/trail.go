package tracker

import "sync"

// Point represents the x,y coordinates of the center of a tracked person's
// bounding box
type Point struct {
	X, Y int
}

// Trail keeps a bounded history of centroid points per track ID, used for
// drawing a movement trail on rendered frames
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size int
	// history of tracked points per track ID
	history map[int][]Point
	sync.Mutex
}

// NewTrail returns a new trail history instance.  Size specifies the maximum
// length of the trail to maintain per track ID.
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int][]Point)
}

// Add records the centroid of a tracked person for the current frame
func (t *Trail) Add(p Person) {
	t.Lock()
	defer t.Unlock()

	c := p.Det.Box.Centroid()

	points := append(t.history[p.ID], Point{
		X: int(c.X),
		Y: int(c.Y),
	})

	// check if history is exceeded and drop oldest point
	if len(points) > t.size {
		points = points[1:]
	}

	t.history[p.ID] = points
}

// Points gets the point history for a specific track id
func (t *Trail) Points(id int) []Point {
	t.Lock()
	defer t.Unlock()

	return t.history[id]
}
