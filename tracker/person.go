package tracker

import (
	"github.com/safevision/ppekit/detect"
)

// Person is a person detection enriched with a persistent track ID.  IDs are
// positive, unique within a tracker instance, monotonically increasing and
// never reused once their track has expired.
type Person struct {
	// ID is the persistent identity assigned by the tracker
	ID int
	// Det is the person detection for the current frame
	Det detect.Detection
}
