package server

import (
	"sync"
)

// Stream holds the most recently rendered frame as a JPEG buffer for the
// MJPEG endpoint.  The producer (the live monitor loop) publishes frames and
// any number of HTTP clients read the latest one.
type Stream struct {
	mu    sync.RWMutex
	frame []byte
	seq   uint64
}

// NewStream returns an empty frame stream
func NewStream() *Stream {
	return &Stream{}
}

// Publish replaces the latest frame.  The buffer is copied so the caller may
// reuse it.
func (s *Stream) Publish(frame []byte) {
	buf := make([]byte, len(frame))
	copy(buf, frame)

	s.mu.Lock()
	s.frame = buf
	s.seq++
	s.mu.Unlock()
}

// Latest returns the most recent frame and its sequence number.  A nil frame
// means nothing has been published yet.
func (s *Stream) Latest() ([]byte, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frame, s.seq
}
