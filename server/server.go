// Package server exposes the live monitoring HTTP surface: an MJPEG stream
// of annotated frames, a JSON snapshot of the current tracks and scores, a
// health probe and Prometheus metrics.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// streamInterval paces MJPEG frame delivery to clients
const streamInterval = 40 * time.Millisecond

// PersonStatus is one tracked person's state in the status snapshot
type PersonStatus struct {
	ID        int      `json:"id"`
	Score     int      `json:"score"`
	Compliant bool     `json:"compliant"`
	Items     []string `json:"items"`
}

// Status is the JSON snapshot served at /status
type Status struct {
	Frame   uint64         `json:"frame"`
	Persons []PersonStatus `json:"persons"`
}

// StatusFunc supplies the current snapshot, typically bound to the live
// monitor session
type StatusFunc func() Status

// Server wires the HTTP routes for one monitored stream
type Server struct {
	engine *gin.Engine
	stream *Stream
	status StatusFunc
	log    *logrus.Logger
}

// New builds the server around a frame stream, a status snapshot source and
// the metrics handler
func New(stream *Stream, status StatusFunc, metricsHandler http.Handler,
	log *logrus.Logger) *Server {

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		stream: stream,
		status: status,
		log:    log,
	}

	s.engine.Use(gin.Recovery())

	s.engine.GET("/stream", s.handleStream)
	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(metricsHandler))

	return s
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("http server listening")
	return s.engine.Run(addr)
}

// Handler exposes the underlying handler for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// handleStream serves annotated frames as an MJPEG multipart stream until
// the client disconnects
func (s *Server) handleStream(c *gin.Context) {

	c.Header("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	var lastSeq uint64

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return

		case <-ticker.C:
			frame, seq := s.stream.Latest()

			if frame == nil || seq == lastSeq {
				continue
			}
			lastSeq = seq

			if _, err := c.Writer.Write([]byte("--frame\r\nContent-Type: image/jpeg\r\n\r\n")); err != nil {
				return
			}

			if _, err := c.Writer.Write(frame); err != nil {
				return
			}

			if _, err := c.Writer.Write([]byte("\r\n")); err != nil {
				return
			}

			c.Writer.Flush()
		}
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) handleHealth(c *gin.Context) {
	frame, seq := s.stream.Latest()

	if frame == nil {
		c.String(http.StatusServiceUnavailable, "no frames published")
		return
	}

	c.String(http.StatusOK, fmt.Sprintf("ok, frame %d", seq))
}
