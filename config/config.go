// Package config defines the toolkit configuration and its loading from
// defaults, an optional YAML file and PPE_ environment variables.
//
// All thresholds consumed by the core pipeline live here so deployments can
// tune them without code changes.  Validation happens at load time; the core
// packages do not defend against inconsistent configuration.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration
type Config struct {
	// ModelPath is the path of the ONNX object detection model
	ModelPath string `koanf:"model_path"`

	// LabelsPath is the path of the model's class label file, one label
	// per line
	LabelsPath string `koanf:"labels_path"`

	// ConfThreshold is the minimum detection confidence in [0,1]
	ConfThreshold float32 `koanf:"conf_threshold"`

	// NMSThreshold is the IoU above which overlapping detections of the
	// same class are suppressed
	NMSThreshold float32 `koanf:"nms_threshold"`

	// InputSize is the square model input tensor size in pixels
	InputSize int `koanf:"input_size"`

	// TargetWidth and TargetHeight are the frame dimensions all video
	// sources are normalized to before processing
	TargetWidth  int `koanf:"target_width"`
	TargetHeight int `koanf:"target_height"`

	// TargetFPS paces the live capture loop
	TargetFPS int `koanf:"target_fps"`

	// IoUThreshold is the minimum overlap for attributing an equipment
	// item to a person.  Zero is a valid but hazardous setting: any
	// positive overlap then qualifies, defeating the geometric-overlap
	// guarantee.  Loaders keep it configurable; the monitor logs a
	// warning when it is zero.
	IoUThreshold float32 `koanf:"iou_threshold"`

	// ComplianceThreshold is the minimum score classified as compliant
	ComplianceThreshold int `koanf:"compliance_threshold"`

	// ProximityPx is the tracker's centroid matching radius in pixels
	ProximityPx float64 `koanf:"proximity_px"`

	// StaleAfterSec is the tracker staleness window in seconds
	StaleAfterSec float64 `koanf:"stale_after_sec"`

	// Weights maps equipment class labels to their score contribution.
	// The key set doubles as the equipment vocabulary.
	Weights map[string]int `koanf:"weights"`

	// SourceDir and OutputDir are the batch mode input and output
	// directories
	SourceDir string `koanf:"source_dir"`
	OutputDir string `koanf:"output_dir"`

	// CameraID selects the capture device for webcam mode
	CameraID int `koanf:"camera_id"`

	// Addr is the HTTP listen address for the stream server
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error
	LogLevel string `koanf:"log_level"`
}

// Default returns a Config populated with the stock deployment settings
func Default() *Config {
	return &Config{
		ModelPath:           "models/best.onnx",
		LabelsPath:          "models/labels.txt",
		ConfThreshold:       0.5,
		NMSThreshold:        0.45,
		InputSize:           640,
		TargetWidth:         1280,
		TargetHeight:        720,
		TargetFPS:           24,
		IoUThreshold:        0,
		ComplianceThreshold: 80,
		ProximityPx:         50,
		StaleAfterSec:       2.0,
		Weights: map[string]int{
			"Hardhat":     40,
			"Safety Vest": 40,
			"Mask":        20,
		},
		SourceDir: "source_files",
		OutputDir: "outputs",
		CameraID:  0,
		Addr:      ":8080",
		LogLevel:  "info",
	}
}

// StaleAfter returns the tracker staleness window as a duration
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterSec * float64(time.Second))
}

// Validate checks value ranges the core algorithms assume but do not defend
// against
func (c *Config) Validate() error {

	if c.ConfThreshold < 0 || c.ConfThreshold > 1 {
		return fmt.Errorf("conf_threshold %v outside [0,1]", c.ConfThreshold)
	}

	if c.NMSThreshold < 0 || c.NMSThreshold > 1 {
		return fmt.Errorf("nms_threshold %v outside [0,1]", c.NMSThreshold)
	}

	if c.IoUThreshold < 0 || c.IoUThreshold > 1 {
		return fmt.Errorf("iou_threshold %v outside [0,1]", c.IoUThreshold)
	}

	if c.ComplianceThreshold < 0 || c.ComplianceThreshold > 100 {
		return fmt.Errorf("compliance_threshold %d outside [0,100]", c.ComplianceThreshold)
	}

	if c.ProximityPx <= 0 {
		return fmt.Errorf("proximity_px must be positive, got %v", c.ProximityPx)
	}

	if c.StaleAfterSec <= 0 {
		return fmt.Errorf("stale_after_sec must be positive, got %v", c.StaleAfterSec)
	}

	if c.InputSize <= 0 || c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("model input size and target dimensions must be positive")
	}

	if c.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.TargetFPS)
	}

	if len(c.Weights) == 0 {
		return fmt.Errorf("weights table must not be empty")
	}

	for label, weight := range c.Weights {
		if weight < 0 {
			return fmt.Errorf("weight for %q must not be negative, got %d", label, weight)
		}
	}

	return nil
}
