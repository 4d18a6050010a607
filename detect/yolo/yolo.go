// Package yolo runs YOLO family ONNX models through the OpenCV DNN module
// and converts raw network output into plain detect.Detection values.  It is
// a detector backend only; nothing in the tracking or scoring packages
// depends on it.
package yolo

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/preprocess"
)

// boxChannels is the number of output channels ahead of the per-class
// scores: center x, center y, width, height, objectness
const boxChannels = 5

// borderGray fills the letterbox padding, matching the value the model
// family is trained with
var borderGray = color.RGBA{R: 114, G: 114, B: 114, A: 255}

// Detector wraps a loaded ONNX detection model
type Detector struct {
	// net is the loaded DNN network
	net gocv.Net
	// labels are the class names the model was trained on, in class
	// index order
	labels []string
	// confThresh filters detections below this confidence
	confThresh float32
	// nmsThresh is the IoU above which same-class detections are
	// suppressed
	nmsThresh float32
	// inputSize is the square model input tensor size
	inputSize int

	// resizer letterboxes frames into the square input tensor, rebuilt
	// when the frame dimensions change
	resizer *preprocess.Resizer
	srcW    int
	srcH    int
	// square holds the letterboxed frame between resize and blob
	square gocv.Mat
}

// NewDetector loads the ONNX model at modelFile.  labels must list the class
// names in the order of the model's class indexes.
func NewDetector(modelFile string, labels []string, confThresh,
	nmsThresh float32, inputSize int) (*Detector, error) {

	net := gocv.ReadNetFromONNX(modelFile)

	if net.Empty() {
		return nil, fmt.Errorf("error reading model file %s", modelFile)
	}

	return &Detector{
		net:        net,
		labels:     labels,
		confThresh: confThresh,
		nmsThresh:  nmsThresh,
		inputSize:  inputSize,
		square:     gocv.NewMat(),
	}, nil
}

// Close frees the resources held by the network
func (d *Detector) Close() error {
	if d.resizer != nil {
		d.resizer.Close()
	}
	d.square.Close()
	return d.net.Close()
}

// Detect runs inference on the given frame and returns the detections in
// frame-pixel coordinates, confidence filtered and non-maximum suppressed.
// The frame is letterboxed into the square input tensor so boxes keep their
// aspect through the model.
func (d *Detector) Detect(img gocv.Mat) ([]detect.Detection, error) {

	if img.Empty() {
		return nil, fmt.Errorf("input frame is empty")
	}

	if d.resizer == nil || img.Cols() != d.srcW || img.Rows() != d.srcH {
		if d.resizer != nil {
			d.resizer.Close()
		}
		d.resizer = preprocess.NewResizer(img.Cols(), img.Rows(),
			d.inputSize, d.inputSize)
		d.srcW = img.Cols()
		d.srcH = img.Rows()
	}

	d.resizer.LetterBoxResize(img, &d.square, borderGray)

	blob := gocv.BlobFromImage(d.square, 1.0/255.0,
		image.Pt(d.inputSize, d.inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	// output tensor shape is [1, rows, boxChannels+classes]
	dims := output.Size()

	if len(dims) != 3 {
		return nil, fmt.Errorf("unexpected output tensor rank %d", len(dims))
	}

	rows := dims[1]
	cols := dims[2]

	if cols != boxChannels+len(d.labels) {
		return nil, fmt.Errorf("model has %d classes but %d labels loaded",
			cols-boxChannels, len(d.labels))
	}

	data, err := output.DataPtrFloat32()

	if err != nil {
		return nil, fmt.Errorf("error reading output tensor: %w", err)
	}

	scale := d.resizer.ScaleFactor()
	xPad := d.resizer.XPad()
	yPad := d.resizer.YPad()

	var candidates []detect.Detection

	for r := 0; r < rows; r++ {

		row := data[r*cols : (r+1)*cols]

		objConf := row[4]

		if objConf < d.confThresh {
			continue
		}

		// best scoring class for this candidate box
		bestClass := 0
		bestScore := float32(0)

		for c := boxChannels; c < cols; c++ {
			if row[c] > bestScore {
				bestScore = row[c]
				bestClass = c - boxChannels
			}
		}

		confidence := objConf * bestScore

		if confidence < d.confThresh {
			continue
		}

		candidates = append(candidates, detect.Detection{
			Label:      d.labels[bestClass],
			Box:        unletterbox(row[0], row[1], row[2], row[3], scale, xPad, yPad),
			Confidence: confidence,
		})
	}

	return nms(candidates, d.nmsThresh), nil
}

// unletterbox maps a model-space center box back to frame-pixel corner
// coordinates by removing the letterbox padding and scale
func unletterbox(cx, cy, w, h, scale float32, xPad, yPad int) detect.Box {

	fx := (cx - float32(xPad)) / scale
	fy := (cy - float32(yPad)) / scale
	fw := w / scale
	fh := h / scale

	return detect.Box{
		X1: fx - fw/2,
		Y1: fy - fh/2,
		X2: fx + fw/2,
		Y2: fy + fh/2,
	}
}
