// Package preprocess normalizes video frames ahead of detection: every
// source is resized to the configured target resolution so tracker and
// assignment thresholds operate in one coordinate space, and a letterbox
// variant feeds square model input tensors without distorting aspect.
package preprocess

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Resizer scales frames from one fixed source dimension to a target
// dimension.  Letterbox geometry is computed once at construction, so a
// resizer is bound to its source dimensions and must be rebuilt when they
// change.
type Resizer struct {
	srcW int
	srcH int
	dstW int
	dstH int

	// letterbox geometry: the source scaled by scale fills a boxW x boxH
	// region centered in the target, padded by padX and padY on each side
	scale float32
	boxW  int
	boxH  int
	padX  int
	padY  int

	// scratch holds the intermediate scaled frame between the resize and
	// the border fill
	scratch gocv.Mat
}

// NewResizer returns a resizer for scaling frames of srcW x srcH pixels to
// dstW x dstH
func NewResizer(srcW, srcH, dstW, dstH int) *Resizer {

	r := &Resizer{
		srcW:    srcW,
		srcH:    srcH,
		dstW:    dstW,
		dstH:    dstH,
		scratch: gocv.NewMat(),
	}

	// fit the source inside the target on the tighter axis
	scaleW := float32(dstW) / float32(srcW)
	scaleH := float32(dstH) / float32(srcH)

	if scaleW <= scaleH {
		r.scale = scaleW
		r.boxW = dstW
		r.boxH = int(float32(srcH) * r.scale)
	} else {
		r.scale = scaleH
		r.boxW = int(float32(srcW) * r.scale)
		r.boxH = dstH
	}

	r.padX = (dstW - r.boxW) / 2
	r.padY = (dstH - r.boxH) / 2

	return r
}

// Close frees the scratch buffer
func (r *Resizer) Close() error {
	return r.scratch.Close()
}

// Normalize stretches the source frame to the target dimensions without
// preserving aspect.  All pipeline thresholds (tracker proximity, assignment
// IoU) are tuned against frames of this size.
func (r *Resizer) Normalize(src gocv.Mat, dest *gocv.Mat) {
	gocv.Resize(src, dest, image.Pt(r.dstW, r.dstH),
		0, 0, gocv.InterpolationArea)
}

// LetterBoxResize scales the source frame into dest preserving aspect,
// filling the leftover border with the given color.  Detections made on the
// result are mapped back to source coordinates with ScaleFactor, XPad and
// YPad.
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, border color.RGBA) {

	gocv.Resize(src, &r.scratch, image.Pt(r.boxW, r.boxH),
		0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.scratch, dest,
		r.padY, r.dstH-r.boxH-r.padY,
		r.padX, r.dstW-r.boxW-r.padX,
		gocv.BorderConstant, border)
}

// ScaleFactor returns the source-to-target scale used by LetterBoxResize
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the left border width added by LetterBoxResize
func (r *Resizer) XPad() int {
	return r.padX
}

// YPad returns the top border height added by LetterBoxResize
func (r *Resizer) YPad() int {
	return r.padY
}
