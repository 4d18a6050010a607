/*
Package detect defines the plain detection data model shared across the
toolkit: labeled bounding boxes with confidence scores as produced by an
object detector per video frame, and the box geometry helpers built on them.

The package never touches pixels.  Detector backends such as the yolo
subpackage produce []Detection from image data; everything downstream
(tracking, equipment assignment, compliance scoring) consumes and returns
these values only.
*/
package detect
