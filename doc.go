/*
ppekit monitors people in live or recorded video for required personal
protective equipment, producing a persistent per-person compliance score
across frames.

The root package wires the three core per-frame steps together: the
tracker package assigns persistent identities to person detections, the ppe
package associates equipment detections with the person wearing them and
converts the result into a bounded compliance percentage.  A Pipeline
consumes plain detection data from any detector backend (the detect/yolo
subpackage provides one on the OpenCV DNN module) and returns identities,
assignments and scores as plain data; it never touches pixels, files or
displays.

See runnable usage in the cmd/ppemon entry point, which drives the pipeline
in webcam and batch modes.
*/
package ppekit
