// Package anim drives the frame-by-frame rendering of a field tensor into an
// animated image.
//
// The driver threads an explicit [State] through [Step]: the index of the
// next frame and the mapping of the last drawn contour. Rendered frames go to
// a [Sink] (an animated GIF by default, or an MJPEG AVI) and progress is
// reported through a [Progress].
package anim
