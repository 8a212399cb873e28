// Package model defines the data structures shared by byteprobe components.
//
// The main types are:
//   - ByteBuffer: an immutable view over the bytes being interpreted
//   - Report: the header, ordered action sections and footer of one run
//
// Design decision: ByteBuffer never hands out its backing array. Actions
// always receive copies, so the controller can pass the same buffer to every
// action without any of them observing another's modifications.
package model
