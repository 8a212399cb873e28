// Package controller sequences actions over one input and emits the report.
//
// A Controller reads its input into a model.ByteBuffer, prints the header
// banner, runs each configured action invocation in order and prints the
// execution time as the footer. The pieces are handed to a report.Writer as
// they are produced.
//
// Design decision: a run is strictly sequential and an action error is not
// recovered. The first failing action aborts the run, no footer is written
// and the error is returned to the caller, which turns it into the process
// exit status. Concurrency lives one level up in BatchProcessor, which gives
// every input file its own Controller.
package controller
