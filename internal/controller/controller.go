package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/model"
	"github.com/nao1215/byteprobe/internal/report"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// Controller runs a fixed sequence of action invocations over one input.
// A Controller is used for a single run and is not safe for concurrent use.
type Controller struct {
	// sink receives the report pieces in order.
	sink report.Writer

	// invocations are executed in order.
	invocations []action.Invocation

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// clock returns the current time. Tests replace it.
	clock func() time.Time

	// hashes lists the digests printed in the header.
	hashes []string

	// offset and length select the window of the input to interpret.
	// A negative length means up to the end of the input.
	offset int64
	length int64

	// tool and version are printed at the top of the banner.
	tool    string
	version string

	// stdin is read when the input path is StdinPath.
	stdin io.Reader

	// createdAt is the reference point of the execution time.
	createdAt time.Time

	// report accumulates the pieces written to sink.
	report *model.Report
}

// Option is a function that configures a Controller.
// This follows the functional options pattern for clean API design.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithHashes sets the digests printed in the header.
// Names are validated when the header is printed.
func WithHashes(names ...string) Option {
	return func(c *Controller) {
		c.hashes = names
	}
}

// WithWindow restricts interpretation to length bytes starting at offset.
// A negative length means up to the end of the input.
func WithWindow(offset, length int64) Option {
	return func(c *Controller) {
		c.offset = offset
		c.length = length
	}
}

// WithTool sets the program name and version shown in the banner.
func WithTool(name, version string) Option {
	return func(c *Controller) {
		c.tool = name
		c.version = version
	}
}

// WithStdin sets the reader used for the StdinPath input.
func WithStdin(r io.Reader) Option {
	return func(c *Controller) {
		c.stdin = r
	}
}

// New creates a Controller that writes to sink and runs invocations in order.
// The execution time printed in the footer is measured from this call.
func New(sink report.Writer, invocations []action.Invocation, opts ...Option) *Controller {
	c := &Controller{
		sink:        sink,
		invocations: invocations,
		clock:       time.Now,
		hashes:      DefaultHashes(),
		length:      -1,
		tool:        "byteprobe",
		version:     "dev",
		stdin:       os.Stdin,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.createdAt = c.clock()
	return c
}

// ReadInput reads the whole input at path, or standard input for StdinPath,
// and applies the configured window.
func (c *Controller) ReadInput(path string) (model.ByteBuffer, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinPath {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // reading user-specified input is the purpose
	}
	if err != nil {
		return model.ByteBuffer{}, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	buf, err := model.NewByteBuffer(data).Window(c.offset, c.length)
	if err != nil {
		return model.ByteBuffer{}, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	c.logger.Debug("input loaded",
		"path", path,
		"file_size", len(data),
		"window_offset", buf.BaseOffset(),
		"window_size", buf.Len(),
	)
	return buf, nil
}

// PrintHeader writes the banner for buf, read from path, and starts a new
// report.
func (c *Controller) PrintHeader(path string, buf model.ByteBuffer, args []string) error {
	hashes, err := ComputeHashes(c.hashes, buf.Bytes())
	if err != nil {
		return err
	}

	header := model.Header{
		Tool:      c.tool,
		Version:   c.version,
		Args:      args,
		Path:      path,
		Size:      buf.Len(),
		Offset:    buf.BaseOffset(),
		Stats:     buf.Stats(),
		Hashes:    hashes,
		Timestamp: c.createdAt,
	}
	c.report = model.NewReport(header)

	return c.sink.WriteHeader(&c.report.Header)
}

// PrintExecutionTime writes the footer with the wall-clock time elapsed
// since the controller was created.
func (c *Controller) PrintExecutionTime() error {
	if c.report == nil {
		return ErrHeaderNotPrinted
	}

	now := c.clock()
	c.report.Footer = &model.Footer{
		Elapsed:    now.Sub(c.createdAt),
		FinishedAt: now,
	}
	return c.sink.WriteFooter(c.report.Footer)
}

// Run reads the input at path and interprets it. See RunBuffer.
func (c *Controller) Run(ctx context.Context, path string, args []string) (*model.Report, error) {
	buf, err := c.ReadInput(path)
	if err != nil {
		return nil, err
	}
	return c.RunBuffer(ctx, path, buf, args)
}

// RunBuffer prints the header, runs every invocation over buf and prints
// the footer.
//
// On error the partial report is returned alongside it: the header and the
// sections of the actions that completed, with a nil footer.
//
// Design decision: We check ctx.Done() between actions rather than during,
// because actions are pure in-memory renderers that cannot be interrupted.
func (c *Controller) RunBuffer(ctx context.Context, name string, buf model.ByteBuffer, args []string) (*model.Report, error) {
	if err := c.PrintHeader(name, buf, args); err != nil {
		return c.report, err
	}

	for i, inv := range c.invocations {
		select {
		case <-ctx.Done():
			c.logger.Warn("run cancelled",
				"path", name,
				"completed", i,
				"reason", ctx.Err(),
			)
			return c.report, ctx.Err()
		default:
		}

		kind := inv.Action.Kind()
		c.logger.Debug("running action",
			"path", name,
			"index", i+1,
			"action", string(kind),
		)

		options, err := inv.Resolve()
		if err != nil {
			return c.report, c.actionFailed(name, i, kind, err)
		}
		output, err := inv.Run(buf.Bytes())
		if err != nil {
			return c.report, c.actionFailed(name, i, kind, err)
		}

		section := c.report.AddSection(model.Section{
			Action:  string(kind),
			Options: options,
			Output:  output,
		})
		if err := c.sink.WriteSection(&section); err != nil {
			return c.report, err
		}
	}

	if err := c.PrintExecutionTime(); err != nil {
		return c.report, err
	}

	c.logger.Debug("run complete",
		"path", name,
		"actions", len(c.invocations),
		"elapsed", c.report.Footer.Elapsed,
	)
	return c.report, nil
}

// Close closes the sink, flushing buffered formats.
func (c *Controller) Close() error {
	return c.sink.Close()
}

// Report returns the report of the current run, or nil before PrintHeader.
func (c *Controller) Report() *model.Report {
	return c.report
}

// actionFailed logs and wraps the error of the action at index i.
func (c *Controller) actionFailed(path string, i int, kind action.Kind, err error) error {
	c.logger.Error("action failed",
		"path", path,
		"index", i+1,
		"action", string(kind),
		"error", err,
	)
	return fmt.Errorf("%w: #%d %s: %w", ErrActionFailed, i+1, kind, err)
}
