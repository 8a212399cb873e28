package controller

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/report"
)

func textFactory(out io.Writer) (*Controller, error) {
	return New(report.NewTextWriter(out), []action.Invocation{
		{Action: action.NewHexdump()},
	}, WithLogger(discardLogger())), nil
}

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("reports are written in argument order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := make([]string, 5)
		for i := range paths {
			paths[i] = filepath.Join(dir, string(rune('a'+i))+".bin")
			if err := os.WriteFile(paths[i], bytes.Repeat([]byte{byte(i)}, 100*(5-i)), 0o600); err != nil {
				t.Fatalf("failed to write input: %v", err)
			}
		}

		var out bytes.Buffer
		bp := NewBatchProcessor(textFactory, WithConcurrency(3), WithBatchLogger(discardLogger()))
		reports, err := bp.ProcessBatch(context.Background(), paths, &out, []string{"interpret"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != len(paths) {
			t.Fatalf("expected %d reports, got %d", len(paths), len(reports))
		}
		last := -1
		for i, path := range paths {
			if reports[i].Header.Path != path {
				t.Errorf("report %d is for %s, want %s", i, reports[i].Header.Path, path)
			}
			pos := strings.Index(out.String(), "File      : "+path+"\n")
			if pos <= last {
				t.Errorf("report for %s out of order", path)
			}
			last = pos
		}
	})

	t.Run("first failure cancels and writes nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := filepath.Join(dir, "good.bin")
		if err := os.WriteFile(good, []byte("ok"), 0o600); err != nil {
			t.Fatalf("failed to write input: %v", err)
		}

		var out bytes.Buffer
		bp := NewBatchProcessor(textFactory, WithConcurrency(1), WithBatchLogger(discardLogger()))
		_, err := bp.ProcessBatch(context.Background(), []string{good, filepath.Join(dir, "missing.bin"), good}, &out, nil)
		if !errors.Is(err, ErrReadInput) {
			t.Fatalf("expected ErrReadInput, got %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("expected no output after failure, got %d bytes", out.Len())
		}
	})

	t.Run("factory error is returned", func(t *testing.T) {
		t.Parallel()

		errFactory := errors.New("no sink")
		bp := NewBatchProcessor(func(io.Writer) (*Controller, error) {
			return nil, errFactory
		}, WithBatchLogger(discardLogger()))

		if _, err := bp.ProcessBatch(context.Background(), []string{"x"}, io.Discard, nil); !errors.Is(err, errFactory) {
			t.Errorf("expected factory error, got %v", err)
		}
	})
}
