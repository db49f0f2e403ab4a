package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/amishk599/oppsim/internal/input"
	"github.com/amishk599/oppsim/internal/model"
	"github.com/amishk599/oppsim/internal/report"
)

const progressLabel = "Comparando oportunidades..."

// ProgressFunc displays progress while work runs. It should return only after
// work has returned; Run still waits for a work call left running.
type ProgressFunc func(label string, work func()) error

// Driver runs one end-to-end comparison: read input, compare, print report.
type Driver struct {
	Source     input.Source
	Comparator model.Comparator
	Out        io.Writer
	Progress   ProgressFunc // nil prints a plain progress line to Out
	Report     report.Options
	Logger     *slog.Logger
}

// Run performs the comparison and writes the report. A failed comparison is
// not an error: it is reported as model.Fallback. An error is returned only
// when input cannot be read. A report write failure is logged.
func (d *Driver) Run(ctx context.Context) (model.Result, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	first, second, err := d.Source.Descriptions(ctx)
	if err != nil {
		return model.Result{}, fmt.Errorf("read descriptions: %w", err)
	}
	logger.Debug("descriptions read", "first_len", len(first), "second_len", len(second))

	// once guards result: whichever call runs the comparison, Do returns
	// only after it has finished.
	var (
		once   sync.Once
		result model.Result
	)
	compare := func() {
		result = CompareOrFallback(ctx, d.Comparator, first, second, logger)
	}

	if d.Progress != nil {
		if err := d.Progress(progressLabel, func() { once.Do(compare) }); err != nil {
			logger.Debug("progress display failed", "error", err)
		}
	}
	once.Do(func() {
		fmt.Fprintln(d.Out, "\n"+progressLabel)
		compare()
	})

	if err := report.Write(d.Out, result, d.Report); err != nil {
		logger.Warn("failed to write report", "error", err)
	}
	return result, nil
}

// CompareOrFallback runs one comparison and never fails: an error is logged
// and converted into model.Fallback.
func CompareOrFallback(ctx context.Context, c model.Comparator, first, second string, logger *slog.Logger) model.Result {
	result, err := c.Compare(ctx, first, second)
	if err == nil {
		return result
	}

	kind := "unknown"
	var ce *model.CompareError
	if errors.As(err, &ce) {
		kind = ce.Kind.String()
	}
	logger.Error("comparison failed", "kind", kind, "error", err)
	return model.Fallback(err)
}
