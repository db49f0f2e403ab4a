//go:build unix

package driver

import (
	"bytes"
	"context"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/oppsim/internal/console"
	"github.com/amishk599/oppsim/internal/input"
	"github.com/amishk599/oppsim/internal/model"
)

// blockingComparator waits for cancellation and fails the way the provider
// does when its request is aborted.
type blockingComparator struct {
	started chan struct{}
}

func (b *blockingComparator) Compare(ctx context.Context, _, _ string) (model.Result, error) {
	close(b.started)
	<-ctx.Done()
	return model.Result{}, &model.CompareError{Kind: model.FailureCanceled, Err: ctx.Err()}
}

func TestRun_InterruptDuringSpinnerReportsFallback(t *testing.T) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	comparator := &blockingComparator{started: make(chan struct{})}
	go func() {
		<-comparator.started
		time.Sleep(100 * time.Millisecond)
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("send SIGINT: %v", err)
		}
	}()

	var out, spin bytes.Buffer
	d := &Driver{
		Source:     input.ArgsSource{First: "a", Second: "b"},
		Comparator: comparator,
		Out:        &out,
		Logger:     discardLogger(),
		Progress: func(label string, work func()) error {
			return console.RunWithSpinner(label, &spin, work)
		},
	}

	got, err := d.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Result{Justification: "Error: context canceled"}, got)
	assert.Contains(t, out.String(), "Error: context canceled")
}
