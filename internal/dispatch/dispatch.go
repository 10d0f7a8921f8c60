// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch runs the external converter once per version pair of a
// schedule, strictly one child at a time.
//
// Child failures (non-zero exit, missing executable) are recorded and
// reported but never stop the run. The only errors Run returns are a
// schedule whose InVersions is shorter than its OutVersions, and a context
// cancelled between invocations.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	applog "github.com/pdiddy/cifar-sched/internal/log"
	"github.com/pdiddy/cifar-sched/pkg/types"
)

// ErrIndexOutOfRange is returned when OutVersions has an entry with no
// matching InVersions entry.
var ErrIndexOutOfRange = errors.New("in_versions index out of range")

// Recorder receives every finished invocation. Record is called with a
// context that is not cancelled when the run is.
type Recorder interface {
	Record(ctx context.Context, inv types.Invocation) error
}

// Result holds the outcome of a dispatch run.
type Result struct {
	Launched  int
	Succeeded int
	Failed    int

	// Invocations lists every invocation in the order it ran.
	Invocations []types.Invocation
}

// HasFailures reports whether any child failed. Failures do not make Run
// return an error.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Dispatcher invokes the converter for each pair of a schedule.
type Dispatcher struct {
	converter types.ConverterConfig
	exec      executor
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder sends each finished invocation to r.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New returns a Dispatcher that launches the converter described by cfg.
func New(cfg types.ConverterConfig, opts ...Option) *Dispatcher {
	return newDispatcher(cfg, &osExecutor{}, opts...)
}

func newDispatcher(cfg types.ConverterConfig, exec executor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		converter: cfg,
		exec:      exec,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = applog.WithComponent("dispatch")
	}
	return d
}

// Run invokes the converter once for each index of s.OutVersions, in order,
// waiting for each child to exit before starting the next. A status line per
// invocation and a closing summary are written to w.
func (d *Dispatcher) Run(ctx context.Context, s types.Schedule, w io.Writer) (Result, error) {
	var result Result
	d.logger.Debug("dispatch starting", "schedule", s.Name, "pairs", len(s.OutVersions))

	for i, out := range s.OutVersions {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("dispatch stopped before index %d: %w", i, err)
		}
		if i >= len(s.InVersions) {
			return result, fmt.Errorf("%w: index %d, %d in_versions, %d out_versions",
				ErrIndexOutOfRange, i, len(s.InVersions), len(s.OutVersions))
		}

		inv := d.invoke(s.Name, i, s.InVersions[i], out)
		result.Launched++
		if inv.Succeeded() {
			result.Succeeded++
			fmt.Fprintf(w, "converted: %d -> %d\n", inv.InVersion, inv.OutVersion)
		} else {
			result.Failed++
			fmt.Fprintf(w, "failed:    %d -> %d (%s)\n", inv.InVersion, inv.OutVersion, failureReason(inv))
		}
		result.Invocations = append(result.Invocations, inv)

		if d.recorder != nil {
			// The child has finished; record it even if the run was interrupted.
			if err := d.recorder.Record(context.WithoutCancel(ctx), inv); err != nil {
				d.logger.Warn("recording invocation", "id", inv.ID, "error", err)
			}
		}
	}

	fmt.Fprintf(w, "\nDispatch summary: %d launched, %d succeeded, %d failed\n",
		result.Launched, result.Succeeded, result.Failed)
	return result, nil
}

// invoke runs one child and blocks until it exits.
func (d *Dispatcher) invoke(schedule string, index, in, out int) types.Invocation {
	inv := types.Invocation{
		ID:         d.newID(),
		Schedule:   schedule,
		Index:      index,
		InVersion:  in,
		OutVersion: out,
		Args:       d.converter.Argv(strconv.Itoa(in), strconv.Itoa(out)),
	}

	inv.StartedAt = d.now()
	code, err := d.exec.Run(d.converter.Dir, inv.Args)
	inv.FinishedAt = d.now()

	inv.ExitCode = code
	if err != nil {
		inv.Error = err.Error()
	}

	d.logger.Debug("converter exited",
		"id", inv.ID, "index", index, "in", in, "out", out,
		"exit_code", inv.ExitCode, "duration", inv.Duration())
	return inv
}

func failureReason(inv types.Invocation) string {
	if inv.Error != "" {
		return inv.Error
	}
	return fmt.Sprintf("exit %d", inv.ExitCode)
}
