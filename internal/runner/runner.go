// Package runner invokes external reporting tools and classifies the
// outcome. A missing binary, nonzero exit, timeout or unparsable output
// all degrade to a status value; callers never receive an error.
package runner

import (
	"context"
	"encoding/json"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// Status classifies the outcome of an external command.
type Status int

const (
	// StatusOK means the command ran and produced output.
	StatusOK Status = iota
	// StatusEmpty means the command ran but produced no usable rows.
	StatusEmpty
	// StatusFailed means the command could not run or its output was unusable.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Output is the result of one command invocation.
type Output struct {
	Stdout []byte
	Status Status
}

// Runner executes an external command and returns its captured stdout.
type Runner interface {
	Run(name string, args ...string) Output
}

// DefaultTimeout bounds each external command so a wedged tool cannot
// hang the snapshot load.
const DefaultTimeout = 10 * time.Second

type execRunner struct {
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a Runner that executes commands with the given per-command
// timeout. A zero timeout falls back to DefaultTimeout.
func New(timeout time.Duration, log zerolog.Logger) Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &execRunner{timeout: timeout, log: log}
}

func (r *execRunner) Run(name string, args ...string) Output {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		r.log.Debug().Str("cmd", name).Strs("args", args).Err(err).Msg("command failed")
		return Output{Status: StatusFailed}
	}

	status := StatusOK
	if len(out) == 0 {
		status = StatusEmpty
	}
	r.log.Debug().Str("cmd", name).Strs("args", args).
		Int("stdout_bytes", len(out)).Stringer("status", status).Msg("command completed")
	return Output{Stdout: out, Status: status}
}

// RunJSON executes the command and unmarshals its stdout into v.
// Malformed JSON is treated the same as any other tool failure.
func RunJSON(r Runner, v interface{}, name string, args ...string) Status {
	out := r.Run(name, args...)
	if out.Status != StatusOK {
		return out.Status
	}
	if err := json.Unmarshal(out.Stdout, v); err != nil {
		return StatusFailed
	}
	return StatusOK
}

// RunText executes the command and returns its stdout, or the empty
// string on any failure.
func RunText(r Runner, name string, args ...string) string {
	out := r.Run(name, args...)
	if out.Status == StatusFailed {
		return ""
	}
	return string(out.Stdout)
}
