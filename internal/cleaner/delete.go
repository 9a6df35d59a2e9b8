// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cleaner

import (
	"time"

	"github.com/pkg/errors"

	"github.com/UntaDotMy/AugmentCode-Free/internal/fileutil"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux"
	"github.com/UntaDotMy/AugmentCode-Free/internal/ux/stepper"
)

// Method records which strategy ultimately removed a file.
type Method int

const (
	MethodNone Method = iota
	MethodDirect
	MethodDelayedRetry
	MethodAfterKill
	MethodForced
	MethodFinalRetry
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodDelayedRetry:
		return "delayed retry"
	case MethodAfterKill:
		return "after killing holders"
	case MethodForced:
		return "forced command"
	case MethodFinalRetry:
		return "final retry"
	default:
		return "none"
	}
}

// Outcome is the result of one deletion attempt. A missing target yields
// {Deleted: false, Err: nil}: deleting what is already gone is a no-op, not
// a failure. Deleted implies the path was absent when Delete returned.
type Outcome struct {
	Path     string
	Deleted  bool
	Method   Method
	ForcedBy string // forced-command name, set when Method == MethodForced
	Err      error
	Hint     string // human-actionable guidance on failure
}

// rung is one escalation strategy. run reports done=true when the ladder
// should stop, either because the file is gone or because the rung produced
// the final failure.
type rung struct {
	name string
	run  func(e *Engine, path string) (Outcome, bool)
}

// ladder is ordered from least to most invasive. Killing a process that
// happens to hold the file is a real risk, so it comes after plain retries
// and before the last-resort forced commands only.
var ladder = []rung{
	{name: "delayed retry", run: (*Engine).delayedRetry},
	{name: "terminate holders", run: (*Engine).killHolders},
	{name: "forced command", run: (*Engine).forcedDelete},
	{name: "final retry", run: (*Engine).finalRetry},
}

// Delete removes path, escalating through the ladder when the file is
// locked and escalate is true. It never panics; every failure mode is
// reported through the returned Outcome.
func (e *Engine) Delete(path string, escalate bool) Outcome {
	if !fileutil.Exists(path) {
		return Outcome{Path: path}
	}

	ux.Finfof(e.w, "deleting %s\n", path)
	err := e.remove(path)
	if err == nil {
		return Outcome{Path: path, Deleted: true, Method: MethodDirect}
	}
	if !isLockErr(err) {
		// Disk errors, invalid paths and the like are not helped by
		// retrying or killing anything.
		return Outcome{Path: path, Err: errors.WithStack(err)}
	}
	if !escalate {
		return Outcome{
			Path: path,
			Err:  err,
			Hint: "another process is holding the file, re-run with --force to escalate",
		}
	}

	ux.Fwarningf(e.w, "%s is locked, escalating\n", path)
	for _, r := range ladder {
		if !fileutil.Exists(path) {
			// The file disappeared between rungs, e.g. a dying holder
			// cleaned up after itself. Gone is gone.
			return Outcome{Path: path, Deleted: true, Method: MethodNone}
		}
		if out, done := r.run(e, path); done {
			return out
		}
	}

	// Unreachable: the final-retry rung always finishes the ladder.
	return Outcome{Path: path, Err: err}
}

func (e *Engine) delayedRetry(path string) (Outcome, bool) {
	e.wait(e.cfg.Waits.Retry, "waiting for the lock to clear")
	if err := e.remove(path); err == nil {
		return Outcome{Path: path, Deleted: true, Method: MethodDelayedRetry}, true
	}
	return Outcome{}, false
}

func (e *Engine) killHolders(path string) (Outcome, bool) {
	holders := e.findHolders(path)
	if len(holders) == 0 {
		// Empty means "unknown", not "no holders": there is nobody we can
		// kill, so move on to the forced commands.
		return Outcome{}, false
	}

	ux.Finfof(e.w, "%d process(es) are holding %s\n", len(holders), path)
	for _, h := range holders {
		name := h.Executable
		if name == "" {
			name = "unknown"
		}
		if e.terminate(h.PID) {
			ux.Finfof(e.w, "terminated pid %d (%s)\n", h.PID, name)
		} else {
			ux.Fwarningf(e.w, "could not terminate pid %d (%s)\n", h.PID, name)
		}
	}

	e.wait(e.cfg.Waits.AfterKill, "waiting for file handles to be released")
	if err := e.remove(path); err == nil {
		return Outcome{Path: path, Deleted: true, Method: MethodAfterKill}, true
	}
	return Outcome{}, false
}

func (e *Engine) forcedDelete(path string) (Outcome, bool) {
	for _, m := range e.forced {
		s := stepper.Start(e.w, "forced delete via %s", m.name)
		m.run(e, path)
		// Forced-delete utilities can exit successfully while the file
		// survives. Existence is the only signal worth trusting.
		if !fileutil.Exists(path) {
			s.Success("removed via %s", m.name)
			return Outcome{Path: path, Deleted: true, Method: MethodForced, ForcedBy: m.name}, true
		}
		s.Fail("%s left the file in place", m.name)
	}
	return Outcome{}, false
}

func (e *Engine) finalRetry(path string) (Outcome, bool) {
	e.wait(e.cfg.Waits.Final, "one last wait before the final attempt")
	err := e.remove(path)
	if err == nil {
		return Outcome{Path: path, Deleted: true, Method: MethodFinalRetry}, true
	}
	return Outcome{
		Path:   path,
		Method: MethodNone,
		Err:    errors.WithStack(err),
		Hint:   "the file may be locked by a system process, a restart may be required",
	}, true
}

func (e *Engine) wait(d time.Duration, reason string) {
	s := stepper.Start(e.w, "%s", reason)
	time.Sleep(d)
	s.Stop("waited %s", d)
}
