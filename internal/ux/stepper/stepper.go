// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package stepper

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Stepper shows a spinner while a potentially slow step (waiting out a file
// lock, running a forced-delete command) is in flight. When the writer is not
// a terminal it degrades to plain line output so logs stay readable.
type Stepper struct {
	w       io.Writer
	spinner *spinner.Spinner
}

func Start(w io.Writer, format string, a ...any) *Stepper {
	msg := fmt.Sprintf(format, a...)
	if !writerIsTerminal(w) {
		fmt.Fprintf(w, "%s...\n", msg)
		return &Stepper{w: w}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	if err := s.Color("magenta"); err != nil {
		panic(err)
	}
	s.Suffix = " " + msg
	s.Start()
	return &Stepper{w: w, spinner: s}
}

func (s *Stepper) Success(format string, a ...any) {
	s.stop(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

func (s *Stepper) Fail(format string, a ...any) {
	s.stop(color.RedString("✘"), fmt.Sprintf(format, a...))
}

func (s *Stepper) Stop(format string, a ...any) {
	s.stop(color.BlueString("→"), fmt.Sprintf(format, a...))
}

func (s *Stepper) stop(mark, msg string) {
	if s.spinner == nil {
		fmt.Fprintf(s.w, "%s %s\n", mark, msg)
		return
	}
	s.spinner.FinalMSG = fmt.Sprintf("%s %s\n", mark, msg)
	s.spinner.Stop()
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
