// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package usererr wraps errors that carry a message meant for the person
// running the tool, as opposed to internal errors that only make sense with
// a stack trace.
package usererr

import (
	"fmt"

	"github.com/pkg/errors"
)

type level int

const (
	levelError level = iota
	levelWarning
)

type combined struct {
	source      error
	userMessage string
	level       level
}

func New(msg string, args ...any) error {
	return errors.WithStack(&combined{
		userMessage: fmt.Sprintf(msg, args...),
	})
}

func NewWarning(msg string, args ...any) error {
	return errors.WithStack(&combined{
		userMessage: fmt.Sprintf(msg, args...),
		level:       levelWarning,
	})
}

func WithUserMessage(source error, msg string, args ...any) error {
	// We don't want to wrap the error if it already has a user message. Doing
	// so would obscure the original error message which is likely more useful.
	if source == nil || hasUserMessage(source) {
		return source
	}
	return &combined{
		source:      source,
		userMessage: fmt.Sprintf(msg, args...),
	}
}

// Extract unwraps and returns the user error if it exists.
func Extract(err error) (error, bool) { // nolint: revive
	c := &combined{}
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}

func IsWarning(err error) bool {
	c := &combined{}
	if errors.As(err, &c) {
		return c.level == levelWarning
	}
	return false
}

func hasUserMessage(err error) bool {
	c := &combined{}
	return errors.As(err, &c) // note double pointer
}

func (c *combined) Error() string {
	if c.source == nil {
		return c.userMessage
	}
	return c.userMessage + "\nsource: " + c.source.Error()
}

// Is uses the source error for comparisons
func (c *combined) Is(target error) bool {
	return errors.Is(c.source, target)
}

// Unwrap provides compatibility for Go 1.13 error chains.
func (c *combined) Unwrap() error { return c.Cause() }

// Cause leverages the functionality of errors.Cause
func (c *combined) Cause() error { return errors.Cause(c.source) }

// Format allows us to use %+v as implemented by github.com/pkg/errors.
func (c *combined) Format(s fmt.State, verb rune) {
	if c.source == nil {
		fmt.Fprint(s, c.userMessage)
		return
	}
	errors.Wrap(c.source, c.userMessage).(interface { //nolint:errorlint
		Format(s fmt.State, verb rune)
	}).Format(s, verb)
}
