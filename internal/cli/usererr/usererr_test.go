// Copyright 2025 AugmentCode-Free contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package usererr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndExtract(t *testing.T) {
	err := New("unknown IDE %q", "notepad")
	userErr, ok := Extract(err)
	require.True(t, ok)
	assert.Equal(t, `unknown IDE "notepad"`, userErr.Error())
	assert.False(t, IsWarning(err))
}

func TestNewWarning(t *testing.T) {
	err := NewWarning("aborted, nothing was cleaned")
	_, ok := Extract(err)
	require.True(t, ok)
	assert.True(t, IsWarning(err))
}

func TestWithUserMessage(t *testing.T) {
	source := errors.New("permission denied")
	err := WithUserMessage(source, "unable to back up manifest")
	assert.True(t, errors.Is(err, source))
	assert.Contains(t, err.Error(), "unable to back up manifest")
	assert.Contains(t, err.Error(), "permission denied")
	assert.False(t, IsWarning(err))
}

func TestWithUserMessageNilAndAlreadyWrapped(t *testing.T) {
	assert.NoError(t, WithUserMessage(nil, "ignored"))

	inner := New("inner message")
	assert.Equal(t, inner, WithUserMessage(inner, "outer message"),
		"an existing user message must not be obscured")
}
