// Copyright © 2018 One Concern

package errors

import (
	stderr "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestSentinelsStayImmutable(t *testing.T) {
	cause := stderr.New("network down")
	wrapped := ErrSpaceNotFound.Wrap(cause)

	assert.True(t, Is(wrapped, ErrSpaceNotFound))
	assert.True(t, Is(wrapped, cause))
	assert.Nil(t, ErrSpaceNotFound.Unwrap())
}

func TestWithDetail(t *testing.T) {
	err := ErrProjectNotFound.WithDetail(`project "web-app"`)
	assert.True(t, Is(err, ErrProjectNotFound))
	assert.Contains(t, err.Error(), "web-app")

	// detail plus cause, in either order
	cause := stderr.New("404")
	err = ErrReleaseNotFound.WithDetail("version 1.0.2").Wrap(cause)
	assert.True(t, Is(err, ErrReleaseNotFound))
	assert.True(t, Is(err, cause))
}
