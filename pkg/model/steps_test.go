// Copyright © 2018 One Concern

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsCanonical(t *testing.T) {
	// key order and whitespace in the source document do not matter
	a := StepsDocument(`[{"Name":"Deploy","Actions":[{"Name":"run","ActionType":"Script"}]}]`)
	b := StepsDocument(`[ { "Actions": [ { "ActionType": "Script", "Name": "run" } ], "Name": "Deploy" } ]`)

	ca, err := a.Canonical()
	require.NoError(t, err)
	cb, err := b.Canonical()
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
	assert.Contains(t, ca, "\"Name\": \"Deploy\"")

	c := StepsDocument(`[{"Name":"Deploy","Actions":[{"Name":"run","ActionType":"Bash"}]}]`)
	cc, err := c.Canonical()
	require.NoError(t, err)
	assert.NotEqual(t, ca, cc)
}

func TestStepsCanonicalEmpty(t *testing.T) {
	for _, doc := range []StepsDocument{nil, StepsDocument(""), StepsDocument("null")} {
		out, err := doc.Canonical()
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestStepsCanonicalInvalid(t *testing.T) {
	_, err := StepsDocument(`{"Steps": [`).Canonical()
	require.Error(t, err)
}
