// Copyright © 2018 One Concern

package model

import (
	"bytes"
	"encoding/json"
)

// StepsDocument is the ordered deployment process snapshotted with a
// release, kept as raw JSON. The engine never inspects individual steps:
// the document is only ever canonicalized and compared whole.
type StepsDocument []byte

// MarshalJSON returns the raw document unchanged.
func (s StepsDocument) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (s *StepsDocument) UnmarshalJSON(data []byte) error {
	*s = append((*s)[0:0], data...)
	return nil
}

// Canonical renders the document in a deterministic text form: object keys
// sorted, two-space indent. Two step documents are considered equal iff
// their canonical forms are byte-equal.
func (s StepsDocument) Canonical() (string, error) {
	if len(s) == 0 || bytes.Equal(bytes.TrimSpace(s), []byte("null")) {
		return "", nil
	}
	var doc interface{}
	if err := json.Unmarshal(s, &doc); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
