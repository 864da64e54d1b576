// Copyright © 2018 One Concern

package model

import "errors"

// ErrInvalidSnapshot indicates a snapshot that violates the caller contract,
// e.g. a release listing the same package id twice.
var ErrInvalidSnapshot = errors.New("invalid release snapshot")
